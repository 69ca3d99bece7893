package fetchstats

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"fplkit/lib/telemetry"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setup(t testing.TB) (*Tracker, func()) {
	cleanup := telemetry.SetupForTesting("test:fetchstats")

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	tracker, err := NewTracker(db)
	if err != nil {
		t.Fatal(err)
	}
	return tracker, cleanup
}

func TestTracker(t *testing.T) {
	tracker, cleanup := setup(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	const url = "https://fantasy.premierleague.com/api/bootstrap-static/"

	{
		s, err := tracker.Stats(ctx, url)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, Stats{}, s)
	}

	require.NoError(t, tracker.RecordRequest(ctx, url))
	require.NoError(t, tracker.RecordRequest(ctx, url))
	require.NoError(t, tracker.RecordFetch(ctx, url))

	{
		s, err := tracker.Stats(ctx, url)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, Stats{Requests: 2, ApiFetches: 1}, s)
	}
}
