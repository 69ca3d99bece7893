package fetch

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"fplkit/lib/cache"
	"fplkit/lib/fetchstats"
	"fplkit/lib/telemetry"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type fakeFetcher struct {
	calls   int
	payload []byte
	err     error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func setup(t testing.TB) func() {
	return telemetry.SetupForTesting("test:fetch")
}

func TestFreshCacheSkipsNetwork(t *testing.T) {
	defer setup(t)()

	store := cache.NewMemoryStore()
	fetcher := &fakeFetcher{payload: []byte("fresh")}
	resolver := Resolver{Store: store, Fetcher: fetcher, StaleIfError: true}

	ctx := context.Background()

	res, err := resolver.Resolve(ctx, "teams", "http://example/teams", time.Hour, false)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []byte("fresh"), res.Payload)
	require.False(t, res.FromCache)
	require.Equal(t, 1, fetcher.calls)

	res, err = resolver.Resolve(ctx, "teams", "http://example/teams", time.Hour, false)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []byte("fresh"), res.Payload)
	require.True(t, res.FromCache)
	require.False(t, res.Stale)
	require.Equal(t, 1, fetcher.calls, "a fresh cache hit must not trigger a network call")
}

func TestForceAlwaysFetches(t *testing.T) {
	defer setup(t)()

	store := cache.NewMemoryStore()
	require.NoError(t, store.Put("teams", []byte("cached"), time.Now()))

	fetcher := &fakeFetcher{payload: []byte("refetched")}
	resolver := Resolver{Store: store, Fetcher: fetcher, StaleIfError: true}

	res, err := resolver.Resolve(context.Background(), "teams", "http://example/teams", time.Hour, true)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 1, fetcher.calls)
	require.Equal(t, []byte("refetched"), res.Payload)
	require.False(t, res.FromCache)

	// write-through happened
	entry, err := store.Get("teams")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []byte("refetched"), entry.Payload)
}

func TestExpiredEntryFallsBackToStale(t *testing.T) {
	defer setup(t)()

	store := cache.NewMemoryStore()
	staleAt := time.Now().Add(-24 * time.Hour)
	require.NoError(t, store.Put("prices", []byte("stale"), staleAt))

	fetcher := &fakeFetcher{err: errors.New("upstream down")}
	resolver := Resolver{Store: store, Fetcher: fetcher, StaleIfError: true}

	res, err := resolver.Resolve(context.Background(), "prices", "http://example/prices", time.Hour, false)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 1, fetcher.calls)
	require.Equal(t, []byte("stale"), res.Payload)
	require.True(t, res.FromCache)
	require.True(t, res.Stale)
	require.True(t, res.FetchedAt.Equal(staleAt))

	// failed fetch must not overwrite the entry
	entry, err := store.Get("prices")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []byte("stale"), entry.Payload)
}

func TestFetchFailureWithoutCache(t *testing.T) {
	defer setup(t)()

	store := cache.NewMemoryStore()
	fetcher := &fakeFetcher{err: errors.New("upstream down")}
	resolver := Resolver{Store: store, Fetcher: fetcher, StaleIfError: true}

	_, err := resolver.Resolve(context.Background(), "teams", "http://example/teams", time.Hour, false)
	require.Error(t, err)
}

func TestForcedRefreshFailure(t *testing.T) {
	defer setup(t)()

	store := cache.NewMemoryStore()
	require.NoError(t, store.Put("teams", []byte("cached"), time.Now()))
	fetcher := &fakeFetcher{err: errors.New("upstream down")}

	{
		// availability-first: fall back to the cached entry
		resolver := Resolver{Store: store, Fetcher: fetcher, StaleIfError: true}
		res, err := resolver.Resolve(context.Background(), "teams", "http://example/teams", time.Hour, true)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, []byte("cached"), res.Payload)
		require.True(t, res.Stale)
	}
	{
		// strict: a forced refresh that fails surfaces the error
		resolver := Resolver{Store: store, Fetcher: fetcher, StaleIfError: false}
		_, err := resolver.Resolve(context.Background(), "teams", "http://example/teams", time.Hour, true)
		require.Error(t, err)
	}
}

func TestStatsCountOnlySuccessfulFetches(t *testing.T) {
	defer setup(t)()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	stats, err := fetchstats.NewTracker(db)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	url := "http://example/teams"
	store := cache.NewMemoryStore()
	fetcher := &fakeFetcher{err: errors.New("upstream down")}
	resolver := Resolver{Store: store, Fetcher: fetcher, StaleIfError: true, Stats: stats}

	_, err = resolver.Resolve(ctx, "teams", url, time.Hour, false)
	require.Error(t, err)

	s, err := stats.Stats(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(1), s.Requests)
	require.Zero(t, s.ApiFetches, "a failed fetch attempt is not an upstream fetch")

	fetcher.err = nil
	fetcher.payload = []byte("teams")
	_, err = resolver.Resolve(ctx, "teams", url, time.Hour, false)
	if err != nil {
		t.Fatal(err)
	}

	s, err = stats.Stats(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(2), s.Requests)
	require.Equal(t, int64(1), s.ApiFetches)
}

func TestMissFetchesAndWritesThrough(t *testing.T) {
	defer setup(t)()

	store := cache.NewMemoryStore()
	fetcher := &fakeFetcher{payload: []byte("payload")}
	resolver := Resolver{Store: store, Fetcher: fetcher, StaleIfError: true}

	res, err := resolver.Resolve(context.Background(), "fixtures", "http://example/fixtures", time.Hour, false)
	if err != nil {
		t.Fatal(err)
	}
	require.False(t, res.FromCache)

	entry, err := store.Get("fixtures")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []byte("payload"), entry.Payload)
}
