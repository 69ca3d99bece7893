package fpl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLive(t *testing.T) {
	defer setup(t)()

	payload := `{
		"elements": [
			{"id": 10, "stats": {"minutes": 90, "total_points": 8},
			 "explain": [{"fixture": 1}]},
			{"id": 20, "stats": {"minutes": 45, "total_points": 2}, "explain": []},
			{"id": 30}
		],
		"events": [{"id": 3, "stats": {"goals_scored": 7}}]
	}`

	{
		live, err := ParseLive([]byte(payload), 3, nil)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, 3, live.Gameweek)
		require.Len(t, live.Elements, 3)
		require.Len(t, live.Events, 1)

		// elements with no stats still project an empty object
		require.NotNil(t, live.Elements[2].Stats)
		require.JSONEq(t, `[]`, string(live.Elements[2].Explain))
	}
	{
		live, err := ParseLive([]byte(payload), 3, []int{20})
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, live.Elements, 1)
		require.Equal(t, 20, live.Elements[0].ID)
	}
	{
		// filtering to unknown ids is an empty result, not an error
		live, err := ParseLive([]byte(payload), 3, []int{999})
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, live.Elements, 0)
		require.NotNil(t, live.Elements)
	}
}

func TestParseLiveMalformed(t *testing.T) {
	defer setup(t)()

	_, err := ParseLive([]byte("not json"), 1, nil)
	require.Error(t, err)
}
