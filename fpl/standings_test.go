package fpl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStandings(t *testing.T) {
	defer setup(t)()

	payload := `{
		"league": {"id": 314, "name": "Overall"},
		"standings": {
			"page": 2,
			"has_next": true,
			"has_previous": true,
			"results": [
				{"rank": 51, "entry": 2359318, "player_name": "Alice",
				 "entry_name": "Alice FC", "total": 1204, "event_total": 61,
				 "last_rank": 49, "movement": "down"},
				{"rank": 52, "entry": 101, "player_name": "Bob",
				 "entry_name": "Bob XI", "total": 1201, "event_total": 58,
				 "last_rank": 60, "movement": "up"}
			]
		}
	}`

	standings, err := ParseStandings([]byte(payload), 2)
	if err != nil {
		t.Fatal(err)
	}

	require.JSONEq(t, `{"id": 314, "name": "Overall"}`, string(standings.League))
	require.Len(t, standings.Standings, 2)
	require.Equal(t, StandingEntry{
		Rank: 51, Entry: 2359318, PlayerName: "Alice", EntryName: "Alice FC",
		Total: 1204, EventTotal: 61, LastRank: 49, Movement: "down",
	}, standings.Standings[0])

	require.Equal(t, 2, standings.Page.Page)
	require.Equal(t, 2, standings.Page.Results)
	require.NotNil(t, standings.Page.HasNext)
	require.True(t, *standings.Page.HasNext)
}

func TestParseStandingsEmpty(t *testing.T) {
	defer setup(t)()

	standings, err := ParseStandings([]byte(`{}`), 5)
	if err != nil {
		t.Fatal(err)
	}
	require.JSONEq(t, `{}`, string(standings.League))
	require.Len(t, standings.Standings, 0)
	require.Equal(t, 5, standings.Page.Page)
	require.Nil(t, standings.Page.HasNext)
}
