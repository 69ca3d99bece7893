package fpl

import (
	"testing"

	"fplkit/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const bootstrapFixture = `{
	"teams": [
		{"id": 1, "name": "Arsenal", "short_name": "ARS", "strength": 5},
		{"id": 2, "name": "Manchester City", "short_name": "MCI", "strength": 5},
		{"id": 3, "name": "Manchester United", "short_name": "MUN", "strength": 4}
	],
	"element_types": [
		{"id": 1, "singular_name": "Goalkeeper", "singular_name_short": "GKP", "plural_name_short": "GKPs"},
		{"id": 3, "singular_name": "Midfielder", "singular_name_short": "MID", "plural_name_short": "MIDs"},
		{"id": 4, "singular_name": "Forward", "singular_name_short": "FWD", "plural_name_short": "FWDs"}
	],
	"elements": [
		{"id": 10, "first_name": "Bukayo", "second_name": "Saka", "team": 1,
		 "total_points": 120, "event_points": 8, "element_type": 3, "now_cost": 102,
		 "status": "a", "selected_by_percent": "45.2"},
		{"id": 20, "first_name": "Erling", "second_name": "Haaland", "team": 2,
		 "total_points": 150, "event_points": 13, "element_type": 4, "now_cost": 151,
		 "status": "a", "selected_by_percent": "80.1"},
		{"id": 30, "first_name": "Alexander", "second_name": "Sörloth", "team": 3,
		 "total_points": 60, "event_points": 2, "element_type": 4, "now_cost": 65,
		 "status": "a", "selected_by_percent": "4.0"},
		{"id": 40, "first_name": "David", "second_name": "Raya", "team": 1,
		 "total_points": 90, "event_points": 6, "element_type": 1, "now_cost": null,
		 "status": "a", "selected_by_percent": "20.3"}
	],
	"events": [
		{"id": 1, "name": "Gameweek 1", "deadline_time": "2026-08-15T17:30:00Z",
		 "average_entry_score": 54, "finished": true, "is_current": false, "is_next": false,
		 "most_selected": 20, "top_element": 10, "top_element_info": {"points": 15}},
		{"id": 2, "name": "Gameweek 2", "deadline_time": null,
		 "average_entry_score": 0, "finished": false, "is_current": true, "is_next": false,
		 "most_selected": null, "top_element": null, "top_element_info": null}
	]
}`

func setup(t testing.TB) func() {
	return telemetry.SetupForTesting("test:fpl")
}

func parseFixtureBootstrap(t *testing.T) *Bootstrap {
	b, err := ParseBootstrap([]byte(bootstrapFixture))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestParseBootstrapMalformed(t *testing.T) {
	defer setup(t)()

	_, err := ParseBootstrap([]byte("<!DOCTYPE html><html></html>"))
	require.Error(t, err)
}

func TestTeams(t *testing.T) {
	defer setup(t)()
	b := parseFixtureBootstrap(t)

	teams := b.Teams()
	require.Len(t, teams, 3)
	require.Equal(t, Team{ID: 1, Name: "Arsenal", ShortName: "ARS", Strength: 5}, teams[0])
	require.Equal(t, "Unknown Team", b.TeamName(99))
}

func TestGameweeks(t *testing.T) {
	defer setup(t)()
	b := parseFixtureBootstrap(t)

	gws := b.Gameweeks()
	require.Len(t, gws, 2)

	require.Equal(t, 1, gws[0].ID)
	require.Equal(t, 54, gws[0].AverageScore)
	require.NotNil(t, gws[0].TopElementPoints)
	require.Equal(t, 15, *gws[0].TopElementPoints)

	require.True(t, gws[1].IsCurrent)
	require.Nil(t, gws[1].DeadlineTime)
	require.Nil(t, gws[1].MostSelectedPlayerID)
	require.Nil(t, gws[1].TopElementPoints)
}

func TestPlayersProjection(t *testing.T) {
	defer setup(t)()
	b := parseFixtureBootstrap(t)

	players := b.Players(PlayerFilter{})
	require.Len(t, players, 4)

	saka := players[0]
	require.Equal(t, "Bukayo Saka", saka.FullName)
	require.Equal(t, "Arsenal", saka.TeamName)
	require.Equal(t, "MID", saka.Position)
	require.NotNil(t, saka.NowCost)
	require.Equal(t, 10.2, *saka.NowCost)

	// a null now_cost projects to null, not zero
	raya := players[3]
	require.Nil(t, raya.NowCost)
}

func TestPlayerNameFilterIgnoresAccents(t *testing.T) {
	defer setup(t)()
	b := parseFixtureBootstrap(t)

	players := b.Players(PlayerFilter{Name: "sorloth"})
	require.Len(t, players, 1)
	require.Equal(t, 30, players[0].ID)
}

func TestPlayerFilters(t *testing.T) {
	defer setup(t)()
	b := parseFixtureBootstrap(t)

	{
		players := b.Players(PlayerFilter{IDs: []int{10, 30}})
		require.Len(t, players, 2)
	}
	{
		teamID := 1
		players := b.Players(PlayerFilter{TeamID: &teamID})
		require.Len(t, players, 2)
	}
	{
		positionID, ok := b.PositionID("FWD")
		require.True(t, ok)
		players := b.Players(PlayerFilter{PositionID: &positionID})
		require.Len(t, players, 2)
	}
	{
		// inclusive bounds, and players without a price fail a price filter
		min := 10.2
		players := b.Players(PlayerFilter{MinPrice: &min})
		require.Len(t, players, 2)

		max := 10.2
		players = b.Players(PlayerFilter{MaxPrice: &max})
		require.Len(t, players, 2)
	}
}

func TestPositionID(t *testing.T) {
	defer setup(t)()
	b := parseFixtureBootstrap(t)

	for _, alias := range []string{"Goalkeeper", "goalkeeper", "GKP", "gkps"} {
		id, ok := b.PositionID(alias)
		require.True(t, ok, alias)
		require.Equal(t, 1, id)
	}
	_, ok := b.PositionID("striker")
	require.False(t, ok)
}

func TestResolveTeam(t *testing.T) {
	defer setup(t)()
	b := parseFixtureBootstrap(t)

	{
		id, err := b.ResolveTeam("arsenal")
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, 1, id)
	}
	{
		// short names resolve as well
		id, err := b.ResolveTeam("mci")
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, 2, id)
	}
	{
		_, err := b.ResolveTeam("manchester")
		var ambiguous *AmbiguousTeamError
		require.ErrorAs(t, err, &ambiguous)
		require.Len(t, ambiguous.Candidates, 2)
		require.Contains(t, err.Error(), "multiple teams")
	}
	{
		_, err := b.ResolveTeam("arsenl")
		require.Error(t, err)
		require.Contains(t, err.Error(), "Arsenal")
	}
}
