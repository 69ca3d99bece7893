package fpl

import (
	"encoding/json"
	"fmt"
)

type rawLeague struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	EntryRank     *int   `json:"entry_rank"`
	EntryLastRank *int   `json:"entry_last_rank"`
}

type entryResponse struct {
	ID                   int    `json:"id"`
	Name                 string `json:"name"`
	PlayerFirstName      string `json:"player_first_name"`
	PlayerLastName       string `json:"player_last_name"`
	PlayerRegionName     string `json:"player_region_name"`
	SummaryOverallPoints *int   `json:"summary_overall_points"`
	SummaryOverallRank   *int   `json:"summary_overall_rank"`
	SummaryEventPoints   *int   `json:"summary_event_points"`
	SummaryEventRank     *int   `json:"summary_event_rank"`
	CurrentEvent         *int   `json:"current_event"`
	YearsActive          int    `json:"years_active"`
	Leagues              struct {
		Classic []rawLeague `json:"classic"`
		H2H     []rawLeague `json:"h2h"`
	} `json:"leagues"`
}

type EntryLeague struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	EntryRank     *int   `json:"entry_rank"`
	EntryLastRank *int   `json:"entry_last_rank"`
}

type EntryLeagues struct {
	Classic []EntryLeague `json:"classic"`
	H2H     []EntryLeague `json:"h2h"`
}

type EntryDetails struct {
	ID               int          `json:"id"`
	TeamName         string       `json:"team_name"`
	ManagerFirstName string       `json:"manager_first_name"`
	ManagerLastName  string       `json:"manager_last_name"`
	PlayerRegionName string       `json:"player_region_name"`
	OverallPoints    *int         `json:"overall_points"`
	OverallRank      *int         `json:"overall_rank"`
	EventPoints      *int         `json:"event_points"`
	EventRank        *int         `json:"event_rank"`
	CurrentGameweek  *int         `json:"current_gameweek"`
	Leagues          EntryLeagues `json:"leagues"`
	YearsActive      int          `json:"years_active"`
}

func ParseEntryDetails(payload []byte) (EntryDetails, error) {
	var raw entryResponse
	err := json.Unmarshal(payload, &raw)
	if err != nil {
		return EntryDetails{}, fmt.Errorf("failed to parse entry details payload: %w", err)
	}

	convert := func(leagues []rawLeague) []EntryLeague {
		out := make([]EntryLeague, len(leagues))
		for i, l := range leagues {
			out[i] = EntryLeague(l)
		}
		return out
	}

	return EntryDetails{
		ID:               raw.ID,
		TeamName:         raw.Name,
		ManagerFirstName: raw.PlayerFirstName,
		ManagerLastName:  raw.PlayerLastName,
		PlayerRegionName: raw.PlayerRegionName,
		OverallPoints:    raw.SummaryOverallPoints,
		OverallRank:      raw.SummaryOverallRank,
		EventPoints:      raw.SummaryEventPoints,
		EventRank:        raw.SummaryEventRank,
		CurrentGameweek:  raw.CurrentEvent,
		Leagues: EntryLeagues{
			Classic: convert(raw.Leagues.Classic),
			H2H:     convert(raw.Leagues.H2H),
		},
		YearsActive: raw.YearsActive,
	}, nil
}

type rawHistoryGameweek struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	OverallRank        int `json:"overall_rank"`
	Rank               int `json:"rank"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
	PointsOnBench      int `json:"points_on_bench"`
	Value              int `json:"value"`
	Bank               int `json:"bank"`
}

type rawHistorySeason struct {
	SeasonName  string `json:"season_name"`
	TotalPoints int    `json:"total_points"`
	Rank        int    `json:"rank"`
}

type rawChip struct {
	Name  string `json:"name"`
	Event int    `json:"event"`
	Time  string `json:"time"`
}

type historyResponse struct {
	Current []rawHistoryGameweek `json:"current"`
	Past    []rawHistorySeason   `json:"past"`
	Chips   []rawChip            `json:"chips"`
}

type HistoryGameweek struct {
	Gameweek      int     `json:"gameweek"`
	Points        int     `json:"points"`
	TotalPoints   int     `json:"total_points"`
	OverallRank   int     `json:"overall_rank"`
	GameweekRank  int     `json:"gameweek_rank"`
	TransfersMade int     `json:"transfers_made"`
	TransfersCost int     `json:"transfers_cost"`
	PointsOnBench int     `json:"points_on_bench"`
	TeamValue     float64 `json:"team_value"`
	Bank          float64 `json:"bank"`
}

type HistorySeason struct {
	SeasonName  string `json:"season_name"`
	TotalPoints int    `json:"total_points"`
	OverallRank int    `json:"overall_rank"`
}

type ChipPlayed struct {
	Name       string `json:"name"`
	Gameweek   int    `json:"gameweek"`
	TimePlayed string `json:"time_played"`
}

type EntryHistory struct {
	CurrentSeasonHistory []HistoryGameweek `json:"current_season_history"`
	PastSeasonsHistory   []HistorySeason   `json:"past_seasons_history"`
	ChipsPlayed          []ChipPlayed      `json:"chips_played"`
}

func ParseEntryHistory(payload []byte) (EntryHistory, error) {
	var raw historyResponse
	err := json.Unmarshal(payload, &raw)
	if err != nil {
		return EntryHistory{}, fmt.Errorf("failed to parse entry history payload: %w", err)
	}

	history := EntryHistory{
		CurrentSeasonHistory: []HistoryGameweek{},
		PastSeasonsHistory:   []HistorySeason{},
		ChipsPlayed:          []ChipPlayed{},
	}
	for _, gw := range raw.Current {
		history.CurrentSeasonHistory = append(history.CurrentSeasonHistory, HistoryGameweek{
			Gameweek:      gw.Event,
			Points:        gw.Points,
			TotalPoints:   gw.TotalPoints,
			OverallRank:   gw.OverallRank,
			GameweekRank:  gw.Rank,
			TransfersMade: gw.EventTransfers,
			TransfersCost: gw.EventTransfersCost,
			PointsOnBench: gw.PointsOnBench,
			TeamValue:     float64(gw.Value) / 10.0,
			Bank:          float64(gw.Bank) / 10.0,
		})
	}
	for _, season := range raw.Past {
		history.PastSeasonsHistory = append(history.PastSeasonsHistory, HistorySeason{
			SeasonName:  season.SeasonName,
			TotalPoints: season.TotalPoints,
			OverallRank: season.Rank,
		})
	}
	for _, chip := range raw.Chips {
		history.ChipsPlayed = append(history.ChipsPlayed, ChipPlayed{
			Name:       chip.Name,
			Gameweek:   chip.Event,
			TimePlayed: chip.Time,
		})
	}
	return history, nil
}

type rawTransfer struct {
	Event          int    `json:"event"`
	Time           string `json:"time"`
	ElementIn      int    `json:"element_in"`
	ElementInCost  int    `json:"element_in_cost"`
	ElementOut     int    `json:"element_out"`
	ElementOutCost int    `json:"element_out_cost"`
}

type Transfer struct {
	Gameweek       int     `json:"gameweek"`
	Time           string  `json:"time"`
	ElementInID    int     `json:"element_in_id"`
	ElementInCost  float64 `json:"element_in_cost"`
	ElementOutID   int     `json:"element_out_id"`
	ElementOutCost float64 `json:"element_out_cost"`
}

func ParseEntryTransfers(payload []byte) ([]Transfer, error) {
	var raw []rawTransfer
	err := json.Unmarshal(payload, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse entry transfers payload: %w", err)
	}

	transfers := make([]Transfer, len(raw))
	for i, t := range raw {
		transfers[i] = Transfer{
			Gameweek:       t.Event,
			Time:           t.Time,
			ElementInID:    t.ElementIn,
			ElementInCost:  float64(t.ElementInCost) / 10.0,
			ElementOutID:   t.ElementOut,
			ElementOutCost: float64(t.ElementOutCost) / 10.0,
		}
	}
	return transfers, nil
}

type rawPick struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
	ElementType   int  `json:"element_type"`
}

type rawAutomaticSub struct {
	ElementIn  int `json:"element_in"`
	ElementOut int `json:"element_out"`
	Event      int `json:"event"`
}

type picksResponse struct {
	ActiveChip   *string `json:"active_chip"`
	EntryHistory struct {
		Points      int `json:"points"`
		TotalPoints int `json:"total_points"`
		OverallRank int `json:"overall_rank"`
	} `json:"entry_history"`
	Picks         []rawPick         `json:"picks"`
	AutomaticSubs []rawAutomaticSub `json:"automatic_subs"`
}

type Pick struct {
	ElementID     int  `json:"element_id"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
	ElementType   int  `json:"element_type"`
}

type AutomaticSub struct {
	ElementInID  int `json:"element_in_id"`
	ElementOutID int `json:"element_out_id"`
	Gameweek     int `json:"gameweek"`
}

type PicksSummary struct {
	EventPoints int `json:"event_points"`
	TotalPoints int `json:"total_points"`
	OverallRank int `json:"overall_rank"`
}

type EntryPicks struct {
	Gameweek              int            `json:"gameweek"`
	ActiveChip            *string        `json:"active_chip"`
	EntryHistorySummary   PicksSummary   `json:"entry_history_summary"`
	Picks                 []Pick         `json:"picks"`
	AutomaticSubstitutions []AutomaticSub `json:"automatic_substitutions"`
}

func ParseEntryPicks(payload []byte, gameweek int) (EntryPicks, error) {
	var raw picksResponse
	err := json.Unmarshal(payload, &raw)
	if err != nil {
		return EntryPicks{}, fmt.Errorf("failed to parse entry picks payload: %w", err)
	}

	picks := EntryPicks{
		Gameweek:   gameweek,
		ActiveChip: raw.ActiveChip,
		EntryHistorySummary: PicksSummary{
			EventPoints: raw.EntryHistory.Points,
			TotalPoints: raw.EntryHistory.TotalPoints,
			OverallRank: raw.EntryHistory.OverallRank,
		},
		Picks:                  []Pick{},
		AutomaticSubstitutions: []AutomaticSub{},
	}
	for _, p := range raw.Picks {
		picks.Picks = append(picks.Picks, Pick{
			ElementID:     p.Element,
			Position:      p.Position,
			Multiplier:    p.Multiplier,
			IsCaptain:     p.IsCaptain,
			IsViceCaptain: p.IsViceCaptain,
			ElementType:   p.ElementType,
		})
	}
	for _, sub := range raw.AutomaticSubs {
		picks.AutomaticSubstitutions = append(picks.AutomaticSubstitutions, AutomaticSub{
			ElementInID:  sub.ElementIn,
			ElementOutID: sub.ElementOut,
			Gameweek:     sub.Event,
		})
	}
	return picks, nil
}
