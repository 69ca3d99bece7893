package fpl

import (
	"encoding/json"
	"fmt"
)

type rawFixture struct {
	ID              int     `json:"id"`
	Event           *int    `json:"event"`
	TeamH           int     `json:"team_h"`
	TeamA           int     `json:"team_a"`
	TeamHDifficulty int     `json:"team_h_difficulty"`
	TeamADifficulty int     `json:"team_a_difficulty"`
	Minutes         int     `json:"minutes"`
	Started         *bool   `json:"started"`
	Finished        bool    `json:"finished"`
	KickoffTime     *string `json:"kickoff_time"`
	TeamHScore      *int    `json:"team_h_score"`
	TeamAScore      *int    `json:"team_a_score"`
}

type Fixture struct {
	ID              int     `json:"id"`
	Event           *int    `json:"event"`
	TeamH           int     `json:"team_h"`
	TeamA           int     `json:"team_a"`
	TeamHDifficulty int     `json:"team_h_difficulty"`
	TeamADifficulty int     `json:"team_a_difficulty"`
	Minutes         int     `json:"minutes"`
	Started         *bool   `json:"started"`
	Finished        bool    `json:"finished"`
	KickoffTime     *string `json:"kickoff_time"`
	TeamHScore      *int    `json:"team_h_score"`
	TeamAScore      *int    `json:"team_a_score"`
	// "2-1" when both scores are known, null otherwise
	Score *string `json:"score"`
}

func ParseFixtures(payload []byte) ([]Fixture, error) {
	var raw []rawFixture
	err := json.Unmarshal(payload, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fixtures payload: %w", err)
	}

	fixtures := make([]Fixture, len(raw))
	for i, f := range raw {
		fixture := Fixture{
			ID:              f.ID,
			Event:           f.Event,
			TeamH:           f.TeamH,
			TeamA:           f.TeamA,
			TeamHDifficulty: f.TeamHDifficulty,
			TeamADifficulty: f.TeamADifficulty,
			Minutes:         f.Minutes,
			Started:         f.Started,
			Finished:        f.Finished,
			KickoffTime:     f.KickoffTime,
			TeamHScore:      f.TeamHScore,
			TeamAScore:      f.TeamAScore,
		}
		if f.TeamHScore != nil && f.TeamAScore != nil {
			score := fmt.Sprintf("%d-%d", *f.TeamHScore, *f.TeamAScore)
			fixture.Score = &score
		}
		fixtures[i] = fixture
	}
	return fixtures, nil
}
