package fpl

import (
	"encoding/json"
	"fmt"
)

type rawStandingResult struct {
	Rank       int    `json:"rank"`
	Entry      int    `json:"entry"`
	PlayerName string `json:"player_name"`
	EntryName  string `json:"entry_name"`
	Total      int    `json:"total"`
	EventTotal int    `json:"event_total"`
	LastRank   int    `json:"last_rank"`
	Movement   string `json:"movement"`
}

type standingsResponse struct {
	League    json.RawMessage `json:"league"`
	Standings struct {
		Page        int                 `json:"page"`
		HasNext     *bool               `json:"has_next"`
		HasPrevious *bool               `json:"has_previous"`
		Results     []rawStandingResult `json:"results"`
	} `json:"standings"`
}

type StandingEntry struct {
	Rank       int    `json:"rank"`
	Entry      int    `json:"entry"`
	PlayerName string `json:"player_name"`
	EntryName  string `json:"entry_name"`
	Total      int    `json:"total"`
	EventTotal int    `json:"event_total"`
	LastRank   int    `json:"last_rank"`
	Movement   string `json:"movement"`
}

type StandingsPage struct {
	Page        int   `json:"page"`
	Results     int   `json:"results"`
	HasNext     *bool `json:"has_next"`
	HasPrevious *bool `json:"has_previous"`
}

type Standings struct {
	// upstream league metadata, passed through untouched
	League    json.RawMessage `json:"league"`
	Standings []StandingEntry `json:"standings"`
	Page      StandingsPage   `json:"page"`
}

func ParseStandings(payload []byte, requestedPage int) (Standings, error) {
	var raw standingsResponse
	err := json.Unmarshal(payload, &raw)
	if err != nil {
		return Standings{}, fmt.Errorf("failed to parse league standings payload: %w", err)
	}

	league := raw.League
	if len(league) == 0 {
		league = json.RawMessage(`{}`)
	}

	entries := make([]StandingEntry, len(raw.Standings.Results))
	for i, r := range raw.Standings.Results {
		entries[i] = StandingEntry(r)
	}

	page := raw.Standings.Page
	if page == 0 {
		page = requestedPage
	}

	return Standings{
		League:    league,
		Standings: entries,
		Page: StandingsPage{
			Page:        page,
			Results:     len(entries),
			HasNext:     raw.Standings.HasNext,
			HasPrevious: raw.Standings.HasPrevious,
		},
	}, nil
}
