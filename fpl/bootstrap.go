package fpl

import (
	"encoding/json"
	"fmt"
	"sort"

	"fplkit/lib/textutil"

	"github.com/antzucaro/matchr"
)

type rawTeam struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Strength  int    `json:"strength"`
}

type rawElement struct {
	ID                int    `json:"id"`
	FirstName         string `json:"first_name"`
	SecondName        string `json:"second_name"`
	Team              int    `json:"team"`
	TotalPoints       int    `json:"total_points"`
	EventPoints       int    `json:"event_points"`
	ElementType       int    `json:"element_type"`
	NowCost           *int   `json:"now_cost"`
	Status            string `json:"status"`
	SelectedByPercent string `json:"selected_by_percent"`
}

type rawEvent struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	DeadlineTime      *string `json:"deadline_time"`
	AverageEntryScore int     `json:"average_entry_score"`
	Finished          bool    `json:"finished"`
	IsCurrent         bool    `json:"is_current"`
	IsNext            bool    `json:"is_next"`
	MostSelected      *int    `json:"most_selected"`
	TopElement        *int    `json:"top_element"`
	TopElementInfo    *struct {
		Points int `json:"points"`
	} `json:"top_element_info"`
}

type rawElementType struct {
	ID                int    `json:"id"`
	SingularName      string `json:"singular_name"`
	SingularNameShort string `json:"singular_name_short"`
	PluralNameShort   string `json:"plural_name_short"`
}

type bootstrapResponse struct {
	Teams        []rawTeam        `json:"teams"`
	Elements     []rawElement     `json:"elements"`
	Events       []rawEvent       `json:"events"`
	ElementTypes []rawElementType `json:"element_types"`
}

type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Strength  int    `json:"strength"`
}

type Player struct {
	ID                 int      `json:"id"`
	FirstName          string   `json:"first_name"`
	SecondName         string   `json:"second_name"`
	FullName           string   `json:"full_name"`
	TeamID             int      `json:"team_id"`
	TeamName           string   `json:"team_name"`
	TotalPoints        int      `json:"total_points"`
	PointsThisGameweek int      `json:"points_this_gameweek"`
	ElementType        int      `json:"element_type"`
	Position           string   `json:"position"`
	NowCost            *float64 `json:"now_cost"`
	Status             string   `json:"status"`
	SelectedByPercent  string   `json:"selected_by_percent"`
}

type Gameweek struct {
	ID                   int     `json:"id"`
	Name                 string  `json:"name"`
	DeadlineTime         *string `json:"deadline_time"`
	AverageScore         int     `json:"average_score"`
	Finished             bool    `json:"finished"`
	IsCurrent            bool    `json:"is_current"`
	IsNext               bool    `json:"is_next"`
	MostSelectedPlayerID *int    `json:"most_selected_player_id"`
	TopElementID         *int    `json:"top_element_id"`
	TopElementPoints     *int    `json:"top_element_points"`
}

// Bootstrap is the parsed bootstrap-static payload plus the lookup
// indexes derived from it.
type Bootstrap struct {
	teams    []rawTeam
	elements []rawElement
	events   []rawEvent

	teamNames     map[int]string
	positionShort map[int]string
	positionIDs   map[string]int
}

func ParseBootstrap(payload []byte) (*Bootstrap, error) {
	var res bootstrapResponse
	err := json.Unmarshal(payload, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bootstrap-static payload: %w", err)
	}

	b := &Bootstrap{
		teams:         res.Teams,
		elements:      res.Elements,
		events:        res.Events,
		teamNames:     map[int]string{},
		positionShort: map[int]string{},
		positionIDs:   map[string]int{},
	}
	for _, team := range res.Teams {
		b.teamNames[team.ID] = team.Name
	}
	for _, et := range res.ElementTypes {
		b.positionShort[et.ID] = et.SingularNameShort
		for _, alias := range []string{et.SingularName, et.SingularNameShort, et.PluralNameShort} {
			if alias != "" {
				b.positionIDs[textutil.Fold(alias)] = et.ID
			}
		}
	}
	return b, nil
}

func (b *Bootstrap) Teams() []Team {
	teams := make([]Team, len(b.teams))
	for i, t := range b.teams {
		teams[i] = Team{
			ID:        t.ID,
			Name:      t.Name,
			ShortName: t.ShortName,
			Strength:  t.Strength,
		}
	}
	return teams
}

func (b *Bootstrap) Gameweeks() []Gameweek {
	events := make([]Gameweek, len(b.events))
	for i, e := range b.events {
		gw := Gameweek{
			ID:                   e.ID,
			Name:                 e.Name,
			DeadlineTime:         e.DeadlineTime,
			AverageScore:         e.AverageEntryScore,
			Finished:             e.Finished,
			IsCurrent:            e.IsCurrent,
			IsNext:               e.IsNext,
			MostSelectedPlayerID: e.MostSelected,
			TopElementID:         e.TopElement,
		}
		if e.TopElementInfo != nil {
			points := e.TopElementInfo.Points
			gw.TopElementPoints = &points
		}
		events[i] = gw
	}
	return events
}

func (b *Bootstrap) TeamName(id int) string {
	name, ok := b.teamNames[id]
	if !ok {
		return "Unknown Team"
	}
	return name
}

// PositionID resolves a position given by name or short name
// ("Goalkeeper", "GKP", case and accent insensitive).
func (b *Bootstrap) PositionID(name string) (int, bool) {
	id, ok := b.positionIDs[textutil.Fold(name)]
	return id, ok
}

// AmbiguousTeamError reports a team query matching more than one team.
type AmbiguousTeamError struct {
	Query      string
	Candidates []string
}

func (e *AmbiguousTeamError) Error() string {
	return fmt.Sprintf(
		"multiple teams found for %q: %v. Please be more specific or use the team ID",
		e.Query, e.Candidates,
	)
}

// ResolveTeam maps a partial team name to a team id. Ambiguous queries
// are an error listing the candidates; queries matching nothing get a
// fuzzy-ranked suggestion.
func (b *Bootstrap) ResolveTeam(query string) (int, error) {
	var found []rawTeam
	for _, team := range b.teams {
		if textutil.ContainsFold(team.Name, query) || textutil.ContainsFold(team.ShortName, query) {
			found = append(found, team)
		}
	}

	if len(found) == 1 {
		return found[0].ID, nil
	}
	if len(found) > 1 {
		names := make([]string, len(found))
		for i, t := range found {
			names[i] = t.Name
		}
		return 0, &AmbiguousTeamError{Query: query, Candidates: names}
	}

	suggestion := b.closestTeamName(query)
	if suggestion != "" {
		return 0, fmt.Errorf("no team found matching %q. Did you mean %q?", query, suggestion)
	}
	return 0, fmt.Errorf("no team found matching %q. Please check the name", query)
}

func (b *Bootstrap) closestTeamName(query string) string {
	type scored struct {
		name       string
		similarity float64
	}
	var candidates []scored
	for _, team := range b.teams {
		sim := matchr.JaroWinkler(textutil.Fold(team.Name), textutil.Fold(query), false)
		if sim >= 0.75 {
			candidates = append(candidates, scored{name: team.Name, similarity: sim})
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})
	return candidates[0].name
}
