package fpl

import (
	"encoding/json"
	"fmt"
)

type rawLiveElement struct {
	ID      int             `json:"id"`
	Stats   map[string]any  `json:"stats"`
	Explain json.RawMessage `json:"explain"`
}

type rawLiveEvent struct {
	ID    int            `json:"id"`
	Stats map[string]any `json:"stats"`
}

type liveResponse struct {
	Elements []rawLiveElement `json:"elements"`
	Events   []rawLiveEvent   `json:"events"`
}

type LiveElement struct {
	ID      int             `json:"id"`
	Stats   map[string]any  `json:"stats"`
	Explain json.RawMessage `json:"explain"`
}

type LiveEvent struct {
	ID    int            `json:"id"`
	Stats map[string]any `json:"stats"`
}

type LiveGameweek struct {
	Gameweek int           `json:"gameweek"`
	Elements []LiveElement `json:"elements"`
	Events   []LiveEvent   `json:"events"`
}

// ParseLive projects the per-gameweek live payload, optionally
// narrowing elements to the given player ids.
func ParseLive(payload []byte, gameweek int, playerIDs []int) (LiveGameweek, error) {
	var raw liveResponse
	err := json.Unmarshal(payload, &raw)
	if err != nil {
		return LiveGameweek{}, fmt.Errorf("failed to parse live gameweek payload: %w", err)
	}

	idSet := map[int]bool{}
	for _, id := range playerIDs {
		idSet[id] = true
	}

	out := LiveGameweek{
		Gameweek: gameweek,
		Elements: []LiveElement{},
		Events:   []LiveEvent{},
	}
	for _, e := range raw.Elements {
		if len(playerIDs) > 0 && !idSet[e.ID] {
			continue
		}
		stats := e.Stats
		if stats == nil {
			stats = map[string]any{}
		}
		explain := e.Explain
		if len(explain) == 0 {
			explain = json.RawMessage(`[]`)
		}
		out.Elements = append(out.Elements, LiveElement{
			ID:      e.ID,
			Stats:   stats,
			Explain: explain,
		})
	}
	for _, ev := range raw.Events {
		stats := ev.Stats
		if stats == nil {
			stats = map[string]any{}
		}
		out.Events = append(out.Events, LiveEvent{ID: ev.ID, Stats: stats})
	}
	return out, nil
}
