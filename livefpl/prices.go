package livefpl

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// MaxPlayers bounds how many price records a single result may carry.
const MaxPlayers = 100

// PriceProgress is the ownership progress of one player towards a price
// change, as embedded in the prices page markup.
type PriceProgress struct {
	ID         int     `json:"id"`
	PctNow     float64 `json:"pct_now"`
	PctTonight float64 `json:"pct_tonight"`
}

// ParsePrices extracts price progress records from the prices page.
// Elements that lack any of the data-id, data-now or data-tonight
// attributes, or carry values that do not parse, are dropped. Duplicate
// ids keep the first occurrence.
func ParsePrices(payload []byte) ([]PriceProgress, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}

	players := []PriceProgress{}
	seen := map[int]bool{}
	doc.Find("div[data-id]").Each(func(_ int, div *goquery.Selection) {
		idAttr := div.AttrOr("data-id", "")
		id, err := strconv.Atoi(idAttr)
		if err != nil {
			return
		}

		nowAttr := div.AttrOr("data-now", "")
		now, err := strconv.ParseFloat(nowAttr, 64)
		if err != nil {
			return
		}

		tonightAttr := div.AttrOr("data-tonight", "")
		tonight, err := strconv.ParseFloat(tonightAttr, 64)
		if err != nil {
			return
		}

		if seen[id] {
			return
		}
		seen[id] = true

		players = append(players, PriceProgress{
			ID:         id,
			PctNow:     now,
			PctTonight: tonight,
		})
	})

	return players, nil
}

// PriceFilter narrows price progress records. Rise keeps records whose
// metric is at or above the threshold, Fall keeps records at or below.
// Now and Tonight select which metric the thresholds apply to; with
// neither set, thresholds apply to both. A record survives when any
// applied combination matches.
type PriceFilter struct {
	IDs     []int
	Rise    *float64
	Fall    *float64
	Now     bool
	Tonight bool
}

// HasConditions reports whether the filter narrows anything at all.
func (f PriceFilter) HasConditions() bool {
	return len(f.IDs) > 0 || f.hasThresholds() || f.Now || f.Tonight
}

func (f PriceFilter) hasThresholds() bool {
	return f.Rise != nil || f.Fall != nil
}

func (f PriceFilter) metricMatches(value float64) bool {
	if f.Rise != nil && value >= *f.Rise {
		return true
	}
	if f.Fall != nil && value <= *f.Fall {
		return true
	}
	return false
}

func (f PriceFilter) Apply(players []PriceProgress) []PriceProgress {
	out := players
	if len(f.IDs) > 0 {
		ids := make(map[int]bool, len(f.IDs))
		for _, id := range f.IDs {
			ids[id] = true
		}
		selected := []PriceProgress{}
		for _, p := range out {
			if ids[p.ID] {
				selected = append(selected, p)
			}
		}
		out = selected
	}

	if !f.hasThresholds() && !f.Now && !f.Tonight {
		return out
	}

	both := !f.Now && !f.Tonight
	selected := []PriceProgress{}
	for _, p := range out {
		keep := false
		if f.Now || both {
			keep = keep || f.metricMatches(p.PctNow)
		}
		if f.Tonight || both {
			keep = keep || f.metricMatches(p.PctTonight)
		}
		if keep {
			selected = append(selected, p)
		}
	}
	return selected
}

// PricesResult is the caller-facing shape of a prices lookup. When the
// record count exceeds MaxPlayers the list is truncated and LimitHit
// explains how to narrow the query; PlayerCount always reports the
// pre-truncation count.
type PricesResult struct {
	Players      []PriceProgress `json:"players"`
	FetchedAt    string          `json:"fetched_at"`
	PlayerCount  int             `json:"player_count"`
	LimitHit     bool            `json:"limit_hit,omitempty"`
	LimitMessage string          `json:"limit_message,omitempty"`
}

func BuildResult(players []PriceProgress, fetchedAt time.Time) PricesResult {
	result := PricesResult{
		Players:     players,
		FetchedAt:   fetchedAt.UTC().Format(time.RFC3339),
		PlayerCount: len(players),
	}
	if result.Players == nil {
		result.Players = []PriceProgress{}
	}
	if len(players) > MaxPlayers {
		result.Players = players[:MaxPlayers]
		result.LimitHit = true
		result.LimitMessage = fmt.Sprintf(
			"Returned %d players which exceeds the limit of %d. "+
				"Please narrow the results using --player-ids or the --filter-* options to reduce the number of players returned.",
			len(players), MaxPlayers,
		)
	}
	return result
}
