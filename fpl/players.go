package fpl

import "fplkit/lib/textutil"

// PlayerFilter narrows the bootstrap element list. All bounds are
// inclusive; zero-value fields are inactive.
type PlayerFilter struct {
	// accent and case insensitive substring of the full name
	Name       string
	IDs        []int
	TeamID     *int
	PositionID *int
	MinPrice   *float64
	MaxPrice   *float64
}

func (b *Bootstrap) Players(filter PlayerFilter) []Player {
	idSet := map[int]bool{}
	for _, id := range filter.IDs {
		idSet[id] = true
	}

	players := []Player{}
	for _, e := range b.elements {
		fullName := e.FirstName
		if e.SecondName != "" {
			if fullName != "" {
				fullName += " "
			}
			fullName += e.SecondName
		}

		var cost *float64
		if e.NowCost != nil {
			c := float64(*e.NowCost) / 10.0
			cost = &c
		}

		if filter.Name != "" && !textutil.ContainsFold(fullName, filter.Name) {
			continue
		}
		if len(filter.IDs) > 0 && !idSet[e.ID] {
			continue
		}
		if filter.TeamID != nil && *filter.TeamID != e.Team {
			continue
		}
		if filter.PositionID != nil && *filter.PositionID != e.ElementType {
			continue
		}
		if filter.MinPrice != nil && (cost == nil || *cost < *filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && (cost == nil || *cost > *filter.MaxPrice) {
			continue
		}

		players = append(players, Player{
			ID:                 e.ID,
			FirstName:          e.FirstName,
			SecondName:         e.SecondName,
			FullName:           fullName,
			TeamID:             e.Team,
			TeamName:           b.TeamName(e.Team),
			TotalPoints:        e.TotalPoints,
			PointsThisGameweek: e.EventPoints,
			ElementType:        e.ElementType,
			Position:           b.positionName(e.ElementType),
			NowCost:            cost,
			Status:             e.Status,
			SelectedByPercent:  e.SelectedByPercent,
		})
	}
	return players
}

func (b *Bootstrap) positionName(elementType int) string {
	short, ok := b.positionShort[elementType]
	if !ok {
		return "Unknown"
	}
	return short
}
