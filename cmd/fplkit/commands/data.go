package commands

import (
	"errors"
	"fmt"

	"fplkit/fpl"
	"fplkit/lib/envelope"

	"github.com/spf13/cobra"
)

var (
	dataGameweeks *bool
	dataTeams     *bool
	dataTeam      *string
	dataTeamID    *int
	dataPlayer    *string
	dataPlayerIDs *[]int
	dataPosition  *string
	dataMinPrice  *float64
	dataMaxPrice  *float64
)

func init() {
	dataGameweeks = dataCmd.Flags().Bool("gameweeks", false, "Show details for all gameweeks.")
	dataTeams = dataCmd.Flags().Bool("teams", false, "Show details for all teams.")
	dataTeam = dataCmd.Flags().String("team", "", "Filter players by team name (case-insensitive, partial match).")
	dataTeamID = dataCmd.Flags().Int("team-id", 0, "Filter players by team ID.")
	dataPlayer = dataCmd.Flags().String("player", "", "Filter players by player name (case-insensitive, partial match).")
	dataPlayerIDs = dataCmd.Flags().IntSlice("player-ids", nil, "Filter players by multiple player IDs.")
	dataPosition = dataCmd.Flags().String("position", "", "Filter players by position (GKP, DEF, MID, FWD).")
	dataMinPrice = dataCmd.Flags().Float64("min-price", 0, "Minimum player cost (e.g., 4.5).")
	dataMaxPrice = dataCmd.Flags().Float64("max-price", 0, "Maximum player cost (e.g., 10.0).")
	rootCmd.AddCommand(dataCmd)
}

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Shows general game data: gameweeks, teams and filtered players.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()

		client, err := newAPIClient(cfg)
		if err != nil {
			emit(envelopeError("Failed to load FPL general data: %v", err))
			return
		}

		bootstrap, res, err := client.Bootstrap(ctx, *forceRefresh)
		if err != nil {
			emit(envelopeError("Failed to load FPL general data: %v", err))
			return
		}

		teamIDSet := cmd.Flags().Changed("team-id")
		minPriceSet := cmd.Flags().Changed("min-price")
		maxPriceSet := cmd.Flags().Changed("max-price")

		output := map[string]any{}

		var filterTeamID *int
		if teamIDSet {
			filterTeamID = dataTeamID
		}
		if *dataTeam != "" {
			resolved, err := bootstrap.ResolveTeam(*dataTeam)
			var ambiguous *fpl.AmbiguousTeamError
			switch {
			case errors.As(err, &ambiguous):
				emit(envelopeError("%v", err))
				return
			case err != nil && filterTeamID == nil:
				emit(envelopeError("%v", err))
				return
			case err == nil && filterTeamID != nil && *filterTeamID != resolved:
				output["team_filter_info"] = fmt.Sprintf(
					"Warning: Both --team %q (ID %d) and --team-id %d were provided and conflict. Using --team-id: %d.",
					*dataTeam, resolved, *filterTeamID, *filterTeamID,
				)
			case err == nil:
				filterTeamID = &resolved
				output["team_filter_info"] = fmt.Sprintf(
					"Filtering by team name: %q (Resolved to ID: %d)", *dataTeam, resolved,
				)
			}
		} else if filterTeamID != nil {
			output["team_filter_info"] = fmt.Sprintf("Filtering by team ID: %d", *filterTeamID)
		}

		if *dataGameweeks {
			output["gameweeks"] = bootstrap.Gameweeks()
		}
		if *dataTeams {
			output["teams"] = bootstrap.Teams()
		}

		playerFiltersActive := *dataPlayer != "" || len(*dataPlayerIDs) > 0 ||
			*dataPosition != "" || minPriceSet || maxPriceSet ||
			*dataTeam != "" || teamIDSet

		if playerFiltersActive {
			filter := fpl.PlayerFilter{
				Name:   *dataPlayer,
				IDs:    *dataPlayerIDs,
				TeamID: filterTeamID,
			}
			if *dataPosition != "" {
				id, ok := bootstrap.PositionID(*dataPosition)
				if !ok {
					emit(envelopeError("Unknown position %q. Use GKP, DEF, MID or FWD.", *dataPosition))
					return
				}
				filter.PositionID = &id
			}
			if minPriceSet {
				filter.MinPrice = dataMinPrice
			}
			if maxPriceSet {
				filter.MaxPrice = dataMaxPrice
			}

			players := bootstrap.Players(filter)
			output["player_count"] = len(players)
			output["players"] = players
		}

		if !*dataGameweeks && !*dataTeams && !playerFiltersActive {
			emit(envelope.Info("No specific data requested. Use --gameweeks, --teams, or filters like --player, --team, etc.", output))
			return
		}

		emitSuccess(output, staleNotice(res))
	},
}
