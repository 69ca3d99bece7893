package commands

import (
	"github.com/spf13/cobra"
)

var (
	liveGameweek  *int
	livePlayerIDs *[]int
)

func init() {
	liveGameweek = liveCmd.Flags().Int("gameweek", 0, "Fetch live data for a specific gameweek.")
	livePlayerIDs = liveCmd.Flags().IntSlice("player-ids", nil, "Filter output to one or more player IDs.")
	liveCmd.MarkFlagRequired("gameweek")
	liveCmd.MarkFlagRequired("player-ids")
	rootCmd.AddCommand(liveCmd)
}

var liveCmd = &cobra.Command{
	Use:   "live --gameweek <n> --player-ids <id,...>",
	Short: "Shows live gameweek stats for the given players.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()

		client, err := newAPIClient(cfg)
		if err != nil {
			emit(envelopeError("Failed to fetch live gameweek data: %v", err))
			return
		}

		live, res, err := client.Live(ctx, *liveGameweek, *livePlayerIDs, *forceRefresh)
		if err != nil {
			emit(envelopeError("Failed to fetch live gameweek data: %v", err))
			return
		}

		emitSuccess(map[string]any{"live": live}, staleNotice(res))
	},
}
