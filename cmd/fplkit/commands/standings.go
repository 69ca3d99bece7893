package commands

import (
	"strconv"

	"github.com/spf13/cobra"
)

var standingsPage *int

func init() {
	standingsPage = standingsCmd.Flags().Int("page", 1, "Page of standings to fetch.")
	rootCmd.AddCommand(standingsCmd)
}

var standingsCmd = &cobra.Command{
	Use:   "standings <league-id>",
	Short: "Shows classic league standings for the given league ID.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()

		leagueID, err := strconv.Atoi(args[0])
		if err != nil {
			emit(envelopeError("Invalid league ID %q: must be an integer.", args[0]))
			return
		}

		client, err := newAPIClient(cfg)
		if err != nil {
			emit(envelopeError("Failed to fetch league standings: %v", err))
			return
		}

		standings, res, err := client.Standings(ctx, leagueID, *standingsPage, *forceRefresh)
		if err != nil {
			emit(envelopeError("Failed to fetch league standings: %v", err))
			return
		}

		emitSuccess(standings, staleNotice(res))
	},
}
