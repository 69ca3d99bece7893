package commands

import (
	"fplkit/lib/envelope"

	"github.com/spf13/cobra"
)

var (
	fixturesAll      *bool
	fixturesGameweek *int
)

func init() {
	fixturesAll = fixturesCmd.Flags().Bool("fixtures", false, "Show all fixtures.")
	fixturesGameweek = fixturesCmd.Flags().Int("gameweek", 0, "Fetch fixtures for a specific gameweek.")
	rootCmd.AddCommand(fixturesCmd)
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Shows fixtures, optionally narrowed to one gameweek.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()

		// --fixtures wins over --gameweek when both are given
		var gw *int
		if !*fixturesAll && cmd.Flags().Changed("gameweek") {
			gw = fixturesGameweek
		}
		if !*fixturesAll && gw == nil {
			emit(envelope.Info("No specific data requested. Use --fixtures or --gameweek <n>.", nil))
			return
		}

		client, err := newAPIClient(cfg)
		if err != nil {
			emit(envelopeError("Failed to fetch fixtures: %v", err))
			return
		}

		fixtures, res, err := client.Fixtures(ctx, gw, *forceRefresh)
		if err != nil {
			emit(envelopeError("Failed to fetch fixtures: %v", err))
			return
		}

		emitSuccess(map[string]any{"fixtures": fixtures}, staleNotice(res))
	},
}
