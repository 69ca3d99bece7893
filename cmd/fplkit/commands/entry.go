package commands

import (
	"strconv"

	"fplkit/lib/envelope"
	"fplkit/lib/fetch"

	"github.com/spf13/cobra"
)

var (
	entryDetails   *bool
	entryHistory   *bool
	entryTransfers *bool
	entryPicks     *int
)

func init() {
	entryDetails = entryCmd.Flags().Bool("details", false, "Get general details about the FPL entry (team name, manager, overall points/rank, leagues, etc.).")
	entryHistory = entryCmd.Flags().Bool("history", false, "Get historical performance data for the FPL entry.")
	entryTransfers = entryCmd.Flags().Bool("transfers", false, "Get player transfer history for the FPL entry.")
	entryPicks = entryCmd.Flags().Int("picks", 0, "Get player picks for a specific gameweek.")
	rootCmd.AddCommand(entryCmd)
}

var entryCmd = &cobra.Command{
	Use:   "entry <entry-id>",
	Short: "Shows details, history, transfers and picks of one FPL entry.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()

		entryID, err := strconv.Atoi(args[0])
		if err != nil {
			emit(envelopeError("Invalid entry ID %q: must be an integer.", args[0]))
			return
		}

		picksSet := cmd.Flags().Changed("picks")
		if !*entryDetails && !*entryHistory && !*entryTransfers && !picksSet {
			emit(envelope.Info(
				"No specific data type requested for entry ID "+args[0]+". Use --details, --history, --transfers, or --picks <GAMEWEEK_NUMBER>.",
				map[string]any{},
			))
			return
		}

		client, err := newAPIClient(cfg)
		if err != nil {
			emit(envelopeError("%v", err))
			return
		}

		output := map[string]any{}
		// the first stale resource is enough to flag degradation
		var stale fetch.Result

		if *entryDetails {
			details, res, err := client.EntryDetails(ctx, entryID, *forceRefresh)
			if err != nil {
				emit(envelopeError("Failed to get entry details for ID %d: %v", entryID, err))
				return
			}
			if res.Stale && !stale.Stale {
				stale = res
			}
			output["entry_details"] = details
		}

		if *entryHistory {
			history, res, err := client.EntryHistory(ctx, entryID, *forceRefresh)
			if err != nil {
				emit(envelopeError("Failed to get history for entry ID %d: %v", entryID, err))
				return
			}
			if res.Stale && !stale.Stale {
				stale = res
			}
			output["entry_history"] = history
		}

		if *entryTransfers {
			transfers, res, err := client.EntryTransfers(ctx, entryID, *forceRefresh)
			if err != nil {
				emit(envelopeError("Failed to get transfers for entry ID %d: %v", entryID, err))
				return
			}
			if res.Stale && !stale.Stale {
				stale = res
			}
			output["entry_transfers"] = transfers
		}

		if picksSet {
			picks, res, err := client.EntryPicks(ctx, entryID, *entryPicks, *forceRefresh)
			if err != nil {
				emit(envelopeError("Failed to get picks for entry ID %d, Gameweek %d: %v", entryID, *entryPicks, err))
				return
			}
			if res.Stale && !stale.Stale {
				stale = res
			}
			output["entry_picks"] = picks
		}

		emitSuccess(output, staleNotice(stale))
	},
}
