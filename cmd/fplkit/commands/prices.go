package commands

import (
	"fplkit/lib/envelope"
	"fplkit/livefpl"

	"github.com/spf13/cobra"
)

var (
	pricesPlayerIDs *[]int
	pricesFilterGt  *float64
	pricesFilterLt  *float64
	pricesNow       *bool
	pricesTonight   *bool
)

func init() {
	pricesPlayerIDs = pricesCmd.Flags().IntSlice("player-ids", nil, "Filter players by player IDs.")
	pricesFilterGt = pricesCmd.Flags().Float64("filter-gt", 0, "Numeric threshold: select metric >= value (use with --filter-now or --filter-tonight).")
	pricesFilterLt = pricesCmd.Flags().Float64("filter-lt", 0, "Numeric threshold: select metric <= value (use with --filter-now or --filter-tonight).")
	pricesNow = pricesCmd.Flags().Bool("filter-now", false, "Apply --filter-gt/--filter-lt to `pct_now`.")
	pricesTonight = pricesCmd.Flags().Bool("filter-tonight", false, "Apply --filter-gt/--filter-lt to `pct_tonight`.")
	rootCmd.AddCommand(pricesCmd)
}

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Shows price change progress scraped from livefpl.net.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()

		filter := livefpl.PriceFilter{
			IDs:     *pricesPlayerIDs,
			Now:     *pricesNow,
			Tonight: *pricesTonight,
		}
		if cmd.Flags().Changed("filter-gt") {
			filter.Rise = pricesFilterGt
		}
		if cmd.Flags().Changed("filter-lt") {
			filter.Fall = pricesFilterLt
		}

		if !filter.HasConditions() {
			emit(envelope.Info(
				"No specific data requested. Use --player-ids or filters: --filter-now/--filter-tonight with --filter-gt/--filter-lt.",
				nil,
			))
			return
		}

		client, err := newPricesClient(cfg)
		if err != nil {
			emit(envelopeError("%v", err))
			return
		}

		players, res, err := client.Prices(ctx, *forceRefresh)
		if err != nil {
			emit(envelopeError("%v", err))
			return
		}
		if len(players) == 0 {
			emit(envelope.Info("No price progress records were found in the prices page.", nil))
			return
		}

		result := livefpl.BuildResult(filter.Apply(players), res.FetchedAt)
		emitSuccess(result, staleNotice(res))
	},
}
