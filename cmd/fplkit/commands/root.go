package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fplkit/fpl"
	"fplkit/lib/cache"
	"fplkit/lib/configutil"
	"fplkit/lib/envelope"
	"fplkit/lib/fetch"
	"fplkit/lib/fetchstats"
	"fplkit/lib/restyutil"
	"fplkit/lib/telemetry"
	"fplkit/livefpl"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

type Config struct {
	CacheDir          string `json:"cache_dir"`
	ApiBaseUrl        string `json:"api_base_url"`
	PricesUrl         string `json:"prices_url"`
	ApiExpiryHours    int    `json:"api_expiry_hours"`
	PricesExpiryHours int    `json:"prices_expiry_hours"`
	// serve stale cache on a failed forced refresh, defaults to true
	StaleIfError *bool `json:"stale_if_error"`
	// when set, every http exchange is dumped to this directory
	RestyOutput string `json:"resty_output"`
}

var (
	verbose      *bool
	forceRefresh *bool
)

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
	forceRefresh = rootCmd.PersistentFlags().Bool("force-refresh", false, "Force fetching fresh data upstream, ignoring cache.")
}

var rootCmd = &cobra.Command{
	Use:   "fplkit",
	Short: "fplkit fetches, caches and normalizes Fantasy Premier League data.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() Config {
	cfg, err := configutil.ReadRecursively[Config]("fplkit.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read config, using defaults", "err", err)
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = "cache"
	}
	if cfg.ApiBaseUrl == "" {
		cfg.ApiBaseUrl = fpl.DefaultBaseURL
	}
	if cfg.PricesUrl == "" {
		cfg.PricesUrl = livefpl.DefaultPricesURL
	}
	if cfg.ApiExpiryHours == 0 {
		cfg.ApiExpiryHours = 24
	}
	if cfg.PricesExpiryHours == 0 {
		cfg.PricesExpiryHours = 12
	}
	return cfg
}

func (c Config) staleIfError() bool {
	if c.StaleIfError == nil {
		return true
	}
	return *c.StaleIfError
}

// openStats is best-effort, the cache works fine without counters.
func openStats(cfg Config) *fetchstats.Tracker {
	stats, err := fetchstats.Open(cfg.CacheDir)
	if err != nil {
		slog.Warn("failed to open fetch stats", "err", err)
		return nil
	}
	return stats
}

func instrument(cfg Config, client *resty.Client) {
	if cfg.RestyOutput == "" {
		return
	}
	output, err := restyutil.NewFilesystemOutput(cfg.RestyOutput)
	if err != nil {
		slog.Warn("failed to create resty output directory", "err", err)
		return
	}
	restyutil.InstrumentClient(client, output)
}

func newAPIClient(cfg Config) (*fpl.Client, error) {
	store, err := cache.NewFileStore(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetTimeout(time.Second * 30)
	instrument(cfg, client)

	return fpl.NewClient(fpl.ClientOptions{
		BaseURL:      cfg.ApiBaseUrl,
		Store:        store,
		Fetcher:      fetch.RestyFetcher{Client: client},
		MaxAge:       time.Duration(cfg.ApiExpiryHours) * time.Hour,
		StaleIfError: cfg.staleIfError(),
		Stats:        openStats(cfg),
	}), nil
}

func newPricesClient(cfg Config) (*livefpl.Client, error) {
	store, err := cache.NewFileStore(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	client := livefpl.NewRestyClient()
	instrument(cfg, client)

	return livefpl.NewClient(livefpl.ClientOptions{
		PricesURL:    cfg.PricesUrl,
		Store:        store,
		Fetcher:      fetch.RestyFetcher{Client: client},
		MaxAge:       time.Duration(cfg.PricesExpiryHours) * time.Hour,
		StaleIfError: cfg.staleIfError(),
		Stats:        openStats(cfg),
	}), nil
}

func envelopeError(format string, args ...any) envelope.Envelope {
	return envelope.Error(fmt.Sprintf(format, args...))
}

// staleNotice describes a degraded result that was served from an
// expired cache entry because the upstream refresh failed. Empty for
// fresh results, so it can be assigned to the envelope message as-is.
func staleNotice(res fetch.Result) string {
	if !res.Stale {
		return ""
	}
	return fmt.Sprintf(
		"Serving stale cached data fetched at %s: the upstream refresh failed.",
		res.FetchedAt.UTC().Format(time.RFC3339),
	)
}

func emitSuccess(data any, message string) {
	env := envelope.Success(data)
	env.Message = message
	emit(env)
}

// emit writes the result envelope to stdout. Every command terminates
// through here exactly once, success, info and error alike, so callers
// can always parse stdout as a single json document.
func emit(env envelope.Envelope) {
	err := env.Write(os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
