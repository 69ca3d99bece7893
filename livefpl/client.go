package livefpl

import (
	"context"
	"time"

	"fplkit/lib/cache"
	"fplkit/lib/fetch"
	"fplkit/lib/fetchstats"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const DefaultPricesURL = "https://www.livefpl.net/prices"

// NewRestyClient returns an http client able to reach the prices page,
// which sits behind cloudflare and rejects default go user agents.
func NewRestyClient() *resty.Client {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)
	return client
}

type ClientOptions struct {
	// defaults to DefaultPricesURL
	PricesURL string
	Store     cache.Store
	Fetcher   fetch.Fetcher
	// freshness window for the prices page, defaults to 12 hours
	MaxAge time.Duration
	// serve stale cache when a forced refresh fails upstream
	StaleIfError bool
	Stats        *fetchstats.Tracker
}

// Client fetches the livefpl.net prices page through a write-through
// cache and normalizes it into price progress records.
type Client struct {
	pricesURL string
	maxAge    time.Duration
	resolver  fetch.Resolver
}

func NewClient(opts ClientOptions) *Client {
	pricesURL := opts.PricesURL
	if pricesURL == "" {
		pricesURL = DefaultPricesURL
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = fetch.RestyFetcher{Client: NewRestyClient()}
	}
	maxAge := opts.MaxAge
	if maxAge == 0 {
		maxAge = 12 * time.Hour
	}
	return &Client{
		pricesURL: pricesURL,
		maxAge:    maxAge,
		resolver: fetch.Resolver{
			Store:        opts.Store,
			Fetcher:      fetcher,
			StaleIfError: opts.StaleIfError,
			Stats:        opts.Stats,
		},
	}
}

func (c *Client) Prices(ctx context.Context, force bool) ([]PriceProgress, fetch.Result, error) {
	res, err := c.resolver.Resolve(ctx, "prices", c.pricesURL, c.maxAge, force)
	if err != nil {
		return nil, res, err
	}
	players, err := ParsePrices(res.Payload)
	if err != nil {
		return nil, res, err
	}
	return players, res, nil
}
