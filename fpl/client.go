package fpl

import (
	"context"
	"fmt"
	"time"

	"fplkit/lib/cache"
	"fplkit/lib/fetch"
	"fplkit/lib/fetchstats"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://fantasy.premierleague.com/api"

type ClientOptions struct {
	// defaults to DefaultBaseURL
	BaseURL string
	Store   cache.Store
	// defaults to a plain resty fetcher
	Fetcher fetch.Fetcher
	// freshness window for every API resource
	MaxAge time.Duration
	// serve stale cache when a forced refresh fails upstream
	StaleIfError bool
	// optional request/fetch counters
	Stats *fetchstats.Tracker
}

// Client fetches and normalizes resources of the Fantasy Premier League
// JSON API through a write-through cache.
type Client struct {
	baseURL  string
	maxAge   time.Duration
	resolver fetch.Resolver
}

func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		client := resty.New()
		client.SetTimeout(time.Second * 30)
		fetcher = fetch.RestyFetcher{Client: client}
	}
	maxAge := opts.MaxAge
	if maxAge == 0 {
		maxAge = 24 * time.Hour
	}
	return &Client{
		baseURL: baseURL,
		maxAge:  maxAge,
		resolver: fetch.Resolver{
			Store:        opts.Store,
			Fetcher:      fetcher,
			StaleIfError: opts.StaleIfError,
			Stats:        opts.Stats,
		},
	}
}

func (c *Client) resolve(ctx context.Context, key, path string, force bool) (fetch.Result, error) {
	return c.resolver.Resolve(ctx, key, c.baseURL+path, c.maxAge, force)
}

func (c *Client) Bootstrap(ctx context.Context, force bool) (*Bootstrap, fetch.Result, error) {
	res, err := c.resolve(ctx, "bootstrap_static", "/bootstrap-static/", force)
	if err != nil {
		return nil, res, err
	}
	bootstrap, err := ParseBootstrap(res.Payload)
	if err != nil {
		return nil, res, err
	}
	return bootstrap, res, nil
}

// Fixtures fetches all fixtures, or only those of one gameweek when gw
// is non-nil.
func (c *Client) Fixtures(ctx context.Context, gw *int, force bool) ([]Fixture, fetch.Result, error) {
	key := "fixtures"
	path := "/fixtures/"
	if gw != nil {
		key = fmt.Sprintf("fixtures_event_%d", *gw)
		path = fmt.Sprintf("/fixtures/?event=%d", *gw)
	}
	res, err := c.resolve(ctx, key, path, force)
	if err != nil {
		return nil, res, err
	}
	fixtures, err := ParseFixtures(res.Payload)
	if err != nil {
		return nil, res, err
	}
	return fixtures, res, nil
}

func (c *Client) Live(ctx context.Context, gameweek int, playerIDs []int, force bool) (LiveGameweek, fetch.Result, error) {
	key := fmt.Sprintf("live_event_%d", gameweek)
	path := fmt.Sprintf("/event/%d/live/", gameweek)
	res, err := c.resolve(ctx, key, path, force)
	if err != nil {
		return LiveGameweek{}, res, err
	}
	live, err := ParseLive(res.Payload, gameweek, playerIDs)
	if err != nil {
		return LiveGameweek{}, res, err
	}
	return live, res, nil
}

func (c *Client) Standings(ctx context.Context, leagueID, page int, force bool) (Standings, fetch.Result, error) {
	key := fmt.Sprintf("league_%d_standings_p%d", leagueID, page)
	path := fmt.Sprintf("/leagues-classic/%d/standings/?page_standings=%d", leagueID, page)
	res, err := c.resolve(ctx, key, path, force)
	if err != nil {
		return Standings{}, res, err
	}
	standings, err := ParseStandings(res.Payload, page)
	if err != nil {
		return Standings{}, res, err
	}
	return standings, res, nil
}

func (c *Client) EntryDetails(ctx context.Context, entryID int, force bool) (EntryDetails, fetch.Result, error) {
	key := fmt.Sprintf("entry_%d_details", entryID)
	path := fmt.Sprintf("/entry/%d/", entryID)
	res, err := c.resolve(ctx, key, path, force)
	if err != nil {
		return EntryDetails{}, res, err
	}
	details, err := ParseEntryDetails(res.Payload)
	if err != nil {
		return EntryDetails{}, res, err
	}
	return details, res, nil
}

func (c *Client) EntryHistory(ctx context.Context, entryID int, force bool) (EntryHistory, fetch.Result, error) {
	key := fmt.Sprintf("entry_%d_history", entryID)
	path := fmt.Sprintf("/entry/%d/history/", entryID)
	res, err := c.resolve(ctx, key, path, force)
	if err != nil {
		return EntryHistory{}, res, err
	}
	history, err := ParseEntryHistory(res.Payload)
	if err != nil {
		return EntryHistory{}, res, err
	}
	return history, res, nil
}

func (c *Client) EntryTransfers(ctx context.Context, entryID int, force bool) ([]Transfer, fetch.Result, error) {
	key := fmt.Sprintf("entry_%d_transfers", entryID)
	path := fmt.Sprintf("/entry/%d/transfers/", entryID)
	res, err := c.resolve(ctx, key, path, force)
	if err != nil {
		return nil, res, err
	}
	transfers, err := ParseEntryTransfers(res.Payload)
	if err != nil {
		return nil, res, err
	}
	return transfers, res, nil
}

func (c *Client) EntryPicks(ctx context.Context, entryID, gameweek int, force bool) (EntryPicks, fetch.Result, error) {
	key := fmt.Sprintf("entry_%d_picks_gw%d", entryID, gameweek)
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gameweek)
	res, err := c.resolve(ctx, key, path, force)
	if err != nil {
		return EntryPicks{}, res, err
	}
	picks, err := ParseEntryPicks(res.Payload, gameweek)
	if err != nil {
		return EntryPicks{}, res, err
	}
	return picks, res, nil
}
