package fetch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Fetcher retrieves the raw payload of one upstream resource. A single
// attempt, no retries, any non-2xx response is an error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type RestyFetcher struct {
	Client *resty.Client
}

func (f RestyFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	res, err := f.Client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("network error fetching %s: %w", url, err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d for %s", res.StatusCode(), url)
	}
	return res.Body(), nil
}
