package fetch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fplkit/lib/cache"
	"fplkit/lib/fetchstats"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/fetch")

// Resolver decides, per resource, whether to serve cached bytes or hit
// the network, writing through to the store on every successful fetch.
// A failed fetch never overwrites an existing entry.
type Resolver struct {
	Store   cache.Store
	Fetcher Fetcher
	// StaleIfError controls whether a forced refresh that fails
	// upstream may still fall back to a stale cache entry. Expired
	// non-forced refreshes always fall back.
	StaleIfError bool
	// optional, failures to record are logged and swallowed
	Stats *fetchstats.Tracker
}

type Result struct {
	Payload   []byte
	FromCache bool
	// Stale is set when the payload came from an entry older than
	// maxAge because the refresh attempt failed. Callers surface this
	// to the consumer rather than masking it.
	Stale     bool
	FetchedAt time.Time
}

func (r Resolver) Resolve(ctx context.Context, key, url string, maxAge time.Duration, force bool) (Result, error) {
	ctx, span := tracer.Start(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(
		attribute.String("cache_key", key),
		attribute.Bool("force", force),
	)

	r.recordRequest(ctx, url)

	entry, cacheErr := r.Store.Get(key)
	hasCache := cacheErr == nil
	if cacheErr != nil && !errors.Is(cacheErr, cache.ErrNotFound) {
		// a corrupt or unreadable entry is treated as a miss
		slog.WarnContext(ctx, "failed to read cache entry", "key", key, "err", cacheErr)
	}

	if !force && hasCache {
		age := time.Since(entry.FetchedAt)
		if age <= maxAge {
			span.AddEvent("served fresh cache")
			slog.DebugContext(ctx, "serving cached payload", "key", key, "age", age)
			return Result{
				Payload:   entry.Payload,
				FromCache: true,
				FetchedAt: entry.FetchedAt,
			}, nil
		}
		slog.DebugContext(ctx, "cache entry expired", "key", key, "age", age, "max_age", maxAge)
	}

	payload, fetchErr := r.Fetcher.Fetch(ctx, url)
	if fetchErr == nil {
		r.recordFetch(ctx, url)
		fetchedAt := time.Now()
		err := r.Store.Put(key, payload, fetchedAt)
		if err != nil {
			slog.WarnContext(ctx, "failed to update cache", "key", key, "err", err)
		}
		return Result{Payload: payload, FetchedAt: fetchedAt}, nil
	}

	span.RecordError(fetchErr)
	if hasCache && (!force || r.StaleIfError) {
		span.AddEvent("served stale cache after fetch failure")
		slog.WarnContext(ctx, "fetch failed, serving stale cache",
			"key", key, "fetched_at", entry.FetchedAt, "err", fetchErr)
		return Result{
			Payload:   entry.Payload,
			FromCache: true,
			Stale:     true,
			FetchedAt: entry.FetchedAt,
		}, nil
	}

	span.SetStatus(codes.Error, "fetch failed with no usable cache entry")
	return Result{}, fetchErr
}

func (r Resolver) recordRequest(ctx context.Context, url string) {
	if r.Stats == nil {
		return
	}
	err := r.Stats.RecordRequest(ctx, url)
	if err != nil {
		slog.DebugContext(ctx, "failed to record request stat", "url", url, "err", err)
	}
}

func (r Resolver) recordFetch(ctx context.Context, url string) {
	if r.Stats == nil {
		return
	}
	err := r.Stats.RecordFetch(ctx, url)
	if err != nil {
		slog.DebugContext(ctx, "failed to record fetch stat", "url", url, "err", err)
	}
}
