package fetchstats

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS fetch_stats (
	url TEXT PRIMARY KEY,
	requests INTEGER NOT NULL DEFAULT 0,
	api_fetches INTEGER NOT NULL DEFAULT 0
);`

// Tracker counts, per upstream URL, how many times a resource was
// requested versus how often the network was actually hit. The ratio
// shows how much load the cache absorbs.
type Tracker struct {
	db *sql.DB
}

func NewTracker(db *sql.DB) (*Tracker, error) {
	_, err := db.Exec(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetch_stats table: %w", err)
	}
	return &Tracker{db: db}, nil
}

// Open creates a Tracker backed by a sqlite file inside the cache
// directory.
func Open(cacheDir string) (*Tracker, error) {
	db, err := sql.Open("sqlite", filepath.Join(cacheDir, "fetch_stats.db"))
	if err != nil {
		return nil, err
	}
	return NewTracker(db)
}

func (t *Tracker) Close() error {
	return t.db.Close()
}

func (t *Tracker) RecordRequest(ctx context.Context, url string) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO fetch_stats (url, requests, api_fetches) VALUES (?, 1, 0)
		ON CONFLICT (url) DO UPDATE SET requests = requests + 1`,
		url,
	)
	return err
}

func (t *Tracker) RecordFetch(ctx context.Context, url string) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO fetch_stats (url, requests, api_fetches) VALUES (?, 0, 1)
		ON CONFLICT (url) DO UPDATE SET api_fetches = api_fetches + 1`,
		url,
	)
	return err
}

type Stats struct {
	Requests   int64
	ApiFetches int64
}

func (t *Tracker) Stats(ctx context.Context, url string) (Stats, error) {
	var s Stats
	err := t.db.QueryRowContext(ctx,
		`SELECT requests, api_fetches FROM fetch_stats WHERE url = ?`, url,
	).Scan(&s.Requests, &s.ApiFetches)
	if err == sql.ErrNoRows {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, err
	}
	return s, nil
}
