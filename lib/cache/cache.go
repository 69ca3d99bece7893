package cache

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("cache entry not found")

// Entry is the one cached payload held for a resource key. Entries are
// replaced in place on a fresh fetch, never appended to.
type Entry struct {
	Key       string
	Payload   []byte
	FetchedAt time.Time
}

// Store persists a single raw payload per resource key. Get returns
// ErrNotFound when no entry exists. Put overwrites atomically with
// respect to concurrent readers of the same key.
type Store interface {
	Get(key string) (Entry, error)
	Put(key string, payload []byte, fetchedAt time.Time) error
}
