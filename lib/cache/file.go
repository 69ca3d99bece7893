package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore keeps one flat file per resource key under a directory.
// The payload is stored raw and the fetch timestamp is the file's
// modification time, so a cache survives process restarts without any
// sidecar metadata.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory cannot be empty")
	}
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func safeFilename(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, "fpl_cache_"+safeFilename(key)+".raw")
}

func (s *FileStore) Get(key string) (Entry, error) {
	path := s.path(key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to stat cache file: %w", err)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read cache file: %w", err)
	}
	return Entry{
		Key:       key,
		Payload:   payload,
		FetchedAt: info.ModTime(),
	}, nil
}

func (s *FileStore) Put(key string, payload []byte, fetchedAt time.Time) error {
	path := s.path(key)

	// write to a temp file then rename so a reader never observes a
	// half-written entry
	tmp, err := os.CreateTemp(s.dir, ".fpl_cache_*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	_, err = tmp.Write(payload)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	err = os.Chtimes(tmpName, fetchedAt, fetchedAt)
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set cache timestamp: %w", err)
	}
	err = os.Rename(tmpName, path)
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to commit cache file: %w", err)
	}
	return nil
}
