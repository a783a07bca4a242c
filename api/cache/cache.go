// Package cache stores scraped payloads on disk so they can be formatted
// again without contacting the portal.
package cache

import (
	"encoding/gob"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/morikuni/failure/v2"
)

// ErrorCode defines error types for the snapshot cache
type ErrorCode string

const (
	// ErrNotFound is returned when no snapshot is stored under a key
	ErrNotFound ErrorCode = "SnapshotNotFound"
	// ErrCorrupt is returned when a stored snapshot cannot be decoded
	ErrCorrupt ErrorCode = "SnapshotCorrupt"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// DefaultDir is the default cache directory
var DefaultDir string

func init() {
	cacheHome, err := os.UserCacheDir()
	if err != nil {
		DefaultDir = filepath.Join(os.TempDir(), "ufvdata")
	} else {
		DefaultDir = filepath.Join(cacheHome, "ufvdata")
	}
}

// Entry is a stored value and the time it was stored.
type Entry[T any] struct {
	Value     T
	CreatedAt time.Time
}

// Cache stores gob-encoded values of type T, one file per key.
type Cache[T any] struct {
	dir string
}

// New returns a cache rooted at dir, or DefaultDir when dir is empty.
func New[T any](dir string) *Cache[T] {
	if dir == "" {
		dir = DefaultDir
	}
	return &Cache[T]{dir: dir}
}

// Dir is where entries are stored.
func (c *Cache[T]) Dir() string {
	return c.dir
}

// normalizeKey converts a cache key into a filesystem-safe format
func normalizeKey(key string) string {
	normalized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '-' || r == '_' || r == '.' || r == '/' {
			return r
		}
		return '_'
	}, key)

	for strings.Contains(normalized, "..") {
		normalized = strings.ReplaceAll(normalized, "..", ".")
	}
	for strings.Contains(normalized, "//") {
		normalized = strings.ReplaceAll(normalized, "//", "/")
	}
	return strings.Trim(normalized, "/")
}

func (c *Cache[T]) path(key string) string {
	return filepath.Join(c.dir, normalizeKey(key)+".gob")
}

// Get loads the entry stored under key.
func (c *Cache[T]) Get(key string) (Entry[T], error) {
	path := c.path(key)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Entry[T]{}, failure.New(ErrNotFound,
			failure.Message("No snapshot has been stored"),
			failure.Context{"path": path},
		)
	}
	if err != nil {
		return Entry[T]{}, failure.Wrap(err, failure.Context{"path": path})
	}
	defer f.Close()

	var entry Entry[T]
	if err := gob.NewDecoder(f).Decode(&entry); err != nil {
		return Entry[T]{}, failure.Translate(err, ErrCorrupt,
			failure.Message("Stored snapshot cannot be read"),
			failure.Context{"path": path},
		)
	}
	return entry, nil
}

// Set stores value under key, replacing any previous entry.
func (c *Cache[T]) Set(key string, value T) error {
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return failure.Wrap(err, failure.Context{"path": path})
	}

	// Written next to the destination and renamed so a failed write never
	// leaves a truncated snapshot behind.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return failure.Wrap(err, failure.Context{"path": path})
	}
	defer os.Remove(tmp.Name())

	entry := Entry[T]{Value: value, CreatedAt: time.Now()}
	if err := gob.NewEncoder(tmp).Encode(entry); err != nil {
		tmp.Close()
		return failure.Wrap(err, failure.Context{"path": path})
	}
	if err := tmp.Close(); err != nil {
		return failure.Wrap(err, failure.Context{"path": path})
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return failure.Wrap(err, failure.Context{"path": path})
	}
	return nil
}
