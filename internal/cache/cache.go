// Package cache stores raw API documents on disk, one file per entity per
// calendar day, so repeated runs on the same day skip the network.
//
// Entries are never expired or cleaned up; the date in the filename is the
// only freshness rule.
package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"goldeneye/internal/metrics"
)

// DateLayout is the dd.MM.yyyy day stamp used in cache filenames.
const DateLayout = "02.01.2006"

// FetchFunc retrieves a document on a cache miss.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Store is a day-keyed file cache rooted at a directory.
type Store struct {
	dir     string
	now     func() time.Time
	logger  *zap.Logger
	metrics *metrics.Metrics

	// inflight collapses concurrent misses on the same file.
	inflight singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to pick the day key.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics records hit/miss counts.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New creates a Store. The directory is created lazily on first write.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:    dir,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file backing (name, today) using the local day boundary.
func (s *Store) Path(name string) string {
	day := s.now().Local().Format(DateLayout)
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.xml", name, day))
}

// GetOrFetch returns today's cached document for name. On a miss it calls
// fetch and, only if fetch succeeds, writes the result before returning it.
// Concurrent misses for the same entry share one fetch.
func (s *Store) GetOrFetch(ctx context.Context, name string, fetch FetchFunc) ([]byte, error) {
	path := s.Path(name)

	data, hit, err := s.read(path)
	if err != nil {
		return nil, err
	}
	if hit {
		s.metrics.ObserveCache(true)
		s.logger.Debug("Cache hit", zap.String("key", name), zap.String("path", path))
		return data, nil
	}

	s.metrics.ObserveCache(false)
	s.logger.Debug("Cache miss", zap.String("key", name))

	v, err, _ := s.inflight.Do(path, func() (any, error) {
		// A call that finished between our read and Do has written the file.
		if data, hit, err := s.read(path); err != nil || hit {
			return data, err
		}
		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write cache entry %s: %w", path, err)
		}
		s.logger.Debug("Cached", zap.String("key", name), zap.Int("bytes", len(data)))
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (s *Store) read(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, true, nil
	}
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("failed to read cache entry %s: %w", path, err)
}
