// Package enrich looks up the nations of a region and derives the metrics the
// report shows for them: influence, border control, password visibility and
// endorsement relationships.
//
// A fetched *nsapi.Nation is never modified. Relationship flags computed during
// the full roster scan are kept in a separate Annotation carried next to it.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"goldeneye/internal/cache"
	"goldeneye/internal/fetch"
	"goldeneye/internal/metrics"
	"goldeneye/internal/nsapi"
)

// Source fetches a raw nation document.
type Source interface {
	Nation(ctx context.Context, name string) ([]byte, error)
}

// Enricher resolves nations through the per-day cache.
type Enricher struct {
	cache   *cache.Store
	source  Source
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New creates an Enricher.
func New(store *cache.Store, source Source, logger *zap.Logger, m *metrics.Metrics) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{cache: store, source: source, logger: logger, metrics: m}
}

// Enrich returns the nation named name. ok is false, with a nil error, when
// the API has no data for it; the nation is then left out of every aggregate.
// Transport and decode failures are returned as errors.
func (e *Enricher) Enrich(ctx context.Context, name string) (nation *nsapi.Nation, ok bool, err error) {
	key := nsapi.Normalize(name)
	doc, err := e.cache.GetOrFetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		e.logger.Info("Fetching data for nation", zap.String("nation", key))
		return e.source.Nation(ctx, key)
	})
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			e.logger.Warn("No nation data is available", zap.String("nation", key))
			e.metrics.IncrementSkipped()
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("nation %s: %w", key, err)
	}
	nation, err = nsapi.DecodeNation(doc)
	if err != nil {
		return nil, false, fmt.Errorf("nation %s: %w", key, err)
	}
	e.metrics.IncrementEnriched()
	return nation, true, nil
}

// Thresholds are the influence levels at which a region password becomes
// visible or invisible to a nation.
type Thresholds struct {
	Visible   int
	Invisible int
}

// ThresholdsFor scales the thresholds to the region population.
func ThresholdsFor(nationCount int) Thresholds {
	return Thresholds{Visible: nationCount * 20, Invisible: nationCount * 40}
}

// Assessment is the report-time view of one nation under one authority.
type Assessment struct {
	Influence     int
	BorderControl bool
	Visible       bool
	Invisible     bool
}

// Assess computes the derived metrics. authority is the letter string of the
// role the nation holds (delegate or officer); it is not part of the nation.
// Visible and Invisible are independent: both hold above the higher threshold.
func Assess(n *nsapi.Nation, authority string, t Thresholds) Assessment {
	influence := n.Influence()
	return Assessment{
		Influence:     influence,
		BorderControl: strings.Contains(authority, "B"),
		Visible:       influence >= t.Visible,
		Invisible:     influence >= t.Invisible,
	}
}
