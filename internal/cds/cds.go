// Package cds cross-references a region's embassies against the region list
// published in the Civil Defense Siren dispatch.
//
// The dispatch body is BBCode. The list is the text after the first "table"
// marker (up to the next one) and every region in it is written as
// [region]Name[/region]. Nothing else about the markup is interpreted.
package cds

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"goldeneye/internal/cache"
	"goldeneye/internal/nsapi"
)

// DispatchID is the published CDS dispatch.
const DispatchID = 1081644

// CacheKey names the dispatch in the per-day cache.
const CacheKey = "CDS"

// TableMarker splits the dispatch body; the list is the second segment.
const TableMarker = "table"

// ErrNoTable means the dispatch text has no table marker.
var ErrNoTable = errors.New("dispatch has no table segment")

var regionTag = regexp.MustCompile(`\[region\]([^\]]*)\[/region\]`)

// ExtractRegions returns the normalized region names tagged in the table
// segment of text.
func ExtractRegions(text string) ([]string, error) {
	segments := strings.Split(text, TableMarker)
	if len(segments) < 2 {
		return nil, ErrNoTable
	}
	matches := regionTag.FindAllStringSubmatch(segments[1], -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, nsapi.Normalize(m[1]))
	}
	return out, nil
}

// Result is the embassy classification.
type Result struct {
	Count int
	Names []string // partner names as the region lists them
}

// Classify returns the embassies whose normalized name is in listed.
func Classify(embassies, listed []string) Result {
	set := nsapi.NewNameSet(listed...)
	res := Result{Names: []string{}}
	for _, e := range embassies {
		if set.Has(e) {
			res.Names = append(res.Names, e)
		}
	}
	res.Count = len(res.Names)
	return res
}

// Source fetches the raw dispatch document.
type Source interface {
	Dispatch(ctx context.Context, id int) ([]byte, error)
}

// Loader fetches the dispatch through the per-day cache.
type Loader struct {
	cache  *cache.Store
	source Source
	logger *zap.Logger
}

// NewLoader creates a Loader.
func NewLoader(store *cache.Store, source Source, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{cache: store, source: source, logger: logger}
}

// Regions returns today's CDS region list.
func (l *Loader) Regions(ctx context.Context) ([]string, error) {
	doc, err := l.cache.GetOrFetch(ctx, CacheKey, func(ctx context.Context) ([]byte, error) {
		l.logger.Info("Fetching the CDS dispatch", zap.Int("dispatch", DispatchID))
		return l.source.Dispatch(ctx, DispatchID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load CDS dispatch: %w", err)
	}
	world, err := nsapi.DecodeWorld(doc)
	if err != nil {
		return nil, err
	}
	regions, err := ExtractRegions(world.Dispatch.Text)
	if err != nil {
		return nil, fmt.Errorf("dispatch %d: %w", DispatchID, err)
	}
	l.logger.Debug("CDS regions extracted", zap.Int("count", len(regions)))
	return regions, nil
}
