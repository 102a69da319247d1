// Package region resolves the scanned region from the live API and, when
// comparison is enabled, from a prior data dump.
package region

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"goldeneye/internal/fetch"
	"goldeneye/internal/nsapi"
)

var (
	// ErrDumpMissing means the data dump file does not exist.
	ErrDumpMissing = errors.New("data dump file does not exist")
	// ErrNotInDump means no dump record matched the region name.
	ErrNotInDump = errors.New("region not present in data dump")
	// ErrRegionNotFound means the live API has no such region.
	ErrRegionNotFound = errors.New("region could not be found")
)

// compressedSuffixes select gzip decompression for the dump.
var compressedSuffixes = []string{".gz", ".gzip"}

// Source fetches the live region document.
type Source interface {
	Region(ctx context.Context, name string) ([]byte, error)
}

// Snapshot is the resolved pair. Prior is nil when comparison is disabled.
type Snapshot struct {
	Live  *nsapi.Region
	Prior *nsapi.Region
}

// Compared reports whether a prior record is present.
func (s *Snapshot) Compared() bool { return s.Prior != nil }

// Resolver loads region records.
type Resolver struct {
	source Source
	logger *zap.Logger
}

// NewResolver creates a Resolver.
func NewResolver(source Source, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{source: source, logger: logger}
}

// Resolve loads the prior record from dumpPath (unless compare is false) and
// then the live record.
func (r *Resolver) Resolve(ctx context.Context, name, dumpPath string, compare bool) (*Snapshot, error) {
	snap := &Snapshot{}
	if compare {
		prior, err := r.LoadPrior(dumpPath, name)
		if err != nil {
			return nil, err
		}
		snap.Prior = prior
	}

	live, err := r.FetchLive(ctx, name)
	if err != nil {
		return nil, err
	}
	snap.Live = live
	return snap, nil
}

// LoadPrior finds name in the dump at path.
func (r *Resolver) LoadPrior(path, name string) (*nsapi.Region, error) {
	target := nsapi.Normalize(name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrDumpMissing)
		}
		return nil, fmt.Errorf("failed to open data dump: %w", err)
	}
	defer f.Close()

	var in io.Reader = f
	if isCompressed(path) {
		r.logger.Info("Unzipping data dump", zap.String("path", path))
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gz.Close()
		in = gz
	} else {
		r.logger.Info("Loading data dump", zap.String("path", path))
	}

	prior, found, err := nsapi.ScanDump(in, target)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("region %s: %w", target, ErrNotInDump)
	}
	r.logger.Debug("Region found in data dump", zap.String("region", target), zap.Int("nations", prior.NumNations))
	return prior, nil
}

// FetchLive fetches and decodes the live record.
func (r *Resolver) FetchLive(ctx context.Context, name string) (*nsapi.Region, error) {
	target := nsapi.Normalize(name)
	r.logger.Info("Fetching region data from the API", zap.String("region", target))
	doc, err := r.source.Region(ctx, target)
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			return nil, fmt.Errorf("region %s: %w", target, ErrRegionNotFound)
		}
		return nil, fmt.Errorf("failed to fetch region: %w", err)
	}
	return nsapi.DecodeRegion(doc)
}

func isCompressed(path string) bool {
	lower := strings.ToLower(path)
	for _, suffix := range compressedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
