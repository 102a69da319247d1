// Package scan runs one region scan: resolve the region, load the CDS list
// when asked, enrich its leadership (and optionally the whole roster), then
// assemble the report and CSV exports.
package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"goldeneye/internal/cache"
	"goldeneye/internal/cds"
	"goldeneye/internal/enrich"
	"goldeneye/internal/fetch"
	"goldeneye/internal/logging"
	"goldeneye/internal/metrics"
	"goldeneye/internal/region"
	"goldeneye/internal/report"
)

// IsCleanAbort reports whether err ends the run with an informational
// message rather than a failure.
func IsCleanAbort(err error) bool {
	return errors.Is(err, region.ErrDumpMissing) ||
		errors.Is(err, region.ErrNotInDump) ||
		errors.Is(err, region.ErrRegionNotFound)
}

// Options selects what a scan does.
type Options struct {
	Region   string
	DumpPath string
	Compare  bool

	CDS            bool
	FullReport     bool
	DefenderPoints []string
}

// Result is the outcome of a completed scan.
type Result struct {
	Snapshot *region.Snapshot
	Roster   *enrich.Roster
	CDS      []string
	Report   *report.Report
	Exports  []string
	Duration time.Duration
}

// Config wires a Scanner.
type Config struct {
	Client    *fetch.Client
	Cache     *cache.Store
	Styles    report.Styles
	OutputDir string
	Logger    *logging.Logger
	Metrics   *metrics.Metrics
}

// Scanner runs scans. It is not safe for concurrent use; the shared fetch
// limiter serializes requests anyway.
type Scanner struct {
	resolver  *region.Resolver
	enricher  *enrich.Enricher
	cds       *cds.Loader
	assembler *report.Assembler
	exporter  *report.Exporter
	logger    *zap.Logger
}

// New creates a Scanner.
func New(cfg Config) *Scanner {
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Scanner{
		resolver:  region.NewResolver(cfg.Client, log.For(logging.CategoryResolve)),
		enricher:  enrich.New(cfg.Cache, cfg.Client, log.For(logging.CategoryEnrich), cfg.Metrics),
		cds:       cds.NewLoader(cfg.Cache, cfg.Client, log.For(logging.CategoryCDS)),
		assembler: report.NewAssembler(cfg.Styles, log.For(logging.CategoryReport)),
		exporter:  report.NewExporter(cfg.OutputDir, log.For(logging.CategoryReport)),
		logger:    log.For(logging.CategoryScan),
	}
}

// Run performs the scan described by opts.
func (s *Scanner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	s.logger.Info("Starting scan",
		zap.String("region", opts.Region),
		zap.Bool("compare", opts.Compare),
		zap.Bool("cds", opts.CDS),
		zap.Bool("full_report", opts.FullReport))

	snap, err := s.resolver.Resolve(ctx, opts.Region, opts.DumpPath, opts.Compare)
	if err != nil {
		return nil, err
	}
	res := &Result{Snapshot: snap}

	// The CDS list is loaded before any nation so an interrupted full
	// scan still leaves a complete report and exports.
	if opts.CDS {
		s.logger.Info("Performing CDS scan")
		res.CDS, err = s.cds.Regions(ctx)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("Enumerating nations", zap.Int("nations", snap.Live.NumNations))
	res.Roster, err = s.enricher.Scan(ctx, snap.Live, opts.FullReport)
	if err != nil {
		return nil, fmt.Errorf("failed to enrich leadership: %w", err)
	}

	res.Report = s.assembler.Assemble(report.Input{
		Snapshot: snap,
		Roster:   res.Roster,
		CDS:      res.CDS,
	})

	if opts.FullReport {
		res.Exports, err = s.exporter.ExportRoster(res.Roster, opts.DefenderPoints)
		if err != nil {
			return nil, fmt.Errorf("failed to export roster: %w", err)
		}
	}

	res.Duration = time.Since(start)
	s.logger.Info("Scan complete",
		zap.String("region", snap.Live.Name()),
		zap.Int("enriched", len(res.Roster.All())),
		zap.Duration("duration", res.Duration))
	return res, nil
}
