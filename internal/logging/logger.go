// Package logging builds the zap logger goldeneye writes its progress to.
// Output goes to stderr so the report on stdout stays clean. Each pipeline
// stage logs under its own category, and categories can be switched off
// individually from the config file.
package logging

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config resolution
	CategoryFetch   Category = "fetch"   // API requests
	CategoryCache   Category = "cache"   // Per-day disk cache
	CategoryResolve Category = "resolve" // Data dump + live region lookup
	CategoryEnrich  Category = "enrich"  // Nation lookups and derived metrics
	CategoryCDS     Category = "cds"     // Dispatch cross-reference
	CategoryReport  Category = "report"  // Report assembly and CSV exports
	CategoryScan    Category = "scan"    // Pipeline orchestration
)

// Options configures New.
type Options struct {
	Level      string                     // debug, info, warn, error
	Format     string                     // console, json
	Verbose    bool                       // forces debug level
	Enabled    func(category string) bool // category filter; nil enables all
	OutputPath string                     // defaults to stderr
}

// Logger is a root zap logger plus the category filter.
type Logger struct {
	*zap.Logger
	enabled func(category string) bool
	runID   string
}

// New builds a Logger from opts. Every entry carries the run id.
func New(opts Options) (*Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	switch opts.Format {
	case "", "console", "text":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.DisableCaller = true
	case "json":
		cfg.Encoding = "json"
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}
	out := opts.OutputPath
	if out == "" {
		out = "stderr"
	}
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{"stderr"}

	base, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	runID := uuid.NewString()
	return &Logger{
		Logger:  base.With(zap.String("run", runID)),
		enabled: opts.Enabled,
		runID:   runID,
	}, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// RunID returns the id attached to every entry of this run.
func (l *Logger) RunID() string { return l.runID }

// IsCategoryEnabled returns whether a specific category is enabled
func (l *Logger) IsCategoryEnabled(c Category) bool {
	return l.enabled == nil || l.enabled(string(c))
}

// For returns the child logger for category c, or a no-op logger when the
// category is disabled.
func (l *Logger) For(c Category) *zap.Logger {
	if l == nil || l.Logger == nil {
		return zap.NewNop()
	}
	if !l.IsCategoryEnabled(c) {
		return zap.NewNop()
	}
	return l.Named(string(c))
}
