package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"goldeneye/internal/cache"
	"goldeneye/internal/config"
	"goldeneye/internal/fetch"
	"goldeneye/internal/logging"
	"goldeneye/internal/metrics"
	"goldeneye/internal/nsapi"
	"goldeneye/internal/region"
	"goldeneye/internal/report"
	"goldeneye/internal/scan"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	dataDir     string
	outputDir   string
	metricsFile string

	// Scan flags
	cdsScan        bool
	noCompare      bool
	fullReport     bool
	defenderPoints string

	cfg    *config.Config
	logger *logging.Logger

	// newLimiter builds the request gate shared by every fetch of a run.
	newLimiter = func() *fetch.Limiter { return fetch.NewLimiter(fetch.PollInterval) }
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "goldeneye <main-nation> <region> [data-dump]",
	Short: "GoldenEye - NationStates region intelligence",
	Long: `GoldenEye scans a region through the NationStates API and reports on its
delegate, officers and embassies.

When a data dump is given (raw or gzip-compressed) the live region is compared
against it and every region metric is shown with its change. Pass --no-compare
to report live values only.

The main nation identifies you to the API and is sent with every request.`,
	Args:          cobra.RangeArgs(2, 3),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("data-dir") {
			loaded.Cache.Dir = dataDir
		}
		if cmd.Flags().Changed("output-dir") {
			loaded.Output.Dir = outputDir
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		cfg = loaded

		logger, err = logging.New(logging.Options{
			Level:      cfg.Logging.Level,
			Format:     cfg.Logging.Format,
			Verbose:    verbose,
			Enabled:    cfg.Logging.IsCategoryEnabled,
			OutputPath: cfg.Logging.File,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.For(logging.CategoryBoot).Debug("Configuration loaded",
			zap.String("config", configPath),
			zap.String("cache_dir", cfg.Cache.Dir),
			zap.String("output_dir", cfg.Output.Dir))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runScan,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "goldeneye %s\n", fetch.Version)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Cache directory (overrides cache.dir)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "CSV output directory (overrides output.dir)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write run metrics to this file")

	rootCmd.Flags().BoolVar(&cdsScan, "cds", false, "Cross-reference embassies against the CDS dispatch")
	rootCmd.Flags().BoolVar(&noCompare, "no-compare", false, "Skip the data dump comparison")
	rootCmd.Flags().BoolVar(&fullReport, "full-report", false, "Scan every nation in the region and write CSV exports")
	rootCmd.Flags().StringVar(&defenderPoints, "defender-points", "", "Comma-separated nations to export with their endorsers")

	rootCmd.AddCommand(versionCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	nation := strings.TrimSpace(args[0])
	if nation == "" {
		nation = cfg.API.UserNation
	}
	if nation == "" {
		return errors.New("a main nation is required")
	}
	opts := scan.Options{
		Region:         args[1],
		Compare:        !noCompare,
		CDS:            cdsScan,
		FullReport:     fullReport,
		DefenderPoints: parseDefenderPoints(defenderPoints),
	}
	if len(args) > 2 {
		opts.DumpPath = args[2]
	}

	m := metrics.New()
	client := fetch.New(fetch.Config{
		BaseURL:    cfg.API.BaseURL,
		UserNation: nation,
		Limiter:    newLimiter(),
		Logger:     logger.For(logging.CategoryFetch),
		Metrics:    m,
	})
	store := cache.New(cfg.Cache.Dir,
		cache.WithLogger(logger.For(logging.CategoryCache)),
		cache.WithMetrics(m))
	scanner := scan.New(scan.Config{
		Client:    client,
		Cache:     store,
		Styles:    report.NewStyles(cmd.OutOrStdout()),
		OutputDir: cfg.Output.Dir,
		Logger:    logger,
		Metrics:   m,
	})

	res, err := scanner.Run(ctx, opts)
	if metricsFile != "" {
		if werr := m.WriteTextfile(metricsFile); werr != nil {
			logger.Warn("Failed to write metrics", zap.String("path", metricsFile), zap.Error(werr))
		}
	}
	if err != nil {
		if scan.IsCleanAbort(err) {
			logger.Warn("Scan aborted", zap.Error(err))
			fmt.Fprintln(cmd.ErrOrStderr(), abortMessage(err))
			return nil
		}
		return err
	}

	if _, err := res.Report.WriteTo(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if res.Roster.ScanErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Full roster scan stopped early: %v\n", res.Roster.ScanErr)
	}
	for _, p := range res.Exports {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", p)
	}
	return nil
}

func abortMessage(err error) string {
	switch {
	case errors.Is(err, region.ErrDumpMissing):
		return "Specified data dump file does not exist."
	case errors.Is(err, region.ErrNotInDump):
		return "Region not present in data dump. Run GoldenEye with --no-compare to exclude data dump comparison."
	case errors.Is(err, region.ErrRegionNotFound):
		return "Region could not be found."
	default:
		return err.Error()
	}
}

// parseDefenderPoints splits a comma-separated list into normalized names.
func parseDefenderPoints(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, nsapi.Normalize(p))
	}
	return out
}
