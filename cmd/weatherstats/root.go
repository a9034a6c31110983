package main

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/couchcryptid/weather-analytics/internal/config"
	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/couchcryptid/weather-analytics/internal/observability"
	"github.com/spf13/cobra"
)

// runFlags override the matching environment settings when set.
type runFlags struct {
	days   int
	seed   uint64
	start  string
	format string
	chart  bool
}

var (
	metricsOnce sync.Once
	metrics     *observability.Metrics
)

// sharedMetrics registers the metrics with the default registry exactly once
// per process.
func sharedMetrics() *observability.Metrics {
	metricsOnce.Do(func() { metrics = observability.NewMetrics() })
	return metrics
}

func newRootCmd() *cobra.Command {
	var flags runFlags

	root := &cobra.Command{
		Use:           "weatherstats",
		Short:         "Synthetic weather series generator and analytics report",
		Long:          `weatherstats generates a seeded synthetic daily weather series (temperature, humidity, precipitation, wind speed, pressure) and analyzes it: descriptive statistics, seasonal patterns, correlations, extreme events, trends and precipitation patterns.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.IntVar(&flags.days, "days", domain.DefaultDays, "number of days to generate (overrides DAYS)")
	pf.Uint64Var(&flags.seed, "seed", 0, "generator seed (overrides SEED; default derived from the clock)")
	pf.StringVar(&flags.start, "start", "", "first date of the series, YYYY-MM-DD (overrides START_DATE)")
	pf.StringVar(&flags.format, "format", config.FormatText, "report format: text|json|yaml (overrides REPORT_FORMAT)")
	pf.BoolVar(&flags.chart, "chart", true, "draw the first-year chart after a text report (overrides CHART_ENABLED)")

	root.AddCommand(
		newReportCmd(&flags),
		newGenerateCmd(&flags),
		newServeCmd(&flags),
	)
	return root
}

// loadConfig reads the environment and applies any flags the user set.
func loadConfig(cmd *cobra.Command, flags *runFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	f := cmd.Flags()
	if f.Changed("days") {
		cfg.Days = flags.days
	}
	if f.Changed("seed") {
		seed := flags.seed
		cfg.Seed = &seed
	}
	if f.Changed("start") {
		start, err := config.ParseStartDate(flags.start)
		if err != nil {
			return nil, err
		}
		cfg.StartDate = start
	}
	if f.Changed("format") {
		cfg.ReportFormat = flags.format
	}
	if f.Changed("chart") {
		cfg.ChartEnabled = flags.chart
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveSeed returns the configured seed or derives one from the clock.
func resolveSeed(cfg *config.Config, logger *slog.Logger) uint64 {
	if cfg.Seed != nil {
		return *cfg.Seed
	}
	seed := domain.SeedFromClock()
	logger.Info("no seed configured, derived one from the clock", "seed", seed)
	return seed
}
