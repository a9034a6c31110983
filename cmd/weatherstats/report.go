package main

import (
	"errors"
	"io"
	"log/slog"

	kafkaadapter "github.com/couchcryptid/weather-analytics/internal/adapter/kafka"
	"github.com/couchcryptid/weather-analytics/internal/config"
	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/couchcryptid/weather-analytics/internal/observability"
	"github.com/couchcryptid/weather-analytics/internal/pipeline"
	"github.com/couchcryptid/weather-analytics/internal/render"
	"github.com/spf13/cobra"
)

func newReportCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Generate a series and print its analytics report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg)

			loaders, closeSinks := reportSinks(cfg, logger)
			defer closeSinks()

			p := pipeline.New(domain.NewGenerator(cfg.StartDate), loaders, logger, sharedMetrics())
			res, runErr := p.Run(cmd.Context(), cfg.Days, resolveSeed(cfg, logger))
			if res.Series == nil {
				return runErr
			}

			// Sink failures still print the report.
			if err := writeReport(cmd.OutOrStdout(), cfg, res); err != nil {
				return errors.Join(runErr, err)
			}
			return runErr
		},
	}
}

// reportSinks builds the optional sinks and a func that closes them.
func reportSinks(cfg *config.Config, logger *slog.Logger) ([]pipeline.ReportLoader, func()) {
	if !cfg.KafkaEnabled {
		return nil, func() {}
	}
	writer := kafkaadapter.NewWriter(cfg, logger)
	logger.Info("kafka report sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaReportTopic)
	return []pipeline.ReportLoader{writer}, func() {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
}

func writeReport(w io.Writer, cfg *config.Config, res pipeline.Result) error {
	if err := render.Write(w, cfg.ReportFormat, res.Report); err != nil {
		return err
	}
	if cfg.ReportFormat != config.FormatText {
		return nil
	}
	if !cfg.ChartEnabled {
		return render.ChartUnavailable(w, "disabled")
	}
	return render.Chart(w, res.Series)
}
