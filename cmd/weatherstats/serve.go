package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-analytics/internal/adapter/httpadapter"
	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/couchcryptid/weather-analytics/internal/observability"
	"github.com/couchcryptid/weather-analytics/internal/pipeline"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Compute a report and serve it with health, readiness and metrics endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg)

			store := httpadapter.NewReportStore()
			loaders, closeSinks := reportSinks(cfg, logger)
			defer closeSinks()
			loaders = append([]pipeline.ReportLoader{store}, loaders...)

			gen := domain.NewGenerator(cfg.StartDate)
			p := pipeline.New(gen, loaders, logger, sharedMetrics())
			onDemand := httpadapter.NewCachedRunner(pipeline.New(gen, nil, logger, sharedMetrics()), cfg.ReportCacheSize, sharedMetrics())
			srv := httpadapter.NewServer(cfg.HTTPAddr, p, store, onDemand, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Start HTTP server.
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server error", "error", err)
					stop()
				}
			}()

			// Compute the report; readiness flips once it exists.
			go func() {
				if _, err := p.Run(ctx, cfg.Days, resolveSeed(cfg, logger)); err != nil {
					logger.Error("report run error", "error", err)
				}
			}()

			<-ctx.Done()
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
			logger.Info("shutdown complete")
			return nil
		},
	}
}
