package main

import (
	"fmt"
	"os"

	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/couchcryptid/weather-analytics/internal/observability"
	"github.com/couchcryptid/weather-analytics/internal/render"
	"github.com/spf13/cobra"
)

func newGenerateCmd(flags *runFlags) *cobra.Command {
	var (
		seriesFormat string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a series and export it as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg)

			seed := resolveSeed(cfg, logger)
			series, err := domain.NewGenerator(cfg.StartDate).Generate(cfg.Days, seed)
			if err != nil {
				return fmt.Errorf("generate series: %w", err)
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := render.WriteSeries(w, seriesFormat, series); err != nil {
				return err
			}
			logger.Info("series exported", "days", series.Len(), "seed", seed, "format", seriesFormat, "output", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&seriesFormat, "series-format", render.SeriesCSV, "export format: csv|json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
