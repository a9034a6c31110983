package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/couchcryptid/weather-analytics/internal/analysis"
	"github.com/couchcryptid/weather-analytics/internal/domain"
)

const (
	undefined     = "undefined"
	notComputable = "not computable"
	noneDetected  = "none detected"
	noRain        = "no precipitation observed"
)

// printer remembers the first write error so sections can print freely.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) heading(title string) {
	p.printf("\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

// table writes aligned rows and flushes them before the next section.
func (p *printer) table(rows func(tw *tabwriter.Writer)) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	rows(tw)
	p.err = tw.Flush()
}

// Text writes the human-readable report in section order.
func Text(w io.Writer, r analysis.Report) error {
	p := &printer{w: w}

	p.printf("WEATHER ANALYTICS REPORT\n")
	p.printf("Report %s\n", r.Run.ID)
	p.printf("%d days, %s to %s, seed %d\n", r.Run.Days, r.Run.StartDate, r.Run.EndDate, r.Run.Seed)

	writeDescriptive(p, r.Descriptive)
	writeSeasonal(p, r.Seasonal)
	writeCorrelation(p, r.Correlation)
	writeExtremes(p, r.Extremes)
	writeTrend(p, r.Trend)
	writePrecipitation(p, r.Precipitation)
	writeInsights(p, r.Insights)
	return p.err
}

func writeDescriptive(p *printer, d analysis.DescriptiveReport) {
	p.heading("Descriptive statistics")
	p.table(func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "Variable\tUnit\tMean\tMedian\tStd dev\tMin\tMax\tRange")
		for _, v := range d.Variables {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
				v.Variable, v.Unit, v.Mean, v.Median, v.StdDev, v.Min, v.Max, v.Range)
		}
	})
}

func writeSeasonal(p *printer, s analysis.SeasonalReport) {
	p.heading("Seasonal patterns")
	p.printf("Mean temperature by season:\n")
	p.table(func(tw *tabwriter.Writer) {
		for _, sm := range s.Seasons {
			fmt.Fprintf(tw, "  %s\t%s\t(%d days)\n", sm.Season, optional(sm.MeanTemperature, "%.2f °C", undefined), sm.Days)
		}
	})
	p.printf("Total precipitation by month:\n")
	p.table(func(tw *tabwriter.Writer) {
		for _, m := range s.Months {
			fmt.Fprintf(tw, "  %s\t%.1f mm\t(%d days)\n", m.Name, m.Precipitation, m.Days)
		}
	})
}

func writeCorrelation(p *printer, c analysis.CorrelationReport) {
	p.heading("Correlations")
	p.table(func(tw *tabwriter.Writer) {
		for _, v := range domain.Variables {
			fmt.Fprintf(tw, "\t%s", v)
		}
		fmt.Fprintln(tw)
		for i, row := range c.Matrix.Rows() {
			fmt.Fprint(tw, domain.Variables[i])
			for _, r := range row {
				fmt.Fprintf(tw, "\t%s", optional(r, "%.3f", undefined))
			}
			fmt.Fprintln(tw)
		}
	})

	if len(c.Degenerate) > 0 {
		p.printf("Constant variables (correlation undefined): %s\n", strings.Join(c.Degenerate, ", "))
	}
	if len(c.Strong) == 0 {
		p.printf("Strong correlations (|r| > %.1f): %s\n", analysis.StrongCorrelation, noneDetected)
		return
	}
	p.printf("Strong correlations (|r| > %.1f):\n", analysis.StrongCorrelation)
	for _, pair := range c.Strong {
		p.printf("  %s - %s: %.3f\n", pair.First, pair.Second, pair.R)
	}
}

func writeExtremes(p *printer, e analysis.ExtremeReport) {
	p.heading("Extreme events")
	p.table(func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Hot days (> %.2f °C, P%d)\t%d\n", e.Thresholds.Hot, analysis.HotPercentile, e.Counts.HotDays)
		fmt.Fprintf(tw, "Cold days (< %.2f °C, P%d)\t%d\n", e.Thresholds.Cold, analysis.ColdPercentile, e.Counts.ColdDays)
		if e.Thresholds.HeavyRain != nil && e.Counts.HeavyRainDays != nil {
			fmt.Fprintf(tw, "Heavy rain days (> %.2f mm, P%d of rainy days)\t%d\n",
				*e.Thresholds.HeavyRain, analysis.HeavyRainPercentile, *e.Counts.HeavyRainDays)
		} else {
			fmt.Fprintf(tw, "Heavy rain days\t%s\n", noRain)
		}
		fmt.Fprintf(tw, "High wind days (> %.2f km/h, P%d)\t%d\n", e.Thresholds.HighWind, analysis.HighWindPercentile, e.Counts.HighWindDays)
		if e.HeatWaves == 0 {
			fmt.Fprintf(tw, "Heat waves (%d+ hot days)\t%s\n", e.HeatWaveMinDays, noneDetected)
		} else {
			fmt.Fprintf(tw, "Heat waves (%d+ hot days)\t%d\n", e.HeatWaveMinDays, e.HeatWaves)
		}
	})

	if e.MostExtreme == nil {
		p.printf("Most extreme day: %s (constant input)\n", undefined)
		return
	}
	d := e.MostExtreme
	p.printf("Most extreme day: %s (score %.2f): %.1f °C, %.1f mm, %.1f km/h\n",
		d.Date, d.Score, d.Temperature, d.Precipitation, d.WindSpeed)
}

func writeTrend(p *printer, t analysis.TrendReport) {
	p.heading("Temperature trend")
	p.table(func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Raw range\t%.2f °C\n", t.RawRange)
		for _, s := range t.Smoothed {
			fmt.Fprintf(tw, "%d-day moving average range\t%s\n", s.Window, optional(s.Range, "%.2f °C", notComputable))
		}
		fmt.Fprintf(tw, "Range reduction\t%s\n", optional(t.RangeReductionPct, "%.1f%%", notComputable))
	})

	if t.Fit == nil {
		p.printf("Linear trend: %s\n", notComputable)
		return
	}
	f := t.Fit
	p.printf("Linear trend: %+.5f °C/day (%+.2f °C/year), intercept %.2f °C, %s\n",
		f.Slope, f.AnnualChange, f.Intercept, f.Direction)
	p.printf("R²: %s\n", optional(f.RSquared, "%.4f", undefined))
}

func writePrecipitation(p *printer, r analysis.PrecipitationReport) {
	p.heading("Precipitation patterns")
	p.table(func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Rainy days\t%d of %d (%.1f%%)\n", r.RainyDays, r.Days, r.RainyPct)
		fmt.Fprintf(tw, "Total precipitation\t%.1f mm\n", r.Total)
		fmt.Fprintf(tw, "Mean per rainy day\t%s\n", optional(r.MeanPerRainyDay, "%.2f mm", noRain))
		if r.DrySpells == nil {
			fmt.Fprintf(tw, "Dry spells\t%s\n", noneDetected)
			return
		}
		ds := r.DrySpells
		fmt.Fprintf(tw, "Dry spells\t%d\n", ds.Count)
		fmt.Fprintf(tw, "Dry spell length\tmean %.1f, max %d, min %d days\n", ds.MeanLength, ds.MaxLength, ds.MinLength)
	})
}

func writeInsights(p *printer, in analysis.Insights) {
	p.heading("Key insights")
	p.printf("- Temperature ranged over %.1f °C around a mean of %.1f °C.\n", in.TemperatureRange, in.TemperatureMean)
	p.printf("- %d wet days (%.1f%% of the period).\n", in.WetDays, in.WetDayPct)
	p.printf("- Temperature-humidity correlation: %s.\n", optional(in.TemperatureHumidityCorrelation, "%.3f", undefined))
	p.printf("- %d days above the hot threshold of %.1f °C.\n", in.HotDays, in.HotThreshold)
}

func optional[T any](v *T, format, missing string) string {
	if v == nil {
		return missing
	}
	return fmt.Sprintf(format, *v)
}
