package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-analytics/internal/analysis"
	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/couchcryptid/weather-analytics/internal/observability"
)

// SeriesSource produces the weather series a report is computed from.
// *domain.Generator satisfies it.
type SeriesSource interface {
	Generate(days int, seed uint64) (*domain.WeatherSeries, error)
}

// ReportLoader delivers a finished report to a destination.
type ReportLoader interface {
	Name() string
	Load(ctx context.Context, res Result) error
}

// Result is one run's series and the report computed from it.
type Result struct {
	Series *domain.WeatherSeries
	Report analysis.Report
}

// RetryPolicy bounds sink delivery attempts. Backoff starts at Initial and
// doubles after every failure up to Max.
type RetryPolicy struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

// DefaultRetryPolicy is used unless WithRetryPolicy overrides it.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Initial: 200 * time.Millisecond, Max: 5 * time.Second}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRetryPolicy overrides the sink retry policy.
func WithRetryPolicy(rp RetryPolicy) Option {
	return func(p *Pipeline) { p.retry = rp }
}

// Pipeline orchestrates the generate-analyze-load run.
type Pipeline struct {
	source  SeriesSource
	loaders []ReportLoader
	logger  *slog.Logger
	metrics *observability.Metrics
	retry   RetryPolicy
	ready   atomic.Bool
}

// New creates a Pipeline with the given source, sinks and observability.
func New(src SeriesSource, loaders []ReportLoader, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:  src,
		loaders: loaders,
		logger:  logger,
		metrics: metrics,
		retry:   DefaultRetryPolicy,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.retry.Attempts < 1 {
		p.retry.Attempts = 1
	}
	return p
}

// CheckReadiness returns nil once the pipeline has produced a report,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no report has been generated yet")
	}
	return nil
}

// Run generates a series of the given length and seed, runs every analyzer
// in report order, derives the insights and hands the result to each sink.
// Sink failures do not discard the report: the result is returned together
// with the joined sink errors.
func (p *Pipeline) Run(ctx context.Context, days int, seed uint64) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)
	start := time.Now()

	var series *domain.WeatherSeries
	err := p.stage(p.logger, "generate", func() error {
		var err error
		series, err = p.source.Generate(days, seed)
		return err
	})
	if err != nil {
		p.metrics.RunErrors.Inc()
		p.logger.Error("generate series failed", "error", err, "days", days, "seed", seed)
		return Result{}, fmt.Errorf("generate series: %w", err)
	}

	report := analysis.Report{Run: domain.NewRunInfo(series, seed)}
	logger := p.logger.With("report_id", report.Run.ID, "seed", seed, "days", series.Len())
	p.metrics.SeriesDays.Set(float64(series.Len()))

	stages := []struct {
		name string
		run  func()
	}{
		{"descriptive", func() { report.Descriptive = analysis.Describe(series) }},
		{"seasonal", func() { report.Seasonal = analysis.Seasonal(series) }},
		{"correlation", func() { report.Correlation = analysis.Correlate(series) }},
		{"extremes", func() { report.Extremes = analysis.Extremes(series) }},
		{"trend", func() { report.Trend = analysis.Trend(series) }},
		{"precipitation", func() { report.Precipitation = analysis.PrecipitationPatterns(series) }},
		{"insights", func() {
			report.Insights = analysis.DeriveInsights(report.Descriptive, report.Correlation, report.Extremes, report.Precipitation)
		}},
	}
	for _, st := range stages {
		_ = p.stage(logger, st.name, func() error {
			st.run()
			return nil
		})
	}
	p.noteDegenerate(logger, report)

	p.metrics.ReportsGenerated.Inc()
	p.ready.Store(true)

	res := Result{Series: series, Report: report}
	loadErr := p.loadAll(ctx, logger, res)

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	logger.Info("report complete", "duration", time.Since(start), "sinks", len(p.loaders))
	return res, loadErr
}

func (p *Pipeline) stage(logger *slog.Logger, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	p.metrics.StageDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	logger.Debug("stage complete", "stage", name, "duration", elapsed)
	return err
}

// noteDegenerate logs and counts the statistics the analyzers left undefined.
func (p *Pipeline) noteDegenerate(logger *slog.Logger, r analysis.Report) {
	note := func(section, variable, reason string) {
		p.metrics.DegenerateResults.WithLabelValues(section, variable).Inc()
		logger.Warn("statistic undefined", "section", section, "variable", variable, "reason", reason)
	}

	for _, v := range r.Correlation.Degenerate {
		note("correlation", v, "constant variable")
	}
	if r.Extremes.Thresholds.HeavyRain == nil {
		note("extremes", domain.Precipitation.String(), "no precipitation observed")
	}
	if r.Extremes.MostExtreme == nil {
		note("extremes", "composite", "constant score input")
	}
	if r.Trend.Fit == nil {
		note("trend", domain.Temperature.String(), "fewer than two days")
	}
	if r.Precipitation.MeanPerRainyDay == nil {
		note("precipitation", domain.Precipitation.String(), "no rainy days")
	}
}

// loadAll delivers the result to every sink, retrying each independently.
func (p *Pipeline) loadAll(ctx context.Context, logger *slog.Logger, res Result) error {
	var errs []error
	for _, l := range p.loaders {
		if err := p.loadWithRetry(ctx, logger, l, res); err != nil {
			errs = append(errs, fmt.Errorf("sink %s: %w", l.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (p *Pipeline) loadWithRetry(ctx context.Context, logger *slog.Logger, l ReportLoader, res Result) error {
	backoff := p.retry.Initial
	var err error
	for attempt := 1; attempt <= p.retry.Attempts; attempt++ {
		if err = l.Load(ctx, res); err == nil {
			p.metrics.SinkLoads.WithLabelValues(l.Name(), observability.OutcomeSuccess).Inc()
			logger.Info("report loaded", "sink", l.Name(), "attempt", attempt)
			return nil
		}
		if attempt == p.retry.Attempts || ctx.Err() != nil {
			break
		}
		p.metrics.SinkLoads.WithLabelValues(l.Name(), observability.OutcomeRetry).Inc()
		logger.Warn("load report failed, retrying", "sink", l.Name(), "attempt", attempt, "backoff", backoff, "error", err)
		if !sleepWithContext(ctx, backoff) {
			break
		}
		backoff = nextBackoff(backoff, p.retry.Max)
	}
	p.metrics.SinkLoads.WithLabelValues(l.Name(), observability.OutcomeError).Inc()
	logger.Error("load report failed", "sink", l.Name(), "error", err)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Join(err, ctxErr)
	}
	return err
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
