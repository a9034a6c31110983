package analysis

import (
	"fmt"

	"github.com/couchcryptid/weather-analytics/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Moving-average windows in days. The range reduction is measured against
// the last (widest) window.
var MovingAverageWindows = []int{7, 30}

// Trend direction labels.
const (
	Warming = "warming"
	Cooling = "cooling"
)

// SmoothedSeries describes one moving average of temperature. Range is nil
// when the window is longer than the series.
type SmoothedSeries struct {
	Window int      `json:"window" yaml:"window"`
	Points int      `json:"points" yaml:"points"`
	Range  *float64 `json:"range" yaml:"range"`
}

// LinearTrend is an ordinary least-squares fit of temperature against day
// index. RSquared is nil when temperature is constant.
type LinearTrend struct {
	Slope        float64  `json:"slope" yaml:"slope"`
	Intercept    float64  `json:"intercept" yaml:"intercept"`
	AnnualChange float64  `json:"annual_change" yaml:"annual_change"`
	RSquared     *float64 `json:"r_squared" yaml:"r_squared"`
	Direction    string   `json:"direction" yaml:"direction"`
}

// TrendReport compares raw and smoothed temperature ranges and fits a linear
// trend. RangeReductionPct is nil when the widest window does not fit or the
// raw range is zero; Fit is nil for a single-day series.
type TrendReport struct {
	RawRange          float64          `json:"raw_range" yaml:"raw_range"`
	Smoothed          []SmoothedSeries `json:"smoothed" yaml:"smoothed"`
	RangeReductionPct *float64         `json:"range_reduction_pct" yaml:"range_reduction_pct"`
	Fit               *LinearTrend     `json:"fit" yaml:"fit"`
}

// Trend smooths temperature with each MovingAverageWindows window and fits a
// linear trend.
func Trend(s *domain.WeatherSeries) TrendReport {
	temps := s.Values(domain.Temperature)
	out := TrendReport{
		RawRange: Range(temps),
		Smoothed: make([]SmoothedSeries, 0, len(MovingAverageWindows)),
	}

	for _, w := range MovingAverageWindows {
		avg := MovingAverage(temps, w)
		ss := SmoothedSeries{Window: w, Points: len(avg)}
		if len(avg) > 0 {
			ss.Range = ptr(Range(avg))
		}
		out.Smoothed = append(out.Smoothed, ss)
	}

	if widest := out.Smoothed[len(out.Smoothed)-1]; widest.Range != nil && out.RawRange > 0 {
		out.RangeReductionPct = ptr((out.RawRange - *widest.Range) / out.RawRange * 100)
	}

	if fit, err := FitLinearTrend(temps); err == nil {
		out.Fit = &fit
	}
	return out
}

// FitLinearTrend regresses values on their index 0..N−1. It needs at least
// two points.
func FitLinearTrend(values []float64) (LinearTrend, error) {
	if len(values) < 2 {
		return LinearTrend{}, fmt.Errorf("linear trend over %d point(s): %w", len(values), domain.ErrDegenerateInput)
	}

	x := make([]float64, len(values))
	for i := range x {
		x[i] = float64(i)
	}
	intercept, slope := stat.LinearRegression(x, values, nil, false)

	fit := LinearTrend{
		Slope:        slope,
		Intercept:    intercept,
		AnnualChange: slope * 365.25,
		Direction:    Cooling,
	}
	if slope > 0 {
		fit.Direction = Warming
	}
	if !isConstant(values) {
		fit.RSquared = ptr(stat.RSquared(x, values, nil, intercept, slope))
	}
	return fit, nil
}
