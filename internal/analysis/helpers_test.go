package analysis

import (
	"testing"
	"time"

	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

// seriesCols overrides individual columns of a test series; nil columns get
// varied in-bounds defaults.
type seriesCols struct {
	start         time.Time
	humidity      []float64
	precipitation []float64
	windSpeed     []float64
	pressure      []float64
}

func buildSeries(t *testing.T, temps []float64, cols seriesCols) *domain.WeatherSeries {
	t.Helper()
	n := len(temps)
	if cols.start.IsZero() {
		cols.start = testStart
	}
	if cols.humidity == nil {
		cols.humidity = pattern(n, func(i int) float64 { return 50 + float64(i%7) })
	}
	if cols.precipitation == nil {
		cols.precipitation = make([]float64, n)
	}
	if cols.windSpeed == nil {
		cols.windSpeed = pattern(n, func(i int) float64 { return 5 + float64(i%5) })
	}
	if cols.pressure == nil {
		cols.pressure = pattern(n, func(i int) float64 { return 1010 + float64(i%3) })
	}
	s, err := domain.NewWeatherSeries(cols.start, temps, cols.humidity, cols.precipitation, cols.windSpeed, cols.pressure)
	require.NoError(t, err)
	return s
}

func generated(t *testing.T, days int) *domain.WeatherSeries {
	t.Helper()
	s, err := domain.NewGenerator(time.Time{}).Generate(days, 42)
	require.NoError(t, err)
	return s
}

func pattern(n int, f func(i int) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f(i)
	}
	return out
}

func constant(n int, v float64) []float64 {
	return pattern(n, func(int) float64 { return v })
}
