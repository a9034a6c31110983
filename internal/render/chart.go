package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/weather-analytics/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ChartDays is how much of the series the chart covers.
const ChartDays = 365

const bucketDays = 7

var sparks = []rune("▁▂▃▄▅▆▇█")

// Chart draws the first ChartDays days of s: weekly mean temperature as a
// sparkline and weekly precipitation totals as bars.
func Chart(w io.Writer, s *domain.WeatherSeries) error {
	if s == nil || s.Len() == 0 {
		return ChartUnavailable(w, "empty series")
	}
	first := s.Head(ChartDays)

	temps := weekly(first.Values(domain.Temperature), func(b []float64) float64 { return stat.Mean(b, nil) })
	rain := weekly(first.Values(domain.Precipitation), floats.Sum)

	p := &printer{w: w}
	p.heading(fmt.Sprintf("First year: %s to %s (one column per %d days)",
		first.Start().Format(domain.DateLayout), first.End().Format(domain.DateLayout), bucketDays))
	p.printf("Temperature   %s  %.1f..%.1f °C\n", sparkline(temps), floats.Min(temps), floats.Max(temps))
	p.printf("Precipitation %s  0..%.1f mm/week\n", bars(rain), floats.Max(rain))
	return p.err
}

// ChartUnavailable writes the notice printed in place of the chart.
func ChartUnavailable(w io.Writer, reason string) error {
	_, err := fmt.Fprintf(w, "\nChart not available (%s); report is complete without it.\n", reason)
	return err
}

// weekly reduces consecutive bucketDays-day blocks; the last block may be short.
func weekly(values []float64, reduce func([]float64) float64) []float64 {
	out := make([]float64, 0, (len(values)+bucketDays-1)/bucketDays)
	for i := 0; i < len(values); i += bucketDays {
		out = append(out, reduce(values[i:min(i+bucketDays, len(values))]))
	}
	return out
}

func sparkline(values []float64) string {
	lo, hi := floats.Min(values), floats.Max(values)
	var b strings.Builder
	for _, v := range values {
		b.WriteRune(sparks[level(v, lo, hi, len(sparks))])
	}
	return b.String()
}

// bars scales from zero so dry weeks render as blanks.
func bars(values []float64) string {
	hi := floats.Max(values)
	var b strings.Builder
	for _, v := range values {
		if v <= 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(sparks[level(v, 0, hi, len(sparks))])
	}
	return b.String()
}

func level(v, lo, hi float64, n int) int {
	if hi <= lo {
		return 0
	}
	i := int((v - lo) / (hi - lo) * float64(n-1))
	return max(0, min(i, n-1))
}
