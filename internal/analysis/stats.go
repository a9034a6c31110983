package analysis

import (
	"math"
	"sort"

	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Percentile returns the p-th percentile (0–100) of values using linear
// interpolation between closest ranks. values must be non-empty.
func Percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * p / 100
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Median returns the middle value of values, averaging the two middle values
// for an even count.
func Median(values []float64) float64 {
	m, _ := stats.Median(values) // errors only on empty input
	return m
}

// MeanStdDev returns the mean and population standard deviation of values.
func MeanStdDev(values []float64) (mean, std float64) {
	if len(values) == 1 {
		return values[0], 0
	}
	return stat.PopMeanStdDev(values, nil)
}

// ZScores standardizes values to (x − mean) / std. A constant input has no
// spread to scale by and returns domain.ErrDegenerateInput.
func ZScores(values []float64) ([]float64, error) {
	if isConstant(values) {
		return nil, domain.ErrDegenerateInput
	}
	mean, std := MeanStdDev(values)
	z := make([]float64, len(values))
	for i, v := range values {
		z[i] = (v - mean) / std
	}
	return z, nil
}

// MovingAverage returns the unweighted rolling mean over every fully covered
// window: len(values)−window+1 points. A window longer than the series (or
// smaller than one) yields an empty slice.
func MovingAverage(values []float64, window int) []float64 {
	if window < 1 || window > len(values) {
		return []float64{}
	}

	cum := floats.CumSum(make([]float64, len(values)), values)
	out := make([]float64, len(values)-window+1)
	for i := range out {
		sum := cum[i+window-1]
		if i > 0 {
			sum -= cum[i-1]
		}
		out[i] = sum / float64(window)
	}
	return out
}

// Range returns max − min of a non-empty slice.
func Range(values []float64) float64 {
	return floats.Max(values) - floats.Min(values)
}

func isConstant(values []float64) bool {
	return len(values) == 0 || floats.Max(values) == floats.Min(values)
}

func countIf(values []float64, pred func(float64) bool) int {
	n := 0
	for _, v := range values {
		if pred(v) {
			n++
		}
	}
	return n
}

func filter(values []float64, pred func(float64) bool) []float64 {
	var out []float64
	for _, v := range values {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
