package analysis

import (
	"github.com/couchcryptid/weather-analytics/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// VariableSummary holds the descriptive statistics of one variable.
type VariableSummary struct {
	Variable string  `json:"variable" yaml:"variable"`
	Unit     string  `json:"unit" yaml:"unit"`
	Mean     float64 `json:"mean" yaml:"mean"`
	Median   float64 `json:"median" yaml:"median"`
	StdDev   float64 `json:"std_dev" yaml:"std_dev"`
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Range    float64 `json:"range" yaml:"range"`
}

// DescriptiveReport summarizes every variable in canonical order.
type DescriptiveReport struct {
	Variables []VariableSummary `json:"variables" yaml:"variables"`
}

// Lookup returns the summary for v.
func (r DescriptiveReport) Lookup(v domain.Variable) (VariableSummary, bool) {
	for _, s := range r.Variables {
		if s.Variable == v.String() {
			return s, true
		}
	}
	return VariableSummary{}, false
}

// Describe computes mean, median, population standard deviation, min, max
// and range for each variable.
func Describe(s *domain.WeatherSeries) DescriptiveReport {
	out := DescriptiveReport{Variables: make([]VariableSummary, 0, len(domain.Variables))}
	for _, v := range domain.Variables {
		out.Variables = append(out.Variables, Summarize(v, s.Values(v)))
	}
	return out
}

// Summarize computes the descriptive statistics of a non-empty slice.
func Summarize(v domain.Variable, values []float64) VariableSummary {
	mean, std := MeanStdDev(values)
	lo, hi := floats.Min(values), floats.Max(values)
	return VariableSummary{
		Variable: v.String(),
		Unit:     v.Unit(),
		Mean:     mean,
		Median:   Median(values),
		StdDev:   std,
		Min:      lo,
		Max:      hi,
		Range:    hi - lo,
	}
}
