package analysis

import (
	"encoding/json"
	"math"

	"github.com/couchcryptid/weather-analytics/internal/domain"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// StrongCorrelation is the |r| above which a variable pair is reported.
const StrongCorrelation = 0.3

// CorrelationMatrix is the symmetric Pearson correlation matrix over the
// variables in canonical order. Entries involving a constant variable are
// undefined.
type CorrelationMatrix struct {
	sym *mat.SymDense
}

// At returns r for the pair (a, b) and whether it is defined.
func (c CorrelationMatrix) At(a, b domain.Variable) (float64, bool) {
	if c.sym == nil {
		return 0, false
	}
	r := c.sym.At(int(a), int(b))
	if math.IsNaN(r) {
		return 0, false
	}
	return r, true
}

// Rows returns the matrix as nested slices with nil for undefined entries.
func (c CorrelationMatrix) Rows() [][]*float64 {
	rows := make([][]*float64, len(domain.Variables))
	for i, a := range domain.Variables {
		rows[i] = make([]*float64, len(domain.Variables))
		for j, b := range domain.Variables {
			if r, ok := c.At(a, b); ok {
				rows[i][j] = ptr(r)
			}
		}
	}
	return rows
}

type matrixView struct {
	Variables    []string     `json:"variables" yaml:"variables"`
	Coefficients [][]*float64 `json:"coefficients" yaml:"coefficients"`
}

func (c CorrelationMatrix) view() matrixView {
	names := make([]string, len(domain.Variables))
	for i, v := range domain.Variables {
		names[i] = v.String()
	}
	return matrixView{Variables: names, Coefficients: c.Rows()}
}

// MarshalJSON encodes the matrix with null for undefined entries.
func (c CorrelationMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.view())
}

// MarshalYAML encodes the matrix with null for undefined entries.
func (c CorrelationMatrix) MarshalYAML() (any, error) {
	return c.view(), nil
}

// CorrelatedPair is a variable pair whose |r| exceeds StrongCorrelation.
type CorrelatedPair struct {
	First  string  `json:"first" yaml:"first"`
	Second string  `json:"second" yaml:"second"`
	R      float64 `json:"r" yaml:"r"`
}

// CorrelationReport holds the matrix, the strongly correlated pairs, and the
// variables whose correlations are undefined because they are constant.
type CorrelationReport struct {
	Matrix     CorrelationMatrix `json:"matrix" yaml:"matrix"`
	Strong     []CorrelatedPair  `json:"strong" yaml:"strong"`
	Degenerate []string          `json:"degenerate" yaml:"degenerate"`
}

// Correlate computes the Pearson correlation matrix. Diagonal entries of
// non-constant variables are exactly 1. Strong pairs are listed once per
// unordered pair, in canonical variable order.
func Correlate(s *domain.WeatherSeries) CorrelationReport {
	k := len(domain.Variables)
	sym := mat.NewSymDense(k, nil)

	constant := make([]bool, k)
	for _, v := range domain.Variables {
		constant[v] = isConstant(s.Values(v))
	}
	if s.Len() > 1 {
		stat.CorrelationMatrix(sym, s.Matrix(), nil)
	}

	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			switch {
			case constant[i] || constant[j] || s.Len() < 2:
				sym.SetSym(i, j, math.NaN())
			case i == j:
				sym.SetSym(i, j, 1)
			default:
				sym.SetSym(i, j, clampUnit(sym.At(i, j)))
			}
		}
	}

	out := CorrelationReport{
		Matrix:     CorrelationMatrix{sym: sym},
		Strong:     []CorrelatedPair{},
		Degenerate: []string{},
	}
	for _, v := range domain.Variables {
		if constant[v] {
			out.Degenerate = append(out.Degenerate, v.String())
		}
	}
	for i, a := range domain.Variables {
		for _, b := range domain.Variables[i+1:] {
			r, ok := out.Matrix.At(a, b)
			if ok && math.Abs(r) > StrongCorrelation {
				out.Strong = append(out.Strong, CorrelatedPair{First: a.String(), Second: b.String(), R: r})
			}
		}
	}
	return out
}

// Pearson returns the correlation coefficient of two equal-length slices, or
// domain.ErrDegenerateInput when either is constant.
func Pearson(x, y []float64) (float64, error) {
	if isConstant(x) || isConstant(y) {
		return 0, domain.ErrDegenerateInput
	}
	return clampUnit(stat.Correlation(x, y, nil)), nil
}

// clampUnit absorbs rounding that pushes |r| a hair past 1.
func clampUnit(r float64) float64 {
	return max(-1, min(1, r))
}
