package analysis

import (
	"encoding/json"
	"testing"

	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCorrelate_SymmetricUnitDiagonal(t *testing.T) {
	report := Correlate(generated(t, 1095))

	for _, a := range domain.Variables {
		raa, ok := report.Matrix.At(a, a)
		require.True(t, ok)
		assert.Equal(t, 1.0, raa, "diagonal %s", a)

		for _, b := range domain.Variables {
			rab, okab := report.Matrix.At(a, b)
			rba, okba := report.Matrix.At(b, a)
			require.True(t, okab && okba)
			assert.Equal(t, rab, rba, "%s/%s", a, b)
			assert.LessOrEqual(t, rab, 1.0)
			assert.GreaterOrEqual(t, rab, -1.0)
		}
	}
	assert.Empty(t, report.Degenerate)
}

func TestCorrelate_StrongPairs(t *testing.T) {
	report := Correlate(generated(t, 1095))

	var found bool
	for _, p := range report.Strong {
		assert.Greater(t, abs(p.R), StrongCorrelation)
		assert.NotEqual(t, p.First, p.Second)
		if p.First == "Temperature" && p.Second == "Humidity" {
			found = true
			assert.Negative(t, p.R)
		}
	}
	assert.True(t, found, "temperature/humidity should be strongly anti-correlated: %+v", report.Strong)

	for i, p := range report.Strong {
		for _, q := range report.Strong[i+1:] {
			assert.False(t, p.First == q.Second && p.Second == q.First, "pair reported twice")
		}
	}
}

func TestCorrelate_KnownPair(t *testing.T) {
	temps := []float64{1, 2, 3, 4, 5, 6}
	s := buildSeries(t, temps, seriesCols{
		humidity: []float64{60, 58, 56, 54, 52, 50},
	})

	report := Correlate(s)

	r, ok := report.Matrix.At(domain.Temperature, domain.Humidity)
	require.True(t, ok)
	assert.InDelta(t, -1.0, r, 1e-12)

	direct, err := Pearson(temps, []float64{60, 58, 56, 54, 52, 50})
	require.NoError(t, err)
	assert.InDelta(t, r, direct, 1e-12)
}

func TestCorrelate_DegenerateVariable(t *testing.T) {
	s := buildSeries(t, []float64{1, 4, 2, 8, 5}, seriesCols{})

	report := Correlate(s)

	assert.Equal(t, []string{"Precipitation"}, report.Degenerate)
	_, ok := report.Matrix.At(domain.Precipitation, domain.Temperature)
	assert.False(t, ok)
	_, ok = report.Matrix.At(domain.Precipitation, domain.Precipitation)
	assert.False(t, ok)
	r, ok := report.Matrix.At(domain.Temperature, domain.Temperature)
	assert.True(t, ok)
	assert.Equal(t, 1.0, r)

	for _, p := range report.Strong {
		assert.NotEqual(t, "Precipitation", p.First)
		assert.NotEqual(t, "Precipitation", p.Second)
	}

	_, err := Pearson([]float64{1, 2}, []float64{3, 3})
	require.ErrorIs(t, err, domain.ErrDegenerateInput)
}

func TestCorrelate_SingleDay(t *testing.T) {
	report := Correlate(buildSeries(t, []float64{12}, seriesCols{}))

	assert.Len(t, report.Degenerate, 5)
	for _, a := range domain.Variables {
		_, ok := report.Matrix.At(a, a)
		assert.False(t, ok)
	}
	assert.Empty(t, report.Strong)
}

func TestCorrelationMatrix_Encoding(t *testing.T) {
	report := Correlate(buildSeries(t, []float64{1, 4, 2, 8, 5}, seriesCols{}))

	data, err := json.Marshal(report.Matrix)
	require.NoError(t, err)

	var decoded struct {
		Variables    []string     `json:"variables"`
		Coefficients [][]*float64 `json:"coefficients"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"Temperature", "Humidity", "Precipitation", "Wind Speed", "Pressure"}, decoded.Variables)
	require.Len(t, decoded.Coefficients, 5)
	assert.Nil(t, decoded.Coefficients[2][0])
	require.NotNil(t, decoded.Coefficients[0][0])
	assert.Equal(t, 1.0, *decoded.Coefficients[0][0])

	out, err := yaml.Marshal(report.Matrix)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Wind Speed")
	assert.Contains(t, string(out), "null")
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
