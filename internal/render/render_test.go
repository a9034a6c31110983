package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/weather-analytics/internal/analysis"
	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func generated(t *testing.T, days int) *domain.WeatherSeries {
	t.Helper()
	s, err := domain.NewGenerator(time.Time{}).Generate(days, 42)
	require.NoError(t, err)
	return s
}

func buildReport(s *domain.WeatherSeries, seed uint64) analysis.Report {
	r := analysis.Report{
		Run:           domain.NewRunInfo(s, seed),
		Descriptive:   analysis.Describe(s),
		Seasonal:      analysis.Seasonal(s),
		Correlation:   analysis.Correlate(s),
		Extremes:      analysis.Extremes(s),
		Trend:         analysis.Trend(s),
		Precipitation: analysis.PrecipitationPatterns(s),
	}
	r.Insights = analysis.DeriveInsights(r.Descriptive, r.Correlation, r.Extremes, r.Precipitation)
	return r
}

func constantSeries(t *testing.T, n int) *domain.WeatherSeries {
	t.Helper()
	col := func(v float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	}
	s, err := domain.NewWeatherSeries(domain.DefaultStartDate, col(15), col(60), col(0), col(5), col(1013))
	require.NoError(t, err)
	return s
}

func TestText_SectionOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, buildReport(generated(t, 1095), 42)))
	out := buf.String()

	sections := []string{
		"WEATHER ANALYTICS REPORT",
		"Descriptive statistics",
		"Seasonal patterns",
		"Correlations",
		"Extreme events",
		"Temperature trend",
		"Precipitation patterns",
		"Key insights",
	}
	last := -1
	for _, s := range sections {
		i := strings.Index(out, s)
		require.GreaterOrEqual(t, i, 0, "missing section %q", s)
		assert.Greater(t, i, last, "section %q out of order", s)
		last = i
	}

	assert.Contains(t, out, "1095 days, 2021-01-01 to 2023-12-31, seed 42")
	for _, name := range []string{"Temperature", "Humidity", "Precipitation", "Wind Speed", "Pressure"} {
		assert.Contains(t, out, name)
	}
	for _, season := range []string{"Winter", "Spring", "Summer", "Fall"} {
		assert.Contains(t, out, season)
	}
	assert.Contains(t, out, "January")
	assert.Contains(t, out, "30-day moving average range")
	assert.NotContains(t, out, "NaN")
	assert.NotContains(t, out, "%!")
}

func TestText_DegenerateWording(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, buildReport(constantSeries(t, 5), 1)))
	out := buf.String()

	assert.Contains(t, out, "Constant variables (correlation undefined)")
	assert.Contains(t, out, "Strong correlations (|r| > 0.3): none detected")
	assert.Contains(t, out, noRain)
	assert.Contains(t, out, "Most extreme day: undefined")
	assert.Contains(t, out, notComputable)
	assert.Contains(t, out, "Heat waves (3+ hot days)")
	assert.Contains(t, out, "R²: undefined")
	assert.Contains(t, out, "Temperature-humidity correlation: undefined.")
	assert.NotContains(t, out, "NaN")
	assert.NotContains(t, out, "Inf")
}

func TestText_SingleDay(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, buildReport(generated(t, 1), 42)))
	out := buf.String()

	assert.Contains(t, out, "Linear trend: "+notComputable)
	assert.Contains(t, out, "7-day moving average range")
	assert.NotContains(t, out, "NaN")
}

func TestJSON_UndefinedAsNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, buildReport(constantSeries(t, 5), 1)))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	corr := doc["correlation"].(map[string]any)
	matrix := corr["matrix"].(map[string]any)
	rows := matrix["coefficients"].([]any)
	require.Len(t, rows, len(domain.Variables))
	assert.Nil(t, rows[0].([]any)[0])

	extremes := doc["extremes"].(map[string]any)
	assert.Nil(t, extremes["most_extreme"])
	assert.Nil(t, extremes["thresholds"].(map[string]any)["heavy_rain"])
	assert.Nil(t, doc["precipitation"].(map[string]any)["mean_per_rainy_day"])
}

func TestJSON_Generated(t *testing.T) {
	r := buildReport(generated(t, 365), 42)
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, r))

	var doc struct {
		Run struct {
			ID   string `json:"id"`
			Seed uint64 `json:"seed"`
			Days int    `json:"days"`
		} `json:"run"`
		Correlation struct {
			Matrix struct {
				Variables    []string    `json:"variables"`
				Coefficients [][]float64 `json:"coefficients"`
			} `json:"matrix"`
		} `json:"correlation"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, r.Run.ID, doc.Run.ID)
	assert.Equal(t, uint64(42), doc.Run.Seed)
	assert.Equal(t, 365, doc.Run.Days)
	assert.Equal(t, []string{"Temperature", "Humidity", "Precipitation", "Wind Speed", "Pressure"}, doc.Correlation.Matrix.Variables)
	for i := range doc.Correlation.Matrix.Coefficients {
		assert.InDelta(t, 1.0, doc.Correlation.Matrix.Coefficients[i][i], 0)
	}
}

func TestYAML_Generated(t *testing.T) {
	r := buildReport(generated(t, 90), 7)
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, r))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	run := doc["run"].(map[string]any)
	assert.Equal(t, r.Run.ID, run["id"])
	assert.Equal(t, 90, run["days"])

	trend := doc["trend"].(map[string]any)
	smoothed := trend["smoothed"].([]any)
	require.Len(t, smoothed, 2)
	assert.Equal(t, 30, smoothed[1].(map[string]any)["window"])
}

func TestWrite_Formats(t *testing.T) {
	r := buildReport(generated(t, 30), 1)
	for _, f := range []string{FormatText, FormatJSON, FormatYAML} {
		t.Run(f, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, f, r))
			assert.NotEmpty(t, buf.String())
		})
	}

	err := Write(&bytes.Buffer{}, "xml", r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}
