package analysis

import (
	"testing"

	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrecipitationPatterns(t *testing.T) {
	precip := []float64{0, 0, 5, 0, 0, 0, 2, 0}
	s := buildSeries(t, pattern(8, func(i int) float64 { return float64(i) }), seriesCols{precipitation: precip})

	report := PrecipitationPatterns(s)

	assert.Equal(t, 8, report.Days)
	assert.Equal(t, 2, report.RainyDays)
	assert.InDelta(t, 25.0, report.RainyPct, 1e-12)
	assert.InDelta(t, 7.0, report.Total, 1e-12)
	require.NotNil(t, report.MeanPerRainyDay)
	assert.InDelta(t, 3.5, *report.MeanPerRainyDay, 1e-12)

	require.NotNil(t, report.DrySpells)
	assert.Equal(t, DrySpellStats{Count: 3, MeanLength: 2, MaxLength: 3, MinLength: 1}, *report.DrySpells)

	// Same spells as edge detection over the zero mask.
	dry := domain.Mask(precip, func(p float64) bool { return p == 0 })
	assert.Equal(t, []int{2, 3, 1}, domain.RunLengths(domain.FindRuns(dry)))
}

func TestPrecipitationPatterns_NeverRained(t *testing.T) {
	report := PrecipitationPatterns(buildSeries(t, []float64{1, 2, 3}, seriesCols{}))

	assert.Zero(t, report.RainyDays)
	assert.Zero(t, report.Total)
	assert.Nil(t, report.MeanPerRainyDay)
	require.NotNil(t, report.DrySpells)
	assert.Equal(t, 1, report.DrySpells.Count)
	assert.Equal(t, 3, report.DrySpells.MaxLength)
}

func TestPrecipitationPatterns_RainedEveryDay(t *testing.T) {
	report := PrecipitationPatterns(buildSeries(t, []float64{1, 2, 3}, seriesCols{
		precipitation: []float64{0.5, 4, 1},
	}))

	assert.Equal(t, 3, report.RainyDays)
	assert.InDelta(t, 100.0, report.RainyPct, 1e-12)
	assert.Nil(t, report.DrySpells)
}

func TestPrecipitationPatterns_Generated(t *testing.T) {
	s := generated(t, 1095)

	report := PrecipitationPatterns(s)

	require.NotNil(t, report.DrySpells)
	assert.LessOrEqual(t, report.DrySpells.MinLength, report.DrySpells.MaxLength)
	assert.GreaterOrEqual(t, report.DrySpells.MeanLength, float64(report.DrySpells.MinLength))
	assert.Equal(t, report.Days-report.RainyDays, int(report.DrySpells.MeanLength*float64(report.DrySpells.Count)+0.5))
}
