package analysis

import (
	"github.com/couchcryptid/weather-analytics/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DrySpellStats summarizes the runs of zero-precipitation days.
type DrySpellStats struct {
	Count      int     `json:"count" yaml:"count"`
	MeanLength float64 `json:"mean_length" yaml:"mean_length"`
	MaxLength  int     `json:"max_length" yaml:"max_length"`
	MinLength  int     `json:"min_length" yaml:"min_length"`
}

// PrecipitationReport describes how often and how much it rained.
// MeanPerRainyDay is nil when it never rained; DrySpells is nil when it
// rained every day.
type PrecipitationReport struct {
	Days            int            `json:"days" yaml:"days"`
	RainyDays       int            `json:"rainy_days" yaml:"rainy_days"`
	RainyPct        float64        `json:"rainy_pct" yaml:"rainy_pct"`
	Total           float64        `json:"total" yaml:"total"`
	MeanPerRainyDay *float64       `json:"mean_per_rainy_day" yaml:"mean_per_rainy_day"`
	DrySpells       *DrySpellStats `json:"dry_spells" yaml:"dry_spells"`
}

// PrecipitationPatterns counts rainy days, totals precipitation and measures
// dry spells.
func PrecipitationPatterns(s *domain.WeatherSeries) PrecipitationReport {
	precip := s.Values(domain.Precipitation)
	rainy := filter(precip, func(p float64) bool { return p > 0 })

	out := PrecipitationReport{
		Days:      len(precip),
		RainyDays: len(rainy),
		RainyPct:  float64(len(rainy)) / float64(len(precip)) * 100,
		Total:     floats.Sum(precip),
	}
	if len(rainy) > 0 {
		out.MeanPerRainyDay = ptr(stat.Mean(rainy, nil))
	}

	dry := domain.Mask(precip, func(p float64) bool { return p == 0 })
	out.DrySpells = summarizeSpells(domain.RunLengths(domain.AccumulateRuns(dry)))
	return out
}

func summarizeSpells(lengths []int) *DrySpellStats {
	if len(lengths) == 0 {
		return nil
	}
	st := &DrySpellStats{Count: len(lengths), MaxLength: lengths[0], MinLength: lengths[0]}
	total := 0
	for _, l := range lengths {
		total += l
		st.MaxLength = max(st.MaxLength, l)
		st.MinLength = min(st.MinLength, l)
	}
	st.MeanLength = float64(total) / float64(len(lengths))
	return st
}
