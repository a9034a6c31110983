package analysis

import "github.com/couchcryptid/weather-analytics/internal/domain"

// Insights are cross-cutting facts read off the already computed sections.
type Insights struct {
	TemperatureRange               float64  `json:"temperature_range" yaml:"temperature_range"`
	TemperatureMean                float64  `json:"temperature_mean" yaml:"temperature_mean"`
	WetDays                        int      `json:"wet_days" yaml:"wet_days"`
	WetDayPct                      float64  `json:"wet_day_pct" yaml:"wet_day_pct"`
	TemperatureHumidityCorrelation *float64 `json:"temperature_humidity_correlation" yaml:"temperature_humidity_correlation"`
	HotDays                        int      `json:"hot_days" yaml:"hot_days"`
	HotThreshold                   float64  `json:"hot_threshold" yaml:"hot_threshold"`
}

// DeriveInsights collates the insights without recomputing any statistic.
func DeriveInsights(d DescriptiveReport, c CorrelationReport, e ExtremeReport, p PrecipitationReport) Insights {
	var in Insights
	if temp, ok := d.Lookup(domain.Temperature); ok {
		in.TemperatureRange = temp.Range
		in.TemperatureMean = temp.Mean
	}
	in.WetDays = p.RainyDays
	in.WetDayPct = p.RainyPct
	if r, ok := c.Matrix.At(domain.Temperature, domain.Humidity); ok {
		in.TemperatureHumidityCorrelation = &r
	}
	in.HotDays = e.Counts.HotDays
	in.HotThreshold = e.Thresholds.Hot
	return in
}
