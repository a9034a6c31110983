package analysis

import "github.com/couchcryptid/weather-analytics/internal/domain"

// Report is the complete analysis of one generated series, in the fixed
// section order used for rendering.
type Report struct {
	Run           domain.RunInfo      `json:"run" yaml:"run"`
	Descriptive   DescriptiveReport   `json:"descriptive" yaml:"descriptive"`
	Seasonal      SeasonalReport      `json:"seasonal" yaml:"seasonal"`
	Correlation   CorrelationReport   `json:"correlation" yaml:"correlation"`
	Extremes      ExtremeReport       `json:"extremes" yaml:"extremes"`
	Trend         TrendReport         `json:"trend" yaml:"trend"`
	Precipitation PrecipitationReport `json:"precipitation" yaml:"precipitation"`
	Insights      Insights            `json:"insights" yaml:"insights"`
}
