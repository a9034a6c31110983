package analysis

import (
	"github.com/couchcryptid/weather-analytics/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// Percentile levels and run length used for extreme-event detection.
const (
	HotPercentile       = 95
	ColdPercentile      = 5
	HeavyRainPercentile = 90
	HighWindPercentile  = 95
	HeatWaveMinDays     = 3
)

// Thresholds are the percentile cut-offs for extreme days. HeavyRain is nil
// when no day had precipitation.
type Thresholds struct {
	Hot       float64  `json:"hot" yaml:"hot"`
	Cold      float64  `json:"cold" yaml:"cold"`
	HeavyRain *float64 `json:"heavy_rain" yaml:"heavy_rain"`
	HighWind  float64  `json:"high_wind" yaml:"high_wind"`
}

// ExceedanceCounts are the days strictly beyond each threshold.
type ExceedanceCounts struct {
	HotDays       int  `json:"hot_days" yaml:"hot_days"`
	ColdDays      int  `json:"cold_days" yaml:"cold_days"`
	HeavyRainDays *int `json:"heavy_rain_days" yaml:"heavy_rain_days"`
	HighWindDays  int  `json:"high_wind_days" yaml:"high_wind_days"`
}

// ExtremeDay is the day with the highest composite extremity score.
type ExtremeDay struct {
	Date          string  `json:"date" yaml:"date"`
	Index         int     `json:"index" yaml:"index"`
	Score         float64 `json:"score" yaml:"score"`
	Temperature   float64 `json:"temperature" yaml:"temperature"`
	Precipitation float64 `json:"precipitation" yaml:"precipitation"`
	WindSpeed     float64 `json:"wind_speed" yaml:"wind_speed"`
}

// ExtremeReport collects thresholds, exceedances, heat waves and the most
// extreme day. MostExtreme is nil when a score input is constant.
type ExtremeReport struct {
	Thresholds      Thresholds       `json:"thresholds" yaml:"thresholds"`
	Counts          ExceedanceCounts `json:"counts" yaml:"counts"`
	HeatWaves       int              `json:"heat_waves" yaml:"heat_waves"`
	HeatWaveMinDays int              `json:"heat_wave_min_days" yaml:"heat_wave_min_days"`
	MostExtreme     *ExtremeDay      `json:"most_extreme" yaml:"most_extreme"`
}

// Extremes computes percentile thresholds once, counts the days beyond them,
// counts heat waves of at least HeatWaveMinDays hot days and finds the day
// with the highest composite score.
func Extremes(s *domain.WeatherSeries) ExtremeReport {
	temps := s.Values(domain.Temperature)
	precip := s.Values(domain.Precipitation)
	wind := s.Values(domain.WindSpeed)

	th := Thresholds{
		Hot:      Percentile(temps, HotPercentile),
		Cold:     Percentile(temps, ColdPercentile),
		HighWind: Percentile(wind, HighWindPercentile),
	}
	counts := ExceedanceCounts{
		HotDays:      countIf(temps, func(t float64) bool { return t > th.Hot }),
		ColdDays:     countIf(temps, func(t float64) bool { return t < th.Cold }),
		HighWindDays: countIf(wind, func(w float64) bool { return w > th.HighWind }),
	}
	if rainy := filter(precip, func(p float64) bool { return p > 0 }); len(rainy) > 0 {
		heavy := Percentile(rainy, HeavyRainPercentile)
		th.HeavyRain = &heavy
		counts.HeavyRainDays = ptr(countIf(precip, func(p float64) bool { return p > heavy }))
	}

	hot := domain.Mask(temps, func(t float64) bool { return t > th.Hot })

	out := ExtremeReport{
		Thresholds:      th,
		Counts:          counts,
		HeatWaves:       domain.CountRuns(domain.FindRuns(hot), HeatWaveMinDays),
		HeatWaveMinDays: HeatWaveMinDays,
	}

	if scores, err := CompositeScores(s); err == nil {
		i := floats.MaxIdx(scores)
		out.MostExtreme = &ExtremeDay{
			Date:          s.Date(i).Format(domain.DateLayout),
			Index:         i,
			Score:         scores[i],
			Temperature:   temps[i],
			Precipitation: precip[i],
			WindSpeed:     wind[i],
		}
	}
	return out
}

// CompositeScores returns |z(temperature)| + z(wind) + z(precipitation) per
// day. It fails with domain.ErrDegenerateInput when any input is constant.
func CompositeScores(s *domain.WeatherSeries) ([]float64, error) {
	zt, err := ZScores(s.Values(domain.Temperature))
	if err != nil {
		return nil, err
	}
	zw, err := ZScores(s.Values(domain.WindSpeed))
	if err != nil {
		return nil, err
	}
	zp, err := ZScores(s.Values(domain.Precipitation))
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(zt))
	for i := range scores {
		if zt[i] < 0 {
			zt[i] = -zt[i]
		}
		scores[i] = zt[i] + zw[i] + zp[i]
	}
	return scores, nil
}
