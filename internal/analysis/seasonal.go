package analysis

import (
	"time"

	"github.com/couchcryptid/weather-analytics/internal/domain"
)

// SeasonMean is the mean temperature over every day falling in a season.
// MeanTemperature is nil when the series has no day in that season.
type SeasonMean struct {
	Season          string   `json:"season" yaml:"season"`
	Days            int      `json:"days" yaml:"days"`
	MeanTemperature *float64 `json:"mean_temperature" yaml:"mean_temperature"`
}

// MonthTotal is the precipitation summed over every day in a calendar month,
// pooled across years.
type MonthTotal struct {
	Month         int     `json:"month" yaml:"month"`
	Name          string  `json:"name" yaml:"name"`
	Days          int     `json:"days" yaml:"days"`
	Precipitation float64 `json:"precipitation" yaml:"precipitation"`
}

// SeasonalReport groups temperature by season and precipitation by month.
type SeasonalReport struct {
	Seasons []SeasonMean `json:"seasons" yaml:"seasons"`
	Months  []MonthTotal `json:"months" yaml:"months"`
}

// Seasonal buckets the series by season and calendar month. All years share
// the same buckets.
func Seasonal(s *domain.WeatherSeries) SeasonalReport {
	temps := s.Values(domain.Temperature)
	precip := s.Values(domain.Precipitation)

	var (
		seasonSum   [4]float64
		seasonDays  [4]int
		monthPrecip [13]float64
		monthDays   [13]int
	)
	for i := range temps {
		month := s.Date(i).Month()
		season := domain.SeasonOf(month)
		seasonSum[season] += temps[i]
		seasonDays[season]++
		monthPrecip[month] += precip[i]
		monthDays[month]++
	}

	out := SeasonalReport{
		Seasons: make([]SeasonMean, 0, len(domain.Seasons)),
		Months:  make([]MonthTotal, 0, 12),
	}
	for _, season := range domain.Seasons {
		sm := SeasonMean{Season: season.String(), Days: seasonDays[season]}
		if sm.Days > 0 {
			sm.MeanTemperature = ptr(seasonSum[season] / float64(sm.Days))
		}
		out.Seasons = append(out.Seasons, sm)
	}
	for m := time.January; m <= time.December; m++ {
		out.Months = append(out.Months, MonthTotal{
			Month:         int(m),
			Name:          m.String(),
			Days:          monthDays[m],
			Precipitation: monthPrecip[m],
		})
	}
	return out
}
