package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/weather-analytics/internal/domain"
)

// Series export formats.
const (
	SeriesCSV  = "csv"
	SeriesJSON = "json"
)

// DailyRecord is one day of a series in export form.
type DailyRecord struct {
	Date          string  `json:"date"`
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"wind_speed"`
	Pressure      float64 `json:"pressure"`
}

// Records flattens s into one record per day.
func Records(s *domain.WeatherSeries) []DailyRecord {
	out := make([]DailyRecord, s.Len())
	for i := range out {
		out[i] = DailyRecord{
			Date:          s.Date(i).Format(domain.DateLayout),
			Temperature:   s.At(domain.Temperature, i),
			Humidity:      s.At(domain.Humidity, i),
			Precipitation: s.At(domain.Precipitation, i),
			WindSpeed:     s.At(domain.WindSpeed, i),
			Pressure:      s.At(domain.Pressure, i),
		}
	}
	return out
}

// WriteSeries exports s as CSV or JSON.
func WriteSeries(w io.Writer, format string, s *domain.WeatherSeries) error {
	switch format {
	case SeriesCSV:
		return writeSeriesCSV(w, s)
	case SeriesJSON:
		data, err := json.MarshalIndent(Records(s), "", "  ")
		if err != nil {
			return fmt.Errorf("encode series json: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	default:
		return fmt.Errorf("unknown series format %q", format)
	}
}

func writeSeriesCSV(w io.Writer, s *domain.WeatherSeries) error {
	cw := csv.NewWriter(w)
	header := []string{"date"}
	for _, v := range domain.Variables {
		header = append(header, columnName(v))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, 1+len(domain.Variables))
	for i := 0; i < s.Len(); i++ {
		row[0] = s.Date(i).Format(domain.DateLayout)
		for j, v := range domain.Variables {
			row[j+1] = strconv.FormatFloat(s.At(v, i), 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func columnName(v domain.Variable) string {
	switch v {
	case domain.Temperature:
		return "temperature"
	case domain.Humidity:
		return "humidity"
	case domain.Precipitation:
		return "precipitation"
	case domain.WindSpeed:
		return "wind_speed"
	default:
		return "pressure"
	}
}
