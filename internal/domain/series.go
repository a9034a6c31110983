package domain

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Variable identifies one of the five daily weather variables. The numeric
// order is the canonical order used by correlation matrices and reports.
type Variable int

const (
	Temperature Variable = iota
	Humidity
	Precipitation
	WindSpeed
	Pressure
)

// Variables lists every Variable in canonical order.
var Variables = []Variable{Temperature, Humidity, Precipitation, WindSpeed, Pressure}

const numVariables = 5

func (v Variable) String() string {
	switch v {
	case Temperature:
		return "Temperature"
	case Humidity:
		return "Humidity"
	case Precipitation:
		return "Precipitation"
	case WindSpeed:
		return "Wind Speed"
	case Pressure:
		return "Pressure"
	default:
		return fmt.Sprintf("Variable(%d)", int(v))
	}
}

// Unit returns the display unit for the variable.
func (v Variable) Unit() string {
	switch v {
	case Temperature:
		return "°C"
	case Humidity:
		return "%"
	case Precipitation:
		return "mm"
	case WindSpeed:
		return "km/h"
	case Pressure:
		return "hPa"
	default:
		return ""
	}
}

// Physical bounds enforced on every series.
const (
	MinHumidity  = 10.0
	MaxHumidity  = 100.0
	MinWindSpeed = 0.0
	MaxWindSpeed = 50.0
)

// WeatherSeries is an immutable daily series of the five weather variables.
// Row i of the backing matrix holds the observations for Date(i); column j
// holds Variable(j). Accessors return copies so no caller can mutate it.
type WeatherSeries struct {
	start time.Time
	data  *mat.Dense
}

// NewWeatherSeries validates the columns against the series invariants and
// assembles them into a WeatherSeries starting at the given calendar date.
// All columns must have the same non-zero length.
func NewWeatherSeries(start time.Time, temperature, humidity, precipitation, windSpeed, pressure []float64) (*WeatherSeries, error) {
	cols := [numVariables][]float64{temperature, humidity, precipitation, windSpeed, pressure}

	n := len(temperature)
	if n < 1 {
		return nil, ErrEmptySeries
	}
	for j, col := range cols {
		if len(col) != n {
			return nil, fmt.Errorf("%w: %s has %d values, want %d", ErrInvalidSeries, Variable(j), len(col), n)
		}
	}

	data := mat.NewDense(n, numVariables, nil)
	for j, col := range cols {
		data.SetCol(j, col)
	}

	s := &WeatherSeries{start: truncateToDay(start), data: data}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the value invariants: finite values, humidity within
// [10,100], non-negative precipitation and wind speed within [0,50].
func (s *WeatherSeries) Validate() error {
	n := s.Len()
	for i := 0; i < n; i++ {
		for _, v := range Variables {
			x := s.data.At(i, int(v))
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("%w: %s[%d] is not finite", ErrInvalidSeries, v, i)
			}
		}
		if h := s.data.At(i, int(Humidity)); h < MinHumidity || h > MaxHumidity {
			return fmt.Errorf("%w: humidity[%d]=%g outside [%g,%g]", ErrInvalidSeries, i, h, MinHumidity, MaxHumidity)
		}
		if p := s.data.At(i, int(Precipitation)); p < 0 {
			return fmt.Errorf("%w: precipitation[%d]=%g is negative", ErrInvalidSeries, i, p)
		}
		if w := s.data.At(i, int(WindSpeed)); w < MinWindSpeed || w > MaxWindSpeed {
			return fmt.Errorf("%w: wind speed[%d]=%g outside [%g,%g]", ErrInvalidSeries, i, w, MinWindSpeed, MaxWindSpeed)
		}
	}
	return nil
}

// Len returns the number of days N.
func (s *WeatherSeries) Len() int {
	n, _ := s.data.Dims()
	return n
}

// Start returns the first date of the series (UTC midnight).
func (s *WeatherSeries) Start() time.Time { return s.start }

// End returns the last date of the series.
func (s *WeatherSeries) End() time.Time { return s.Date(s.Len() - 1) }

// Date returns the calendar date of day index i.
func (s *WeatherSeries) Date(i int) time.Time {
	return s.start.AddDate(0, 0, i)
}

// Dates returns every date of the series in order.
func (s *WeatherSeries) Dates() []time.Time {
	dates := make([]time.Time, s.Len())
	for i := range dates {
		dates[i] = s.Date(i)
	}
	return dates
}

// Values returns a copy of one variable's column.
func (s *WeatherSeries) Values(v Variable) []float64 {
	return mat.Col(nil, int(v), s.data)
}

// At returns the value of variable v on day i.
func (s *WeatherSeries) At(v Variable, i int) float64 {
	return s.data.At(i, int(v))
}

// Matrix returns a copy of the N×5 observation matrix in canonical column order.
func (s *WeatherSeries) Matrix() *mat.Dense {
	return mat.DenseCopyOf(s.data)
}

// Head returns a new series holding at most the first n days.
func (s *WeatherSeries) Head(n int) *WeatherSeries {
	if n >= s.Len() {
		return s
	}
	if n < 1 {
		n = 1
	}
	return &WeatherSeries{start: s.start, data: mat.DenseCopyOf(s.data.Slice(0, n, 0, numVariables))}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
