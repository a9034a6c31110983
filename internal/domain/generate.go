package domain

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultStartDate is the first day of every generated series unless overridden.
var DefaultStartDate = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultDays is the default series length, roughly three years.
const DefaultDays = 1095

// Model constants for the synthetic climate.
const (
	daysPerYear = 365.25

	baseTemperature      = 20.0
	temperatureAmplitude = 15.0
	temperatureNoiseSD   = 5.0
	// temperatureMemory is the AR(1) coefficient carried from one day's
	// temperature anomaly into the next.
	temperatureMemory = 0.3

	baseHumidity          = 70.0
	humidityPerDegree     = -0.5
	humidityNoiseSD       = 10.0
	rainHumidityFloor     = 30.0
	rainHumiditySpan      = 70.0
	rainProbabilityFactor = 0.3
	meanRainfall          = 5.0

	baseWind          = 8.0
	windPerMillimetre = 0.3
	windNoiseSD       = 3.0

	basePressure      = 1013.0
	pressureAmplitude = 10.0
	pressureNoiseSD   = 8.0
	rainPressureDrop  = 5.0
)

// Independent random streams, one per noise process. Each is a PCG stream
// keyed by (seed, stream) so a seed fully determines the series.
const (
	streamTemperature uint64 = iota + 1
	streamHumidity
	streamRainEvent
	streamRainAmount
	streamWind
	streamPressure
)

// Generator produces synthetic WeatherSeries from a seasonal base signal and
// coupled noise processes.
type Generator struct {
	start time.Time
}

// NewGenerator creates a Generator whose series begin on start. A zero start
// selects DefaultStartDate.
func NewGenerator(start time.Time) *Generator {
	if start.IsZero() {
		start = DefaultStartDate
	}
	return &Generator{start: truncateToDay(start)}
}

// Start returns the first date of every series this generator produces.
func (g *Generator) Start() time.Time { return g.start }

// Generate builds a series of the given number of days. The same seed and
// day count always yield a bit-identical series.
func (g *Generator) Generate(days int, seed uint64) (*WeatherSeries, error) {
	if days < 1 {
		return nil, fmt.Errorf("generate %d days: %w", days, ErrEmptySeries)
	}

	tempNoise := distuv.Normal{Mu: 0, Sigma: temperatureNoiseSD, Src: newStream(seed, streamTemperature)}
	humidityNoise := distuv.Normal{Mu: 0, Sigma: humidityNoiseSD, Src: newStream(seed, streamHumidity)}
	rainEvent := distuv.Uniform{Min: 0, Max: 1, Src: newStream(seed, streamRainEvent)}
	rainAmount := distuv.Exponential{Rate: 1 / meanRainfall, Src: newStream(seed, streamRainAmount)}
	windNoise := distuv.Normal{Mu: 0, Sigma: windNoiseSD, Src: newStream(seed, streamWind)}
	pressureNoise := distuv.Normal{Mu: 0, Sigma: pressureNoiseSD, Src: newStream(seed, streamPressure)}

	shocks := make([]float64, days)
	for i := range shocks {
		shocks[i] = tempNoise.Rand()
	}
	variation := autoregress(shocks, temperatureMemory)

	temperature := make([]float64, days)
	humidity := make([]float64, days)
	precipitation := make([]float64, days)
	windSpeed := make([]float64, days)
	pressure := make([]float64, days)

	for i := 0; i < days; i++ {
		doy := float64(g.start.AddDate(0, 0, i).YearDay())
		phase := 2 * math.Pi * doy / daysPerYear

		temperature[i] = baseTemperature + temperatureAmplitude*math.Sin(phase-math.Pi/2) + variation[i]

		humidity[i] = clamp(baseHumidity+humidityPerDegree*(temperature[i]-baseTemperature)+humidityNoise.Rand(),
			MinHumidity, MaxHumidity)

		rainChance := clamp((humidity[i]-rainHumidityFloor)/rainHumiditySpan, 0, 1) * rainProbabilityFactor
		draw, amount := rainEvent.Rand(), rainAmount.Rand()
		if draw < rainChance {
			precipitation[i] = amount
		}

		windSpeed[i] = clamp(baseWind+windPerMillimetre*precipitation[i]+windNoise.Rand(), MinWindSpeed, MaxWindSpeed)

		pressure[i] = basePressure + pressureAmplitude*math.Sin(phase) + pressureNoise.Rand()
		if precipitation[i] > 0 {
			pressure[i] -= rainPressureDrop
		}
	}

	return NewWeatherSeries(g.start, temperature, humidity, precipitation, windSpeed, pressure)
}

// autoregress folds i.i.d. shocks into a first-order autoregressive sequence,
// x[0] = e[0] and x[i] = e[i] + phi*x[i-1]. Each step needs the previous
// output, so this is a sequential scan.
func autoregress(shocks []float64, phi float64) []float64 {
	out := make([]float64, len(shocks))
	carry := 0.0
	for i, e := range shocks {
		carry = e + phi*carry
		out[i] = carry
	}
	return out
}

func newStream(seed, stream uint64) rand.Source {
	return rand.NewPCG(seed, stream)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
