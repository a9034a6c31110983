// Package domain models a synthetic daily weather series and the primitives
// every analyzer shares.
//
// # Series Model
//
// A [WeatherSeries] holds N consecutive calendar days (no gaps) and five
// index-aligned variables in canonical order:
//
//	Temperature    °C
//	Humidity       %     clipped to [10, 100]
//	Precipitation  mm    >= 0, exactly 0 on dry days
//	Wind Speed     km/h  clipped to [0, 50]
//	Pressure       hPa
//
// The series is immutable once built; accessors hand out copies.
//
// # Generator
//
// For day index i with day-of-year doy:
//
//	seasonal    = 20 + 15·sin(2π·doy/365.25 − π/2)
//	variation_i = N(0,5) + 0.3·variation_{i−1}      (AR(1), sequential scan)
//	temperature = seasonal + variation
//	humidity    = clip(70 − 0.5·(temperature − 20) + N(0,10), 10, 100)
//	rain        = U(0,1) < clip((humidity − 30)/70, 0, 1)·0.3
//	precip      = Exponential(mean 5) if rain, else 0
//	wind        = clip(8 + 0.3·precip + N(0,3), 0, 50)
//	pressure    = 1013 + 10·sin(2π·doy/365.25) + N(0,8) − 5·[precip > 0]
//
// Each noise process draws from its own PCG stream keyed by the seed, so a
// seed and day count fully determine the series.
//
// # Runs
//
// A [Run] is a maximal block of consecutive true values in a boolean mask.
// [FindRuns] uses padded first-difference edge detection and
// [AccumulateRuns] a single sequential pass; both return identical runs.
// Heat waves and dry spells are runs over "hot day" and "zero precipitation"
// masks respectively.
//
// # Seasons
//
// Months map to meteorological seasons: Winter={12,1,2}, Spring={3,4,5},
// Summer={6,7,8}, Fall={9,10,11}. Multi-year series pool every year into the
// same bucket.
package domain
