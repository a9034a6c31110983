// Package analysis derives descriptive, seasonal, correlational,
// extreme-event, trend and precipitation statistics from a
// [domain.WeatherSeries]. Every analyzer is a pure function of the series and
// never mutates it.
//
// Statistics that are undefined for a particular series (zero variance, no
// rainy days, a window longer than the series, no dry spells) are reported as
// nil pointers instead of errors or NaN, so a report is always complete and
// always encodes to JSON.
//
// # Conventions
//
// Percentiles use linear interpolation between closest ranks: for sorted
// values x and fraction p the position is h = (N−1)·p and the result is
// x[⌊h⌋] + (h−⌊h⌋)·(x[⌊h⌋+1] − x[⌊h⌋]).
//
// Standard deviations are population (divide by N).
//
// The composite extremity score of a day is
//
//	|z(temperature)| + z(wind speed) + z(precipitation)
//
// Temperature counts in both directions while wind and precipitation count
// only when high. The asymmetry is kept as is.
//
// The linear trend is labeled "warming" only for a strictly positive slope;
// a zero slope is labeled "cooling".
package analysis
