package domain

import "errors"

var (
	// ErrEmptySeries is returned when a series would have fewer than one day.
	ErrEmptySeries = errors.New("series must contain at least one day")

	// ErrInvalidSeries marks a series that breaks a length or bounds invariant.
	ErrInvalidSeries = errors.New("invalid weather series")

	// ErrDegenerateInput marks a statistic that needs positive variance but
	// was asked of a constant-valued variable.
	ErrDegenerateInput = errors.New("degenerate input: zero variance")

	// ErrNoPrecipitation marks a statistic conditioned on rainy days when the
	// series has none.
	ErrNoPrecipitation = errors.New("no precipitation observed")

	// ErrInsufficientLength marks a moving-average window longer than the series.
	ErrInsufficientLength = errors.New("window exceeds series length")
)
