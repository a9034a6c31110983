package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used in reports and exports.
const DateLayout = "2006-01-02"

// RunInfo identifies one generated series and the report computed from it.
type RunInfo struct {
	ID          string    `json:"id" yaml:"id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Seed        uint64    `json:"seed" yaml:"seed"`
	Days        int       `json:"days" yaml:"days"`
	StartDate   string    `json:"start_date" yaml:"start_date"`
	EndDate     string    `json:"end_date" yaml:"end_date"`
}

// NewRunInfo stamps a fresh report ID and generation time for a series.
func NewRunInfo(s *WeatherSeries, seed uint64) RunInfo {
	return RunInfo{
		ID:          uuid.NewString(),
		GeneratedAt: clock.Now().UTC(),
		Seed:        seed,
		Days:        s.Len(),
		StartDate:   s.Start().Format(DateLayout),
		EndDate:     s.End().Format(DateLayout),
	}
}

// SeedFromClock derives a seed for runs that did not ask for one. The seed is
// recorded in RunInfo so the run can be replayed.
func SeedFromClock() uint64 {
	return uint64(clock.Now().UnixNano())
}
