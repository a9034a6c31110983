// Command validate checks the generator and analyzers against their
// invariants over many seeds and series lengths: value bounds, date
// contiguity, seeded determinism, run-detector equivalence and report
// properties. With -csv it instead checks a series exported by
// `weatherstats generate`.
//
// Usage:
//
//	go run ./cmd/validate -seeds 50 -days 1,2,7,31,365,1095
//	go run ./cmd/validate -csv series.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/weather-analytics/internal/analysis"
	"github.com/couchcryptid/weather-analytics/internal/config"
	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	checks int
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) check(ok bool, format string, args ...any) {
	p.checks++
	if !ok {
		p.errorf(format, args...)
	}
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// run is one generated series under test.
type run struct {
	seed   uint64
	days   int
	series *domain.WeatherSeries
}

func (r run) String() string { return fmt.Sprintf("seed=%d days=%d", r.seed, r.days) }

func main() {
	seeds := flag.Int("seeds", 20, "number of consecutive seeds to check")
	firstSeed := flag.Uint64("first-seed", 0, "first seed")
	daysList := flag.String("days", "1,2,7,30,31,365,366,1095", "comma-separated series lengths")
	start := flag.String("start", "2021-01-01", "series start date (YYYY-MM-DD)")
	csvPath := flag.String("csv", "", "validate an exported CSV series instead of generating")
	flag.Parse()

	if *csvPath != "" {
		os.Exit(runCSV(*csvPath))
	}

	days, err := parseDays(*daysList)
	if err != nil || *seeds < 1 {
		flag.Usage()
		os.Exit(1)
	}
	startDate, err := config.ParseStartDate(*start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	os.Exit(runGenerated(domain.NewGenerator(startDate), *firstSeed, *seeds, days))
}

func runGenerated(gen *domain.Generator, firstSeed uint64, seeds int, days []int) int {
	fmt.Println("=== Weather Series Validation ===")
	fmt.Println()

	generation := &phase{name: "Phase 1: Series Invariants"}
	var runs []run
	for s := range seeds {
		seed := firstSeed + uint64(s)
		for _, n := range days {
			series, err := gen.Generate(n, seed)
			generation.check(err == nil, "seed=%d days=%d: generate: %v", seed, n, err)
			if err != nil {
				continue
			}
			r := run{seed: seed, days: n, series: series}
			checkInvariants(generation, r.String(), series, n)
			runs = append(runs, r)
		}
	}

	phases := []*phase{
		generation,
		validateDates(runs, gen.Start()),
		validateDeterminism(gen, runs),
		validateRunDetectors(runs),
		validateReportProperties(runs),
	}

	fmt.Printf("Series: %d seeds x %d lengths = %d generated\n", seeds, len(days), len(runs))
	return report(phases)
}

func report(phases []*phase) int {
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %6d checks  %s\n", p.name, p.checks, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Series Invariants ──

func checkInvariants(p *phase, label string, s *domain.WeatherSeries, wantLen int) {
	p.check(s.Len() == wantLen, "%s: length %d, want %d", label, s.Len(), wantLen)
	p.check(s.Validate() == nil, "%s: %v", label, s.Validate())

	bounds := []struct {
		v      domain.Variable
		lo, hi float64
	}{
		{domain.Humidity, domain.MinHumidity, domain.MaxHumidity},
		{domain.Precipitation, 0, math.Inf(1)},
		{domain.WindSpeed, domain.MinWindSpeed, domain.MaxWindSpeed},
	}
	for _, b := range bounds {
		for i, x := range s.Values(b.v) {
			if x < b.lo || x > b.hi {
				p.errorf("%s: %s[%d] = %v outside [%v, %v]", label, b.v, i, x, b.lo, b.hi)
			}
		}
		p.checks++
	}
}

// ── Phase 2: Date Contiguity ──

func validateDates(runs []run, start time.Time) *phase {
	p := &phase{name: "Phase 2: Date Contiguity"}
	for _, r := range runs {
		checkDates(p, r.String(), r.series.Dates(), start)
	}
	return p
}

func checkDates(p *phase, label string, dates []time.Time, start time.Time) {
	p.check(len(dates) > 0 && dates[0].Equal(start), "%s: first date %v, want %s", label, firstDate(dates), start.Format(domain.DateLayout))
	for i := 1; i < len(dates); i++ {
		want := dates[i-1].AddDate(0, 0, 1)
		if !dates[i].Equal(want) {
			p.errorf("%s: date[%d] = %s, want %s", label, i, dates[i].Format(domain.DateLayout), want.Format(domain.DateLayout))
			return
		}
	}
	p.checks++
}

func firstDate(dates []time.Time) string {
	if len(dates) == 0 {
		return "none"
	}
	return dates[0].Format(domain.DateLayout)
}

// ── Phase 3: Seeded Determinism ──
// The same seed reproduces a bit-identical series and a shorter series is a
// prefix of a longer one.

func validateDeterminism(gen *domain.Generator, runs []run) *phase {
	p := &phase{name: "Phase 3: Seeded Determinism"}
	longest := map[uint64]*domain.WeatherSeries{}
	for _, r := range runs {
		again, err := gen.Generate(r.days, r.seed)
		if err != nil {
			p.errorf("%s: regenerate: %v", r, err)
			continue
		}
		p.check(mat.Equal(r.series.Matrix(), again.Matrix()), "%s: regenerated series differs", r)

		if l, ok := longest[r.seed]; !ok || l.Len() < r.days {
			longest[r.seed] = r.series
		}
	}
	for _, r := range runs {
		l := longest[r.seed]
		p.check(mat.Equal(l.Head(r.days).Matrix(), r.series.Matrix()),
			"%s: not a prefix of the %d-day series", r, l.Len())
	}
	return p
}

// ── Phase 4: Run Detector Equivalence ──

func validateRunDetectors(runs []run) *phase {
	p := &phase{name: "Phase 4: Run Detector Equivalence"}
	for _, r := range runs {
		temps := r.series.Values(domain.Temperature)
		hot := analysis.Percentile(temps, analysis.HotPercentile)
		masks := map[string][]bool{
			"hot days": domain.Mask(temps, func(t float64) bool { return t > hot }),
			"dry days": domain.Mask(r.series.Values(domain.Precipitation), func(x float64) bool { return x == 0 }),
		}
		for name, mask := range masks {
			edge, seq := domain.FindRuns(mask), domain.AccumulateRuns(mask)
			if diff := cmp.Diff(edge, seq); diff != "" {
				p.errorf("%s: %s runs differ (-edge +sequential):\n%s", r, name, diff)
			}
			p.checks++
		}
	}
	return p
}

// ── Phase 5: Report Properties ──

func validateReportProperties(runs []run) *phase {
	p := &phase{name: "Phase 5: Report Properties"}
	for _, r := range runs {
		corr := analysis.Correlate(r.series)
		for _, a := range domain.Variables {
			for _, b := range domain.Variables {
				ab, okAB := corr.Matrix.At(a, b)
				ba, okBA := corr.Matrix.At(b, a)
				p.check(okAB == okBA && ab == ba, "%s: corr[%s][%s]=%v != corr[%s][%s]=%v", r, a, b, ab, b, a, ba)
			}
			if d, ok := corr.Matrix.At(a, a); ok {
				p.check(d == 1, "%s: corr[%s][%s] = %v, want 1", r, a, a, d)
			}
		}

		ext := analysis.Extremes(r.series)
		p.check(ext.Thresholds.Hot >= ext.Thresholds.Cold, "%s: hot threshold %v below cold %v", r, ext.Thresholds.Hot, ext.Thresholds.Cold)

		temps := r.series.Values(domain.Temperature)
		for _, w := range analysis.MovingAverageWindows {
			want := max(0, r.days-w+1)
			got := len(analysis.MovingAverage(temps, w))
			p.check(got == want, "%s: %d-day moving average has %d points, want %d", r, w, got, want)
		}
	}
	return p
}

// ── CSV mode ──

func runCSV(path string) int {
	fmt.Println("=== Exported Series Validation ===")
	fmt.Println()

	series, err := loadCSV(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load %s: %v\n", path, err)
		return 1
	}

	invariants := &phase{name: "Phase 1: Series Invariants"}
	checkInvariants(invariants, path, series, series.Len())
	dates := &phase{name: "Phase 2: Date Contiguity"}
	checkDates(dates, path, series.Dates(), series.Start())

	fmt.Printf("Series: %d days, %s to %s\n", series.Len(),
		series.Start().Format(domain.DateLayout), series.End().Format(domain.DateLayout))
	return report([]*phase{invariants, dates})
}

// loadCSV reads a series in the column layout written by `weatherstats generate`.
func loadCSV(path string) (*domain.WeatherSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) < 2 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	n := len(all) - 1
	cols := make([][]float64, len(domain.Variables))
	for j := range cols {
		cols[j] = make([]float64, n)
	}
	var start time.Time
	for i, row := range all[1:] {
		if len(row) != 1+len(domain.Variables) {
			return nil, fmt.Errorf("line %d: %d columns, want %d", i+2, len(row), 1+len(domain.Variables))
		}
		date, err := time.ParseInLocation(domain.DateLayout, row[0], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		if i == 0 {
			start = date
		} else if want := start.AddDate(0, 0, i); !date.Equal(want) {
			return nil, fmt.Errorf("line %d: date %s, want %s", i+2, row[0], want.Format(domain.DateLayout))
		}
		for j := range domain.Variables {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[j+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", i+2, j+2, err)
			}
			cols[j][i] = v
		}
	}
	return domain.NewWeatherSeries(start, cols[0], cols[1], cols[2], cols[3], cols[4])
}

func parseDays(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid day count %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}
