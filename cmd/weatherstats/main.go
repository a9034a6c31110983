// Command weatherstats generates a synthetic multi-year daily weather series
// and prints a statistical analysis of it.
//
// Usage:
//
//	weatherstats report --days 1095 --seed 42 --format text
//	weatherstats generate --days 365 --seed 42 --output series.csv
//	weatherstats serve
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
