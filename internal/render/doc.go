// Package render writes an analysis report for people and for machines.
//
// Text renders every section in report order, spelling out undefined
// statistics ("undefined", "not computable", "none detected", "no
// precipitation observed") instead of printing NaN. JSON and YAML encode the
// same Report value; undefined statistics become null.
//
// Chart draws the first year of a series as a two-panel text chart: weekly
// mean temperature as a sparkline and weekly precipitation totals as bars.
package render
