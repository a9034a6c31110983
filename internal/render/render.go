package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/couchcryptid/weather-analytics/internal/analysis"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write renders r in the named format.
func Write(w io.Writer, format string, r analysis.Report) error {
	switch format {
	case FormatText:
		return Text(w, r)
	case FormatJSON:
		return JSON(w, r)
	case FormatYAML:
		return YAML(w, r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// JSON writes r as indented JSON.
func JSON(w io.Writer, r analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report json: %w", err)
	}
	return nil
}

// YAML writes r as a YAML document.
func YAML(w io.Writer, r analysis.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report yaml: %w", err)
	}
	return enc.Close()
}
