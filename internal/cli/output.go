package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormat specifies the report format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Report summarizes a scrape run
type Report struct {
	ScrapedAt    string `json:"scraped_at"`
	EventCount   int    `json:"event_count"`
	WithAbstract int    `json:"with_abstract"`
	OutputPath   string `json:"output_path"`
	Duration     string `json:"duration"`
	Interrupted  bool   `json:"interrupted,omitempty"`
}

// WriteReport writes the run report in the specified format
func WriteReport(w io.Writer, report *Report, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeText(w, report)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the report as indented JSON
func writeJSON(w io.Writer, report *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// writeText outputs the report as human-readable text, ending with the
// abstract count, the quality signal for a scrape.
func writeText(w io.Writer, report *Report) error {
	if report.Interrupted {
		fmt.Fprintln(w, "Interrupted during enrichment; saved partial data.")
	}
	fmt.Fprintf(w, "Successfully saved %d events to %s\n", report.EventCount, report.OutputPath)
	fmt.Fprintf(w, "  Scraped at %s in %s\n", report.ScrapedAt, report.Duration)
	fmt.Fprintf(w, "  %d events have abstracts/descriptions\n", report.WithAbstract)
	return nil
}
