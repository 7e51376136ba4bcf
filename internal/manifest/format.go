// Package manifest renders pseudonym tables and run outcomes for humans and
// scripts.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dyluth/evhash/internal/pipeline"
	"github.com/dyluth/evhash/internal/pseudonym"
)

// OutputFormat selects how a table is printed.
type OutputFormat string

const (
	OutputFormatDefault OutputFormat = "default"
	OutputFormatJSON    OutputFormat = "json"
)

// ParseOutputFormat validates a user-supplied format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputFormatDefault, OutputFormatJSON:
		return OutputFormat(s), nil
	}
	return "", fmt.Errorf("unknown output format: %s", s)
}

// FormatTable writes the identifier table in aligned columns.
// Returns the number of entries written.
func FormatTable(w io.Writer, table *pseudonym.Table) int {
	entries := table.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No event identifiers found")
		return 0
	}

	fmt.Fprintf(w, "%-40s %s\n", "IDENTIFIER", "PSEUDONYM")
	fmt.Fprintf(w, "%-40s %s\n",
		"----------------------------------------", "----------------")

	for _, e := range entries {
		fmt.Fprintf(w, "%-40s %s\n", formatIdentifier(e.Identifier), formatPseudonym(e.Pseudonym))
	}

	noun := "identifier"
	if len(entries) != 1 {
		noun = "identifiers"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(entries), noun)

	return len(entries)
}

// FormatJSONL writes one JSON object per table entry.
func FormatJSONL(w io.Writer, table *pseudonym.Table) error {
	for _, e := range table.Entries() {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal entry to JSON: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// FormatCounts writes per-bundle extraction counts.
func FormatCounts(w io.Writer, counts []pipeline.BundleCounts) {
	for _, c := range counts {
		fmt.Fprintf(w, "%-9s %4d occurrences %4d distinct  %s\n",
			c.Bundle, c.Occurrences, c.Distinct, c.Path)
	}
}

// FormatOutcomes writes one line per rewritten file.
func FormatOutcomes(w io.Writer, report *pipeline.Report) {
	for _, o := range report.Outcomes {
		status := "rewritten"
		switch {
		case o.Err != nil:
			status = "FAILED"
		case report.DryRun:
			status = "would rewrite"
		case !o.Changed:
			status = "unchanged"
		}
		fmt.Fprintf(w, "%-13s %4d replacements  %s\n", status, o.Replacements, o.Path)
		if o.Err != nil {
			fmt.Fprintf(w, "              %v\n", o.Err)
		}
	}
}

// formatIdentifier truncates long identifiers for table display.
func formatIdentifier(id string) string {
	if len(id) > 40 {
		return id[:37] + "..."
	}
	return id
}

// formatPseudonym shows the first 16 hex digits, enough to tell entries apart.
func formatPseudonym(p string) string {
	if len(p) > 16 {
		return p[:16]
	}
	return p
}

// Manifest is the JSON document written by WriteManifest.
type Manifest struct {
	RunID     string                  `json:"run_id"`
	StartedAt time.Time               `json:"started_at"`
	DryRun    bool                    `json:"dry_run"`
	Bundles   []pipeline.BundleCounts `json:"bundles"`
	Entries   []pseudonym.Entry       `json:"entries"`
	Files     []FileResult            `json:"files"`
}

// FileResult is the manifest form of a rewrite outcome.
type FileResult struct {
	Path         string `json:"path"`
	Replacements int    `json:"replacements"`
	Changed      bool   `json:"changed"`
	Written      bool   `json:"written"`
	Error        string `json:"error,omitempty"`
}

// Build converts a report into a Manifest.
func Build(report *pipeline.Report) *Manifest {
	m := &Manifest{
		RunID:     report.RunID,
		StartedAt: report.StartedAt,
		DryRun:    report.DryRun,
		Bundles:   report.Counts,
		Entries:   report.Table.Entries(),
	}
	for _, o := range report.Outcomes {
		m.Files = append(m.Files, FileResult{
			Path:         o.Path,
			Replacements: o.Replacements,
			Changed:      o.Changed,
			Written:      o.Written,
			Error:        o.ErrMessage(),
		})
	}
	return m
}

// WriteManifest writes report as pretty-printed JSON to path.
func WriteManifest(path string, report *pipeline.Report) error {
	data, err := json.MarshalIndent(Build(report), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create manifest directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest previously written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, nil
}
