// Package pipeline drives a single obfuscation run: read, extract, build one
// table, then rewrite every bundle with that table.
package pipeline

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dyluth/evhash/internal/extract"
	"github.com/dyluth/evhash/internal/pseudonym"
	"github.com/dyluth/evhash/internal/rewrite"
)

// Bundle names, in processing order.
const (
	BundleClient   = "client"
	BundleServer   = "server"
	BundleEmbedded = "embedded"
)

// Sources holds the resolved paths of the three bundles.
type Sources struct {
	Client   string
	Server   string
	Embedded string
}

// Paths returns the bundle paths in processing order.
func (s Sources) Paths() []string {
	return []string{s.Client, s.Server, s.Embedded}
}

// Options tunes a run.
type Options struct {
	DryRun bool
}

// BundleCounts summarises extraction for one bundle.
type BundleCounts struct {
	Bundle      string `json:"bundle"`
	Path        string `json:"path"`
	Occurrences int    `json:"occurrences"`
	Distinct    int    `json:"distinct"`
}

// Report is the result of a run.
type Report struct {
	RunID     string            `json:"run_id"`
	StartedAt time.Time         `json:"started_at"`
	DryRun    bool              `json:"dry_run"`
	Counts    []BundleCounts    `json:"bundles"`
	Table     *pseudonym.Table  `json:"-"`
	Outcomes  []rewrite.Outcome `json:"outcomes"`
}

// Failed returns the outcomes that carry an error.
func (r *Report) Failed() []rewrite.Outcome {
	var failed []rewrite.Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err joins every per-file error, or returns nil when all files succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, o.Err)
	}
	return errors.Join(errs...)
}

// Scan reads and extracts all three bundles and builds the table without
// touching any file. A read failure on any bundle is fatal.
func Scan(sources Sources) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
		DryRun:    true,
	}

	names := []string{BundleClient, BundleServer, BundleEmbedded}
	paths := sources.Paths()

	log.Printf("[INFO] run %s: reading %d bundles", report.RunID, len(paths))
	contents := make([]string, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s bundle: %w", names[i], err)
		}
		contents[i] = string(data)
	}

	log.Printf("[INFO] run %s: extracting identifiers", report.RunID)
	ids := make([][]string, len(contents))
	for i, content := range contents {
		ids[i] = extract.Extract(content)
		report.Counts = append(report.Counts, BundleCounts{
			Bundle:      names[i],
			Path:        paths[i],
			Occurrences: len(ids[i]),
			Distinct:    len(extract.Distinct(ids[i])),
		})
		log.Printf("[DEBUG] %s: %d occurrences in %s", names[i], len(ids[i]), paths[i])
	}

	report.Table = pseudonym.Build(ids[0], ids[1], ids[2])
	log.Printf("[INFO] run %s: table holds %d identifiers", report.RunID, report.Table.Len())

	return report, nil
}

// Run scans the bundles and then rewrites each of them with the same table.
func Run(sources Sources, opts Options) (*Report, error) {
	report, err := Scan(sources)
	if err != nil {
		return nil, err
	}
	Rewrite(report, sources.Paths(), opts)
	return report, nil
}

// Rewrite applies report's table to every path in order, appending one
// outcome per path. A failure on one path does not stop the others.
func Rewrite(report *Report, paths []string, opts Options) {
	report.DryRun = opts.DryRun

	r := rewrite.NewRewriter(report.Table, rewrite.WithDryRun(opts.DryRun))
	for _, path := range paths {
		outcome := r.RewriteFile(path)
		if outcome.Err != nil {
			log.Printf("[WARN] rewrite failed, continuing: %v", outcome.Err)
		} else {
			log.Printf("[DEBUG] %s: %d replacements", path, outcome.Replacements)
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	log.Printf("[INFO] run %s: rewrote %d/%d bundles",
		report.RunID, len(report.Outcomes)-len(report.Failed()), len(report.Outcomes))
}
