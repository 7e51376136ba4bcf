// Package rewrite substitutes pseudonyms for identifiers in bundle files.
package rewrite

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/dyluth/evhash/internal/pseudonym"
)

// Outcome describes what happened to one file.
type Outcome struct {
	Path         string `json:"path"`
	Replacements int    `json:"replacements"`
	Changed      bool   `json:"changed"`
	Written      bool   `json:"written"`
	Err          error  `json:"-"`
}

// ErrMessage returns the failure message, or "" when the rewrite succeeded.
func (o Outcome) ErrMessage() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Rewriter applies one pseudonym table to any number of files.
//
// All identifiers are matched in a single left-to-right pass. At a given
// position the longest identifier wins, and substituted text is never
// scanned again, so "client:a" cannot clobber part of "client:ab".
type Rewriter struct {
	table   *pseudonym.Table
	matcher *regexp.Regexp
	dryRun  bool
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithDryRun computes outcomes without writing files.
func WithDryRun(dryRun bool) Option {
	return func(r *Rewriter) {
		r.dryRun = dryRun
	}
}

// NewRewriter prepares a Rewriter for table.
func NewRewriter(table *pseudonym.Table, opts ...Option) *Rewriter {
	r := &Rewriter{table: table}
	for _, opt := range opts {
		opt(r)
	}

	ids := table.Identifiers()
	if len(ids) == 0 {
		return r
	}

	// Longest first: RE2 alternation prefers the earliest alternative.
	sort.SliceStable(ids, func(i, j int) bool {
		return len(ids[i]) > len(ids[j])
	})
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = regexp.QuoteMeta(id)
	}
	r.matcher = regexp.MustCompile(strings.Join(quoted, "|"))
	return r
}

// Apply returns content with every identifier replaced, and the number of
// replacements made.
func (r *Rewriter) Apply(content string) (string, int) {
	if r.matcher == nil {
		return content, 0
	}
	count := 0
	out := r.matcher.ReplaceAllStringFunc(content, func(id string) string {
		p, ok := r.table.Lookup(id)
		if !ok {
			return id
		}
		count++
		return p
	})
	return out, count
}

// RewriteFile reads path fully, applies the table and writes the result back
// over the same path. Failures are reported in the Outcome, never panicked.
func (r *Rewriter) RewriteFile(path string) Outcome {
	outcome := Outcome{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		outcome.Err = fmt.Errorf("failed to stat %s: %w", path, err)
		return outcome
	}

	data, err := os.ReadFile(path)
	if err != nil {
		outcome.Err = fmt.Errorf("failed to read %s: %w", path, err)
		return outcome
	}

	original := string(data)
	rewritten, count := r.Apply(original)
	outcome.Replacements = count
	outcome.Changed = rewritten != original

	if r.dryRun {
		return outcome
	}

	// Truncate and write the whole buffer, even when nothing changed.
	if err := os.WriteFile(path, []byte(rewritten), info.Mode().Perm()); err != nil {
		outcome.Err = fmt.Errorf("failed to write %s: %w", path, err)
		return outcome
	}
	outcome.Written = true

	return outcome
}
