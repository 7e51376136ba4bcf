package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dyluth/evhash/internal/config"
	"github.com/dyluth/evhash/internal/extract"
	"github.com/dyluth/evhash/internal/manifest"
	"github.com/dyluth/evhash/internal/printer"
	"github.com/dyluth/evhash/internal/resolver"
)

var lookupManifestPath string

var lookupCmd = &cobra.Command{
	Use:   "lookup IDENTIFIER|PSEUDONYM",
	Short: "Translate between event identifiers and pseudonyms",
	Long: `Translate an event identifier to its pseudonym, or a pseudonym back to the
identifier it replaced.

An identifier such as client:login is hashed directly; no manifest is needed.
A pseudonym (or a hexadecimal prefix of at least 6 characters) is looked up in the
manifest written by 'evhash run --report'.

Examples:
  # What does client:login become?
  evhash lookup client:login

  # Which event is 4f2a9c... in a production stack trace?
  evhash lookup 4f2a9c --manifest evhash-manifest.json`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVarP(&lookupManifestPath, "manifest", "m", "", "Manifest to search (default: report.path from evhash.yml)")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	query := args[0]
	w := printer.Stdout()

	if extract.IsIdentifier(query) {
		entry, err := resolver.Forward(query)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, entry.Pseudonym)
		return nil
	}

	path, err := lookupManifest()
	if err != nil {
		return err
	}
	m, err := manifest.ReadManifest(path)
	if err != nil {
		return printer.Error(
			"failed to load manifest",
			err.Error(),
			[]string{"Write one with:\n  evhash run --report evhash-manifest.json"},
		)
	}

	entry, err := resolver.Reverse(m.Entries, query)
	if err != nil {
		if resolver.IsAmbiguousError(err) {
			return printer.Error("ambiguous pseudonym prefix", resolver.FormatAmbiguousError(err.(*resolver.AmbiguousError)), nil)
		}
		if resolver.IsNotFoundError(err) {
			return printer.ErrorWithContext(
				"pseudonym not found",
				err.Error(),
				map[string]string{"Manifest": path, "Run": m.RunID},
				[]string{"Check that the manifest comes from the build that produced the pseudonym."},
			)
		}
		return printer.Error("invalid pseudonym", err.Error(), nil)
	}

	fmt.Fprintln(w, entry.Identifier)
	return nil
}

// lookupManifest returns --manifest, falling back to report.path from the
// config file. The config is only read, not validated.
func lookupManifest() (string, error) {
	if lookupManifestPath != "" {
		return lookupManifestPath, nil
	}

	path := configPath
	if path == "" {
		path = config.DefaultFile
	}
	if _, err := os.Stat(path); err == nil {
		cfg, err := config.Read(path)
		if err != nil {
			return "", printer.Error("failed to load configuration", err.Error(), nil)
		}
		if cfg.Report != nil && cfg.Report.Path != "" {
			if filepath.IsAbs(cfg.Report.Path) {
				return cfg.Report.Path, nil
			}
			return filepath.Join(cfg.BaseDir, cfg.Report.Path), nil
		}
	}

	return "", printer.Error(
		"no manifest to search",
		"Reverse lookup needs the manifest written by 'evhash run'.",
		[]string{"Pass --manifest FILE, or set report.path in evhash.yml"},
	)
}
