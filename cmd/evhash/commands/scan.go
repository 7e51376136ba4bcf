package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dyluth/evhash/internal/manifest"
	"github.com/dyluth/evhash/internal/pipeline"
	"github.com/dyluth/evhash/internal/printer"
)

var (
	scanOutputFormat string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the event identifiers that would be obfuscated",
	Long: `Read all three bundles, extract every "client:*" and "server:*" identifier
and print the pseudonym table. No file is modified.

Output Formats:
  default - Per-bundle counts followed by an identifier/pseudonym table
  json    - One JSON object per identifier (JSONL)

Examples:
  # Review the table before a release build
  evhash scan

  # Feed the table to jq
  evhash scan --output=json | jq -r '.identifier'`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanOutputFormat, "output", "o", "default", "Output format: default or json")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	format, err := manifest.ParseOutputFormat(scanOutputFormat)
	if err != nil {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", scanOutputFormat),
			[]string{"Valid formats: default, json"},
		)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sources, err := resolveSources(cfg)
	if err != nil {
		return err
	}

	report, err := pipeline.Scan(sources)
	if err != nil {
		return printer.Error(
			"failed to read bundles",
			err.Error(),
			[]string{"Check the target paths in evhash.yml"},
		)
	}

	w := printer.Stdout()
	if format == manifest.OutputFormatJSON {
		return manifest.FormatJSONL(w, report.Table)
	}

	manifest.FormatCounts(w, report.Counts)
	fmt.Fprintln(w)
	manifest.FormatTable(w, report.Table)
	return nil
}
