package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dyluth/evhash/internal/config"
	"github.com/dyluth/evhash/internal/git"
	"github.com/dyluth/evhash/internal/manifest"
	"github.com/dyluth/evhash/internal/pipeline"
	"github.com/dyluth/evhash/internal/printer"
)

var (
	runDryRun       bool
	runReportPath   string
	runRequireClean bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Obfuscate event identifiers in all three bundles",
	Long: `Rewrite the client, server and embedded-browser bundles in place.

All three bundles are read before anything is written; if any of them is
missing, nothing is modified. The pseudonym table is built from all three
bundles together, then each bundle is rewritten with it. A write failure on
one bundle does not stop the others; the command exits non-zero afterwards.

Files are overwritten without a backup. Set git.require_clean in evhash.yml
(or pass --require-clean) to refuse to run while a bundle has uncommitted
changes.

Examples:
  # Rewrite using ./evhash.yml
  evhash run

  # Preview replacement counts without writing
  evhash run --dry-run

  # No config file, everything on the command line
  evhash run --client client_packages/index.js \
    --server packages/app/index.js --embedded-dir client_packages/ui/assets`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Report what would change without writing")
	runCmd.Flags().StringVar(&runReportPath, "report", "", "Write a JSON manifest of the mapping (overrides report.path)")
	runCmd.Flags().BoolVar(&runRequireClean, "require-clean", false, "Refuse to rewrite bundles with uncommitted Git changes")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sources, err := resolveSources(cfg)
	if err != nil {
		return err
	}

	if !runDryRun && (runRequireClean || cfg.Git.RequireClean) {
		if err := ensureClean(cfg, sources); err != nil {
			return err
		}
	}

	printer.Step("Obfuscating event identifiers...\n")
	report, err := pipeline.Run(sources, pipeline.Options{DryRun: runDryRun})
	if err != nil {
		return printer.ErrorWithContext(
			"failed to read bundles",
			err.Error(),
			map[string]string{
				"Client":   sources.Client,
				"Server":   sources.Server,
				"Embedded": sources.Embedded,
			},
			[]string{"No bundle was modified. Check the target paths and try again."},
		)
	}

	w := printer.Stdout()
	manifest.FormatCounts(w, report.Counts)
	fmt.Fprintln(w)
	manifest.FormatOutcomes(w, report)
	fmt.Fprintln(w)

	reportPath := runReportPath
	if reportPath == "" && cfg.Report.Path != "" {
		reportPath = cfg.Report.Path
		if !filepath.IsAbs(reportPath) {
			reportPath = filepath.Join(cfg.BaseDir, reportPath)
		}
	}
	if reportPath != "" {
		if err := manifest.WriteManifest(reportPath, report); err != nil {
			printer.Warning("Manifest not written: %v\n", err)
		} else {
			printer.Info("Manifest written to %s\n", reportPath)
		}
	}

	if failed := report.Failed(); len(failed) > 0 {
		return printer.Error(
			fmt.Sprintf("%d of %d bundles were not rewritten", len(failed), len(report.Outcomes)),
			report.Err().Error(),
			[]string{"The other bundles were rewritten. Fix the failure, rebuild, and run again."},
		)
	}

	if runDryRun {
		printer.Success("Dry run: %d identifiers found, no files written\n", report.Table.Len())
	} else {
		printer.Success("Obfuscated %d identifiers across %d bundles\n", report.Table.Len(), len(report.Outcomes))
	}
	return nil
}

// ensureClean refuses to continue when any bundle has uncommitted changes
func ensureClean(cfg *config.EvhashConfig, sources pipeline.Sources) error {
	checker := git.NewChecker(cfg.BaseDir)

	isRepo, err := checker.IsGitRepository()
	if err != nil {
		return err
	}
	if !isRepo {
		return printer.Error(
			"not a Git repository",
			"git.require_clean is set but the bundles are not inside a Git repository.",
			[]string{"Run from inside the repository, or set git.require_clean: false"},
		)
	}

	root, err := checker.GetGitRoot()
	if err != nil {
		return err
	}

	dirty, err := checker.DirtyPaths(sources.Paths())
	if err != nil {
		return err
	}
	if len(dirty) > 0 {
		// Porcelain paths are relative to the repository root.
		return printer.ErrorWithContext(
			"bundles have uncommitted changes",
			git.FormatDirty(dirty),
			map[string]string{"Repository": root},
			[]string{"Commit or stash the bundles first; evhash overwrites them without a backup."},
		)
	}

	return nil
}
