package commands

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/dyluth/evhash/internal/printer"
)

var (
	version string
	commit  string
	date    string

	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "evhash",
	Short: "evhash - event name obfuscation for generated JavaScript bundles",
	Long: `evhash replaces "client:*" and "server:*" event names in the client,
server and embedded-browser bundles with deterministic SHA-256 pseudonyms.

Every bundle is rewritten with the same table, so the three sides still agree
on each event's wire name while the semantic names disappear from shipped code.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// Errors already printed by the printer package are returned as is; anything
// else, such as a flag parsing error, is printed here.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !printer.Reported(err) {
		return printer.Error(err.Error(), "", []string{"Run 'evhash --help' for usage"})
	}
	return err
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// configureLogging routes pipeline logs to stderr only in verbose mode
func configureLogging(verbose bool) {
	log.SetFlags(0)
	if verbose {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(io.Discard)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline progress to stderr")
	addTargetFlags(rootCmd)
}
