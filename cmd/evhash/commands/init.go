package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dyluth/evhash/internal/printer"
	"github.com/dyluth/evhash/internal/scaffold"
)

var (
	forceInit bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default evhash.yml",
	Long: `Create a default evhash.yml in the current directory.

The file names the client, server and embedded-browser bundles. Edit the
targets to match your build output before running 'evhash run'.

Use --force to overwrite an existing evhash.yml.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing evhash.yml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	if forceInit {
		printer.Warning("Overwriting any existing evhash.yml...\n")
	}

	if _, err := scaffold.Initialize(wd, forceInit); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	scaffold.PrintSuccess(printer.Stdout())

	return nil
}
