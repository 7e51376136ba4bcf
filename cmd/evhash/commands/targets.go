package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dyluth/evhash/internal/config"
	"github.com/dyluth/evhash/internal/locate"
	"github.com/dyluth/evhash/internal/pipeline"
	"github.com/dyluth/evhash/internal/printer"
)

var (
	configPath     string
	clientPath     string
	serverPath     string
	embeddedPath   string
	embeddedDir    string
	embeddedPrefix string
	embeddedSuffix string
)

func addTargetFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Config file (default: ./evhash.yml if present)")
	flags.StringVar(&clientPath, "client", "", "Client bundle path (overrides config)")
	flags.StringVar(&serverPath, "server", "", "Server bundle path (overrides config)")
	flags.StringVar(&embeddedPath, "embedded", "", "Embedded-browser bundle path (overrides config)")
	flags.StringVar(&embeddedDir, "embedded-dir", "", "Directory to scan for the embedded-browser bundle (overrides config)")
	flags.StringVar(&embeddedPrefix, "embedded-prefix", "", "File name prefix for --embedded-dir (default: index-)")
	flags.StringVar(&embeddedSuffix, "embedded-suffix", "", "File name suffix for --embedded-dir (default: .js)")
}

// loadConfig merges the config file, if any, with command-line overrides.
// An explicit --config must exist; the implicit ./evhash.yml is optional.
func loadConfig() (*config.EvhashConfig, error) {
	path := configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultFile
	}

	var cfg *config.EvhashConfig
	if _, statErr := os.Stat(path); statErr == nil || explicit {
		var err error
		cfg, err = config.Read(path)
		if err != nil {
			return nil, printer.Error(
				"failed to load configuration",
				err.Error(),
				[]string{fmt.Sprintf("Fix %s, or run 'evhash init --force' to start over", path)},
			)
		}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		cfg = &config.EvhashConfig{Version: "1.0", BaseDir: wd}
	}

	if err := applyOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, printer.Error(
			"invalid configuration",
			err.Error(),
			[]string{
				"Create a config file:\n  evhash init",
				"Name all three bundles on the command line:\n  evhash run --client c.js --server s.js --embedded-dir assets",
			},
		)
	}

	return cfg, nil
}

// applyOverrides copies target flags into cfg. Flag paths are relative to
// the working directory, so they are made absolute before BaseDir applies.
// Prefix and suffix flags are rejected for a fixed embedded path.
func applyOverrides(cfg *config.EvhashConfig) error {
	abs := func(p string) (string, error) {
		if p == "" {
			return "", nil
		}
		a, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		return a, nil
	}

	if clientPath != "" {
		p, err := abs(clientPath)
		if err != nil {
			return err
		}
		cfg.Targets.Client = config.TargetConfig{Path: p}
	}
	if serverPath != "" {
		p, err := abs(serverPath)
		if err != nil {
			return err
		}
		cfg.Targets.Server = config.TargetConfig{Path: p}
	}
	if embeddedPath != "" {
		p, err := abs(embeddedPath)
		if err != nil {
			return err
		}
		cfg.Targets.Embedded = config.TargetConfig{Path: p}
	} else if embeddedDir != "" {
		d, err := abs(embeddedDir)
		if err != nil {
			return err
		}
		cfg.Targets.Embedded = config.TargetConfig{Dir: d}
	}
	if embeddedPrefix != "" || embeddedSuffix != "" {
		if !cfg.Targets.Embedded.Target().IsScan() {
			return printer.Error(
				"invalid command-line targets",
				"--embedded-prefix and --embedded-suffix only apply when the embedded bundle is found by directory scan.",
				[]string{"Pass --embedded-dir instead of --embedded, or drop the prefix and suffix flags"},
			)
		}
		if embeddedPrefix != "" {
			cfg.Targets.Embedded.Prefix = embeddedPrefix
		}
		if embeddedSuffix != "" {
			cfg.Targets.Embedded.Suffix = embeddedSuffix
		}
	}

	return nil
}

// resolveSources turns the validated targets into concrete file paths.
// A directory scan with no match is fatal.
func resolveSources(cfg *config.EvhashConfig) (pipeline.Sources, error) {
	paths := make([]string, len(config.TargetNames))
	for i, name := range config.TargetNames {
		target := cfg.Targets.Get(name)
		path, err := locate.Resolve(target.Target(), cfg.BaseDir)
		if err != nil {
			if errors.Is(err, locate.ErrNoMatch) {
				return pipeline.Sources{}, printer.ErrorWithContext(
					fmt.Sprintf("%s bundle not found", name),
					"No file in the target directory matches the configured name pattern.",
					map[string]string{
						"Directory": target.Dir,
						"Pattern":   target.Prefix + "*" + target.Suffix,
					},
					[]string{"Build the bundle first, or adjust targets." + name + " in evhash.yml"},
				)
			}
			return pipeline.Sources{}, fmt.Errorf("failed to locate %s bundle: %w", name, err)
		}
		paths[i] = path
	}

	return pipeline.Sources{Client: paths[0], Server: paths[1], Embedded: paths[2]}, nil
}
