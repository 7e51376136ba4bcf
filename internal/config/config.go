package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dyluth/evhash/internal/locate"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "evhash.yml"

// Defaults for directory-scanned targets.
const (
	DefaultPrefix = "index-"
	DefaultSuffix = ".js"
)

// EvhashConfig represents the top-level evhash.yml configuration
type EvhashConfig struct {
	Version string        `yaml:"version"`
	Targets TargetsConfig `yaml:"targets"`
	Git     *GitConfig    `yaml:"git,omitempty"`
	Report  *ReportConfig `yaml:"report,omitempty"`

	// BaseDir is the directory relative target paths are resolved against.
	// Set by Load to the config file's directory.
	BaseDir string `yaml:"-"`
}

// TargetsConfig names the three bundles
type TargetsConfig struct {
	Client   TargetConfig `yaml:"client"`
	Server   TargetConfig `yaml:"server"`
	Embedded TargetConfig `yaml:"embedded"`
}

// TargetConfig locates one bundle, by fixed path or by directory scan
type TargetConfig struct {
	Path   string `yaml:"path,omitempty"`
	Dir    string `yaml:"dir,omitempty"`
	Prefix string `yaml:"prefix,omitempty"`
	Suffix string `yaml:"suffix,omitempty"`
}

// GitConfig controls the pre-write Git safety check
type GitConfig struct {
	RequireClean bool `yaml:"require_clean"`
}

// ReportConfig controls the optional mapping manifest
type ReportConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Validate performs strict validation on the configuration and fills defaults
func (c *EvhashConfig) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	for _, name := range TargetNames {
		if err := c.Targets.Get(name).Validate(name); err != nil {
			return err
		}
	}

	if c.Git == nil {
		c.Git = &GitConfig{}
	}
	if c.Report == nil {
		c.Report = &ReportConfig{}
	}

	return nil
}

// Validate checks a single target and applies scan defaults
func (t *TargetConfig) Validate(name string) error {
	hasPath := t.Path != ""
	hasDir := t.Dir != ""

	if !hasPath && !hasDir {
		return fmt.Errorf("target '%s': either path or dir is required", name)
	}
	if hasPath && hasDir {
		return fmt.Errorf("target '%s': path and dir are mutually exclusive", name)
	}

	if hasPath && (t.Prefix != "" || t.Suffix != "") {
		return fmt.Errorf("target '%s': prefix and suffix only apply to dir targets", name)
	}

	if hasDir {
		if t.Prefix == "" {
			t.Prefix = DefaultPrefix
		}
		if t.Suffix == "" {
			t.Suffix = DefaultSuffix
		}
	}

	return nil
}

// Target converts the config into a locate.Target
func (t TargetConfig) Target() locate.Target {
	return locate.Target{
		Path:   t.Path,
		Dir:    t.Dir,
		Prefix: t.Prefix,
		Suffix: t.Suffix,
	}
}

// TargetNames lists the bundles in processing order.
var TargetNames = []string{"client", "server", "embedded"}

// Get returns the named target, or nil for an unknown name
func (t *TargetsConfig) Get(name string) *TargetConfig {
	switch name {
	case "client":
		return &t.Client
	case "server":
		return &t.Server
	case "embedded":
		return &t.Embedded
	}
	return nil
}

// Read reads and parses evhash.yml without validating it, so callers can
// apply overrides first
func Read(path string) (*EvhashConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config EvhashConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	config.BaseDir = filepath.Dir(absPath)

	return &config, nil
}

// Load reads and validates evhash.yml from the specified path
func Load(path string) (*EvhashConfig, error) {
	config, err := Read(path)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}
