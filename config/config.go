// Package config loads the small persisted default turniptext's CLI reads:
// the two Parse options (recursion_warning, max_file_depth), which have no
// command-line flags, and the color mode, which --color overrides. It
// mirrors gomdlint's internal/configloader, scaled down to these three
// settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"turniptext.dev/go/turniptext"
)

// configFileNames are the project config file names searched for, in order
// of preference.
var configFileNames = []string{".turniptext.yml", ".turniptext.yaml"}

// vcsRootMarkers stop the upward search once a repository root is crossed.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// Config is the persisted default for a Parse call (§6): whether to warn on
// include-name reuse, the include-recursion ceiling, and whether the CLI's
// diagnostic rendering uses color.
type Config struct {
	RecursionWarning bool   `yaml:"recursion_warning"`
	MaxFileDepth     int    `yaml:"max_file_depth"`
	Color            string `yaml:"color"`
}

// Default returns the built-in defaults: RecursionWarning on,
// DefaultMaxFileDepth, and auto-detected color. Unlike a zero
// turniptext.ParseOptions, which leaves RecursionWarning off, the
// ParseOptions built from Default have the warning enabled.
func Default() *Config {
	return &Config{
		RecursionWarning: true,
		MaxFileDepth:     turniptext.DefaultMaxFileDepth,
		Color:            "auto",
	}
}

// ParseOptions adapts c into the options Parse expects.
func (c *Config) ParseOptions() turniptext.ParseOptions {
	return turniptext.ParseOptions{
		RecursionWarning: c.RecursionWarning,
		MaxFileDepth:     c.MaxFileDepth,
	}
}

// LoadOptions controls Load's search and precedence (§6).
type LoadOptions struct {
	// WorkingDir is the directory the upward project-config search starts
	// from. Defaults to the current working directory if empty.
	WorkingDir string
	// ExplicitPath is a config file given directly (e.g. --config), taking
	// precedence over project discovery.
	ExplicitPath string
	// IgnoreProjectConfig skips the upward search for a project config.
	IgnoreProjectConfig bool
	// CLI carries flag-sourced overrides, applied last so flags always win.
	CLI *Config
}

// Load resolves the final Config by merging, lowest precedence first:
// built-in defaults, a discovered or explicit project config file, then
// opts.CLI. It returns the path actually loaded, or "" if none was found.
func Load(opts LoadOptions) (*Config, string, error) {
	cfg := Default()

	path := opts.ExplicitPath
	if path == "" && !opts.IgnoreProjectConfig {
		workDir := opts.WorkingDir
		if workDir == "" {
			var err error
			workDir, err = os.Getwd()
			if err != nil {
				return nil, "", fmt.Errorf("config: get working directory: %w", err)
			}
		}
		found, err := discoverProjectConfig(workDir)
		if err != nil {
			return nil, "", err
		}
		path = found
	}

	if path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return nil, "", err
		}
		cfg = merge(cfg, fileCfg)
	}

	if opts.CLI != nil {
		cfg = merge(cfg, opts.CLI)
	}

	return cfg, path, nil
}

// loadFile reads and parses one YAML config file.
func loadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// merge combines two configs, with override taking precedence over base
// wherever override sets a non-zero value. Like gomdlint's merge, this
// means a false/0/"" in override can never unset a true/nonzero value set
// by base; a layer can only add settings, not retract them.
func merge(base, override *Config) *Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}
	result := *base
	if override.RecursionWarning {
		result.RecursionWarning = override.RecursionWarning
	}
	if override.MaxFileDepth != 0 {
		result.MaxFileDepth = override.MaxFileDepth
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	return &result
}

// discoverProjectConfig searches upward from startDir for one of
// configFileNames, stopping at a VCS root or the filesystem root. Returns
// "" if none is found.
func discoverProjectConfig(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("config: resolve absolute path: %w", err)
	}

	dir := absDir
	for {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, nil
			}
		}
		if isVCSRoot(dir) {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
