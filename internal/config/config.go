// Package config loads the optional YAML configuration file. Precedence is
// resolved by the CLI: flags beat the repo-local file, which beats the
// global one.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for agentlock.
// Pointer fields distinguish "unset" from zero values.
type FileConfig struct {
	Include     *string `yaml:"include"`
	Exclude     *string `yaml:"exclude"`
	MaxBytes    *int64  `yaml:"max_bytes"`
	MaxFiles    *int    `yaml:"max_files"`
	NoColor     *bool   `yaml:"no_color"`
	NoCache     *bool   `yaml:"no_cache"`
	Ruleset     *string `yaml:"ruleset"`      // path to a custom YAML ruleset
	IgnoreDirs  []string `yaml:"ignore_dirs"`  // overrides built-in ignored directory names
	IgnoreFiles []string `yaml:"ignore_files"` // overrides built-in ignored file names
	Policy      *string `yaml:"policy"`       // egress policy path for the proxy
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root. It
// supports .agentlock.yml/.yaml and agentlock.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".agentlock.yml", ".agentlock.yaml", "agentlock.yml", "agentlock.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or
// ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "agentlock", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
