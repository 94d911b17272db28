// Package config loads and validates tangle configuration from a
// .tangle.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working
// directory when no explicit path is given.
const FileName = ".tangle.yaml"

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the complete tangle configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	History HistoryConfig `yaml:"history"`
	Batch   BatchConfig   `yaml:"batch"`
	Output  OutputConfig  `yaml:"output"`
}

// StoreConfig selects where completed sessions are kept.
type StoreConfig struct {
	// Backend is one of "file", "sqlite" or "memory".
	Backend string `yaml:"backend"`

	// Path is the backing file. Empty means a default under the
	// user's home directory.
	Path string `yaml:"path"`
}

// HistoryConfig controls session retention.
type HistoryConfig struct {
	// Retain is how many of the most recent sessions are kept.
	Retain int `yaml:"retain"`
}

// BatchConfig controls concurrent evaluation.
type BatchConfig struct {
	// Workers bounds the number of files evaluated at once.
	Workers int `yaml:"workers"`
}

// OutputConfig sets report defaults.
type OutputConfig struct {
	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Store:   StoreConfig{Backend: BackendFile},
		History: HistoryConfig{Retain: 10},
		Batch:   BatchConfig{Workers: 4},
		Output:  OutputConfig{Format: "text"},
	}
}

// Load reads the configuration at path, layered over the defaults.
// An empty path looks for FileName in the working directory; a
// missing default file is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("invalid store backend %q: must be 'file', 'sqlite', or 'memory'",
			c.Store.Backend)
	}
	if c.History.Retain < 1 {
		return fmt.Errorf("invalid history retain %d: must be at least 1", c.History.Retain)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("invalid batch workers %d: must be at least 1", c.Batch.Workers)
	}
	if c.Output.Format != "text" && c.Output.Format != "json" {
		return fmt.Errorf("invalid output format %q: must be 'text' or 'json'", c.Output.Format)
	}
	return nil
}

// StorePath returns the configured store path, or the default
// location for the backend under ~/.tangle.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	name := "sessions.json"
	if c.Store.Backend == BackendSQLite {
		name = "sessions.db"
	}
	return filepath.Join(home, ".tangle", name), nil
}
