// Package config loads the application configuration file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/snip/internal/model"
)

// Config holds application configuration.
type Config struct {
	DataDir           string `yaml:"dataDir"`           // directory for the snippet database
	DefaultMode       string `yaml:"defaultMode"`       // chunking mode on startup
	FixedChunkLength  int    `yaml:"fixedChunkLength"`  // rune limit for fixed-length chunking
	UndoWindowSeconds int    `yaml:"undoWindowSeconds"` // how long a removal stays restorable
	LogLevel          string `yaml:"logLevel"`          // "debug" | "info" | "warn" | "error"
	LogFile           string `yaml:"logFile"`           // empty = logging disabled
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		DataDir:           "", // resolved to ~/.config/snip at load time
		DefaultMode:       string(model.ModeSentence),
		FixedChunkLength:  280,
		UndoWindowSeconds: 4,
		LogLevel:          "warn",
		LogFile:           "",
	}
}

// Load reads config from the YAML file.
// Creates the file with defaults if it doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := Default()
			applyDefaults(&config)
			// Non-fatal: return defaults even if save fails
			_ = Save(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	return &config, nil
}

// applyDefaults fills in zero-valued fields.
func applyDefaults(config *Config) {
	defaults := Default()
	if config.DataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			config.DataDir = filepath.Join(home, ".config", "snip")
		}
	}
	if !model.Mode(config.DefaultMode).IsValid() {
		config.DefaultMode = defaults.DefaultMode
	}
	if config.FixedChunkLength <= 0 {
		config.FixedChunkLength = defaults.FixedChunkLength
	}
	if config.UndoWindowSeconds <= 0 {
		config.UndoWindowSeconds = defaults.UndoWindowSeconds
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
}

// Save writes config to the YAML file.
// Creates the directory if it doesn't exist.
func Save(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DBPath returns the snippet database location inside the data dir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "snip.db")
}

// UndoWindow returns the undo expiry window as a duration.
func (c *Config) UndoWindow() time.Duration {
	return time.Duration(c.UndoWindowSeconds) * time.Second
}

// Mode returns the configured default chunking mode.
func (c *Config) Mode() model.Mode {
	return model.Mode(c.DefaultMode)
}

// DefaultFilePath returns the default config path: ~/.config/snip/config.yaml
func DefaultFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "snip", "config.yaml"), nil
}
