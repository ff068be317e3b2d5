// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all addressbook configuration.
type Config struct {
	Display Display `yaml:"display"`
	Shell   Shell   `yaml:"shell"`
}

// Display holds output settings.
type Display struct {
	Format string `yaml:"format"` // "plain" | "table"
	NoTUI  bool   `yaml:"no_tui"` // Force plain output for browse
}

// Shell holds interactive shell settings.
type Shell struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"` // Empty disables history
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Display: Display{
			Format: "plain",
		},
		Shell: Shell{
			Prompt: "addressbook> ",
		},
	}
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing, empty and comment-only files
// are skipped, leaving defaults in place. Invalid YAML or unknown fields
// return an error.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch c.Display.Format {
	case "plain", "table":
		// valid
	default:
		return fmt.Errorf("config: display.format must be \"plain\" or \"table\", got %q", c.Display.Format)
	}
	if c.Shell.Prompt == "" {
		return errors.New("config: shell.prompt cannot be empty")
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ADDRESSBOOK_FORMAT, ADDRESSBOOK_NO_TUI, ADDRESSBOOK_PROMPT.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ADDRESSBOOK_FORMAT"); v != "" {
		c.Display.Format = v
	}
	if v := os.Getenv("ADDRESSBOOK_NO_TUI"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid ADDRESSBOOK_NO_TUI %q: %w", v, err)
		}
		c.Display.NoTUI = b
	}
	if v := os.Getenv("ADDRESSBOOK_PROMPT"); v != "" {
		c.Shell.Prompt = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Display *rawDisplay `yaml:"display"`
	Shell   *rawShell   `yaml:"shell"`
}

type rawDisplay struct {
	Format *string `yaml:"format"`
	NoTUI  *bool   `yaml:"no_tui"`
}

type rawShell struct {
	Prompt      *string `yaml:"prompt"`
	HistoryFile *string `yaml:"history_file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Display != nil {
		if layer.Display.Format != nil {
			c.Display.Format = *layer.Display.Format
		}
		if layer.Display.NoTUI != nil {
			c.Display.NoTUI = *layer.Display.NoTUI
		}
	}
	if layer.Shell != nil {
		if layer.Shell.Prompt != nil {
			c.Shell.Prompt = *layer.Shell.Prompt
		}
		if layer.Shell.HistoryFile != nil {
			c.Shell.HistoryFile = *layer.Shell.HistoryFile
		}
	}
}
