// Package config loads editor settings from a TOML file, merged over
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the editor settings.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	History HistoryConfig `toml:"history"`
}

// EditorConfig holds view and editing settings.
type EditorConfig struct {
	TabWidth     int `toml:"tab_width"`
	ScrollMargin int `toml:"scroll_margin"`
	PageLines    int `toml:"page_lines"`
}

// HistoryConfig holds undo settings.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:     4,
			ScrollMargin: 0,
			PageLines:    20,
		},
		History: HistoryConfig{
			MaxEntries: 1000,
		},
	}
}

// ConfigDir returns the directory holding loom's config files:
// $LOOM_CONFIG_HOME, else $XDG_CONFIG_HOME/loom, else ~/.config/loom.
func ConfigDir() string {
	if dir := os.Getenv("LOOM_CONFIG_HOME"); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "loom")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "loom")
}

// Load reads config.toml from the config directory over the defaults.
// A missing file is not an error; a malformed one is.
func Load() (*Config, error) {
	return loadFile(filepath.Join(ConfigDir(), "config.toml"))
}

func loadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.sanitize()
	return cfg, nil
}

// sanitize clamps nonsense values back to defaults.
func (c *Config) sanitize() {
	d := Default()
	if c.Editor.TabWidth < 1 {
		c.Editor.TabWidth = d.Editor.TabWidth
	}
	if c.Editor.ScrollMargin < 0 {
		c.Editor.ScrollMargin = d.Editor.ScrollMargin
	}
	if c.Editor.PageLines < 1 {
		c.Editor.PageLines = d.Editor.PageLines
	}
	if c.History.MaxEntries < 1 {
		c.History.MaxEntries = d.History.MaxEntries
	}
}
