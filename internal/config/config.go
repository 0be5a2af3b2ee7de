// Package config handles Magpie configuration: the vault location and the
// alias sync settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/emcrae/magpie/internal/pattern"
)

// Defaults for the sync settings.
const (
	DefaultFilePattern = `[0-9]{4}-[0-9]{2}-[0-9]{2}`
	DefaultDebounceMs  = 1000

	// The debounce window is clamped to this range.
	MinDebounceMs = 1000
	MaxDebounceMs = 5000
)

// Sync holds the alias sync settings.
type Sync struct {
	// FilePattern is a regular expression matched against the full base name
	// of a note (no extension). Only matching notes are scanned.
	FilePattern string `toml:"file_pattern"`

	// ShowNotice controls the per-batch summary notice after a sync run.
	ShowNotice bool `toml:"show_notice"`

	// DebounceMs is the quiet period after a modify event before a sync runs.
	DebounceMs int `toml:"debounce_ms"`
}

// Config represents the persisted Magpie configuration.
type Config struct {
	// Vault is the path to the vault root.
	Vault string `toml:"vault"`

	Sync Sync `toml:"sync"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Sync: Sync{
			FilePattern: DefaultFilePattern,
			ShowNotice:  true,
			DebounceMs:  DefaultDebounceMs,
		},
	}
}

// Debounce returns the configured debounce window as a duration.
func (s Sync) Debounce() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// Normalize clamps out-of-range values and replaces unusable ones with
// defaults. It returns one human-readable warning per correction.
func (c *Config) Normalize() []string {
	var warnings []string

	if strings.TrimSpace(c.Sync.FilePattern) == "" {
		c.Sync.FilePattern = DefaultFilePattern
	} else if _, err := pattern.Compile(c.Sync.FilePattern); err != nil {
		warnings = append(warnings, fmt.Sprintf("%v; using default %q", err, DefaultFilePattern))
		c.Sync.FilePattern = DefaultFilePattern
	}

	if c.Sync.DebounceMs < MinDebounceMs {
		if c.Sync.DebounceMs != 0 {
			warnings = append(warnings, fmt.Sprintf("debounce_ms %d below minimum, using %d", c.Sync.DebounceMs, MinDebounceMs))
		}
		c.Sync.DebounceMs = MinDebounceMs
	} else if c.Sync.DebounceMs > MaxDebounceMs {
		warnings = append(warnings, fmt.Sprintf("debounce_ms %d above maximum, using %d", c.Sync.DebounceMs, MaxDebounceMs))
		c.Sync.DebounceMs = MaxDebounceMs
	}

	return warnings
}

// Set applies a settings mutation by key, validating the value. Supported
// keys: file_pattern, show_notice, debounce_ms, vault.
func (c *Config) Set(key, value string) error {
	switch key {
	case "file_pattern":
		if _, err := pattern.Compile(value); err != nil {
			return err
		}
		c.Sync.FilePattern = value
	case "show_notice":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("show_notice must be true or false, got %q", value)
		}
		c.Sync.ShowNotice = v
	case "debounce_ms":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("debounce_ms must be an integer, got %q", value)
		}
		if v < MinDebounceMs {
			v = MinDebounceMs
		}
		if v > MaxDebounceMs {
			v = MaxDebounceMs
		}
		c.Sync.DebounceMs = v
	case "vault":
		c.Vault = value
	default:
		return fmt.Errorf("unknown setting '%s' (expected file_pattern, show_notice, debounce_ms, or vault)", key)
	}
	return nil
}

// Load loads the configuration from the default location, merged over
// defaults. A missing file yields the defaults.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads the configuration from a specific path, merged over
// defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/magpie/config.toml first (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "magpie", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "magpie", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}
