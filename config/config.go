// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: The multiplexer configuration shape (§6 "Configuration shape")
// and its TOML load/save.

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// StatusBarConfig is the `multiplexer.status_bar` table. Enabled collapses
// the spec's `multiplexer.status_bar: bool` flag and the
// `multiplexer.status_bar.*` format fields into one nested TOML table,
// which the bare bool/table split in §6 cannot represent directly.
type StatusBarConfig struct {
	Enabled      bool   `toml:"enabled"`
	FormatLeft   string `toml:"format_left"`
	FormatCenter string `toml:"format_center"`
	FormatRight  string `toml:"format_right"`
	FG           string `toml:"fg"`
	BG           string `toml:"bg"`
}

// MultiplexerConfig is the `multiplexer` table (§6).
type MultiplexerConfig struct {
	Enabled         bool              `toml:"enabled"`
	LeaderKeys      []string          `toml:"leader_keys"`
	LeaderTimeoutMs int               `toml:"leader_timeout_ms"`
	Keybindings     map[string]string `toml:"keybindings"`
	StatusBar       StatusBarConfig   `toml:"status_bar"`
}

// Config is the root of the TOML document the core consumes.
type Config struct {
	Multiplexer MultiplexerConfig `toml:"multiplexer"`
}

// Default returns the configuration with every field set to the defaults
// documented in §6.
func Default() *Config {
	return &Config{
		Multiplexer: MultiplexerConfig{
			Enabled:         false,
			LeaderKeys:      []string{"Control-Space", "Control-b"},
			LeaderTimeoutMs: 1000,
			Keybindings:     defaultKeybindings(),
			StatusBar: StatusBarConfig{
				Enabled:      true,
				FormatLeft:   "{session}",
				FormatCenter: "{windows}",
				FormatRight:  "{time}",
				FG:           "default",
				BG:           "default",
			},
		},
	}
}

// applyDefaults fills zero-valued fields of cfg from Default(), never
// overwriting a value the file actually set (mirrors
// config/defaults.go's RegisterDefaults in the teacher's own store).
func applyDefaults(cfg *Config) {
	def := Default()
	m := &cfg.Multiplexer
	dm := def.Multiplexer

	if m.LeaderKeys == nil {
		m.LeaderKeys = dm.LeaderKeys
	}
	if m.LeaderTimeoutMs == 0 {
		m.LeaderTimeoutMs = dm.LeaderTimeoutMs
	}
	if m.Keybindings == nil {
		m.Keybindings = dm.Keybindings
	} else {
		for action, combo := range dm.Keybindings {
			if _, ok := m.Keybindings[action]; !ok {
				m.Keybindings[action] = combo
			}
		}
	}
	if m.StatusBar.FormatLeft == "" && m.StatusBar.FormatCenter == "" && m.StatusBar.FormatRight == "" {
		m.StatusBar.FormatLeft = dm.StatusBar.FormatLeft
		m.StatusBar.FormatCenter = dm.StatusBar.FormatCenter
		m.StatusBar.FormatRight = dm.StatusBar.FormatRight
	}
	if m.StatusBar.FG == "" {
		m.StatusBar.FG = dm.StatusBar.FG
	}
	if m.StatusBar.BG == "" {
		m.StatusBar.BG = dm.StatusBar.BG
	}
}

// Load reads the TOML config file at path, applying defaults for any
// field the file leaves unset. A missing file is not an error: Load
// returns Default().
func Load(path string) (*Config, error) {
	// status_bar.enabled defaults to true, and an unset bool decodes the
	// same as false, so it is preset here; the decoder only overwrites
	// keys the file actually contains.
	cfg := &Config{Multiplexer: MultiplexerConfig{StatusBar: StatusBarConfig{Enabled: true}}}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			log.Printf("config: no config file at %s, using defaults", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	applyDefaults(cfg)
	log.Printf("config: loaded from %s", path)
	return cfg, nil
}

// Save writes cfg as TOML to path, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	log.Printf("config: saved to %s", path)
	return nil
}
