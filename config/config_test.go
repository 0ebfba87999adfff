// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Multiplexer.Enabled {
		t.Errorf("Enabled should default to false")
	}
	if cfg.Multiplexer.LeaderTimeoutMs != 1000 {
		t.Errorf("LeaderTimeoutMs = %d, want 1000", cfg.Multiplexer.LeaderTimeoutMs)
	}
	if len(cfg.Multiplexer.LeaderKeys) != 2 {
		t.Errorf("expected 2 default leader keys, got %d", len(cfg.Multiplexer.LeaderKeys))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mux.toml")

	cfg := Default()
	cfg.Multiplexer.Enabled = true
	cfg.Multiplexer.LeaderTimeoutMs = 1500

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Multiplexer.Enabled {
		t.Errorf("Enabled not persisted")
	}
	if loaded.Multiplexer.LeaderTimeoutMs != 1500 {
		t.Errorf("LeaderTimeoutMs = %d, want 1500", loaded.Multiplexer.LeaderTimeoutMs)
	}
}

func TestLoadAppliesDefaultsWithoutOverwritingSetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mux.toml")
	data := "[multiplexer]\nenabled = true\nleader_timeout_ms = 250\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Multiplexer.LeaderTimeoutMs != 250 {
		t.Errorf("LeaderTimeoutMs = %d, want 250 (explicit value must survive)", cfg.Multiplexer.LeaderTimeoutMs)
	}
	if len(cfg.Multiplexer.LeaderKeys) != 2 {
		t.Errorf("expected default leader keys to be filled in, got %v", cfg.Multiplexer.LeaderKeys)
	}
	if cfg.Multiplexer.StatusBar.FormatLeft != "{session}" {
		t.Errorf("expected default status bar format to be filled in, got %q", cfg.Multiplexer.StatusBar.FormatLeft)
	}
}

func TestBuildMachineResolvesConfiguredBindings(t *testing.T) {
	cfg := Default()
	m, err := BuildMachine(cfg)
	if err != nil {
		t.Fatalf("BuildMachine: %v", err)
	}
	if m == nil {
		t.Fatalf("expected a non-nil machine")
	}
}
