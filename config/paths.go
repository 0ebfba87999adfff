// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for mux configuration and data files (§6
// "Filesystem layout").

package config

import (
	"os"
	"path/filepath"
)

const appName = "texelation"

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}

// ConfigPath returns the default path of the mux TOML config file.
func ConfigPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "mux.toml"), nil
}

func dataRoot() (string, error) {
	if dir, ok := os.LookupEnv("XDG_DATA_HOME"); ok && dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// SessionsDir returns <data_dir>/sessions, creating it if absent.
func SessionsDir() (string, error) {
	return dataSubdir("sessions")
}

// SocketsDir returns <data_dir>/sockets, creating it if absent.
func SocketsDir() (string, error) {
	return dataSubdir("sockets")
}

func dataSubdir(name string) (string, error) {
	root, err := dataRoot()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// SessionFilePath returns the path a session named name is persisted to.
func SessionFilePath(name string) (string, error) {
	dir, err := SessionsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".json"), nil
}

// SocketPath returns the path of the listening socket for session name.
func SocketPath(name string) (string, error) {
	dir, err := SocketsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".sock"), nil
}
