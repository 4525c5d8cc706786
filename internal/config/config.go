// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings mirrors the extension's configuration surface for sessions
// where the gsettings schema is not installed.
type Settings struct {
	LoggingEnabled      bool   `toml:"logging-enabled"`
	SortFolderContents  bool   `toml:"sort-folder-contents"`
	FolderOrderPosition string `toml:"folder-order-position"`
}

// Default returns the documented default settings.
func Default() Settings {
	return Settings{
		LoggingEnabled:      false,
		SortFolderContents:  false,
		FolderOrderPosition: "default",
	}
}

// Load reads the settings file at path. A missing file yields the
// defaults, not an error.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	if err != nil {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}

	settings := Default()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse config: %w", err)
	}

	return settings, nil
}

// Save writes the settings file at path, creating parent directories.
func Save(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
