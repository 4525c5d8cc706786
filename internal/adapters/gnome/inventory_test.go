// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package gnome_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/janderssonse/ordna/internal/adapters/gnome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDesktopEntry(t *testing.T, dir, id, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, id), []byte(body), 0o644))
}

func TestInventory_InstalledApps(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDesktopEntry(t, dir, "org.gnome.Maps.desktop", "[Desktop Entry]\nName=Maps\nExec=maps\n")
	writeDesktopEntry(t, dir, "hidden.desktop", "[Desktop Entry]\nName=Hidden\nNoDisplay=true\n")
	writeDesktopEntry(t, dir, "notes.txt", "not a desktop entry")

	inventory := gnome.NewInventoryWithDirs([]string{dir})

	apps, err := inventory.InstalledApps(context.Background())
	require.NoError(t, err)

	require.Len(t, apps, 1)
	assert.Equal(t, "org.gnome.Maps.desktop", apps[0].ID)
	assert.Equal(t, "Maps", apps[0].DisplayName)
}

func TestInventory_DisplayName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDesktopEntry(t, dir, "org.gnome.Boxes.desktop", "[Desktop Entry]\nName=Boxes\n")

	inventory := gnome.NewInventoryWithDirs([]string{dir})

	assert.Equal(t, "Boxes", inventory.DisplayName(context.Background(), "org.gnome.Boxes.desktop"))
	assert.Empty(t, inventory.DisplayName(context.Background(), "missing.desktop"))
}

func TestInventory_EarlierDirTakesPrecedence(t *testing.T) {
	t.Parallel()

	userDir := t.TempDir()
	systemDir := t.TempDir()
	writeDesktopEntry(t, userDir, "editor.desktop", "[Desktop Entry]\nName=My Editor\n")
	writeDesktopEntry(t, systemDir, "editor.desktop", "[Desktop Entry]\nName=Editor\n")

	inventory := gnome.NewInventoryWithDirs([]string{userDir, systemDir})

	assert.Equal(t, "My Editor", inventory.DisplayName(context.Background(), "editor.desktop"))
}

func TestNewInventory_ScansXDGDataHome(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_DATA_DIRS", filepath.Join(t.TempDir(), "absent"))

	appsDir := filepath.Join(dataHome, "applications")
	require.NoError(t, os.MkdirAll(appsDir, 0o755))
	writeDesktopEntry(t, appsDir, "org.gnome.Weather.desktop", "[Desktop Entry]\nName=Weather\n")

	inventory := gnome.NewInventory()

	assert.Equal(t, "Weather", inventory.DisplayName(context.Background(), "org.gnome.Weather.desktop"))
}

func TestInventory_NameOutsideDesktopEntryGroupIgnored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDesktopEntry(t, dir, "multi.desktop",
		"[Desktop Entry]\nName=Real Name\n[Desktop Action new]\nName=Action Name\n")

	inventory := gnome.NewInventoryWithDirs([]string{dir})

	assert.Equal(t, "Real Name", inventory.DisplayName(context.Background(), "multi.desktop"))
}
