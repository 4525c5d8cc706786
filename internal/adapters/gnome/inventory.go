// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package gnome

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/janderssonse/ordna/internal/config"
	"github.com/janderssonse/ordna/internal/domain"
)

// installedPollInterval is how often the inventory re-scans the desktop
// entry directories to detect installs and removals.
const installedPollInterval = 2 * time.Second

// Inventory implements the app-inventory port by scanning desktop entry
// files in the XDG application directories, the same entries the shell's
// own app system indexes.
type Inventory struct {
	dirs []string

	mu       sync.Mutex
	cache    map[string]string
	handlers []func()
	watching bool
	stop     chan struct{}
}

// NewInventory creates an inventory over the standard XDG application
// directories.
func NewInventory() *Inventory {
	return NewInventoryWithDirs(applicationDirs())
}

// NewInventoryWithDirs creates an inventory over explicit directories,
// used by tests.
func NewInventoryWithDirs(dirs []string) *Inventory {
	return &Inventory{dirs: dirs}
}

// applicationDirs lists the desktop-entry directories in XDG precedence
// order.
func applicationDirs() []string {
	dirs := make([]string, 0, 4)

	if dataHome := config.GetXDGDataHome(); dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}

	for _, dir := range strings.Split(dataDirs, ":") {
		if dir != "" {
			dirs = append(dirs, filepath.Join(dir, "applications"))
		}
	}

	return dirs
}

// scan builds the app id to display name map from the desktop entries.
// Earlier directories take XDG precedence, and entries marked NoDisplay
// or Hidden are skipped the way the shell skips them.
func (inv *Inventory) scan() map[string]string {
	apps := make(map[string]string)

	for _, dir := range inv.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".desktop") {
				continue
			}

			if _, seen := apps[entry.Name()]; seen {
				continue
			}

			name, visible := parseDesktopEntry(filepath.Join(dir, entry.Name()))
			if visible {
				apps[entry.Name()] = name
			}
		}
	}

	return apps
}

// parseDesktopEntry extracts the Name key of a desktop entry and whether
// the entry is visible in the grid.
func parseDesktopEntry(path string) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	var name string

	visible := true
	inDesktopGroup := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "[Desktop Entry]":
			inDesktopGroup = true
		case strings.HasPrefix(line, "["):
			inDesktopGroup = false
		case !inDesktopGroup:
			// Keys outside the main group don't matter here.
		case strings.HasPrefix(line, "Name="):
			if name == "" {
				name = strings.TrimPrefix(line, "Name=")
			}
		case line == "NoDisplay=true" || line == "Hidden=true":
			visible = false
		}
	}

	return name, visible
}

// InstalledApps lists installed applications as grid items.
func (inv *Inventory) InstalledApps(_ context.Context) ([]domain.GridItem, error) {
	apps := inv.snapshot()

	items := make([]domain.GridItem, 0, len(apps))
	for id, name := range apps {
		items = append(items, domain.GridItem{ID: id, Kind: domain.KindApp, DisplayName: name})
	}

	return items, nil
}

// DisplayName resolves an app id to its display name, or "" when the app
// is unknown.
func (inv *Inventory) DisplayName(_ context.Context, appID string) string {
	return inv.snapshot()[appID]
}

// snapshot returns the cached scan, performing the initial scan lazily.
func (inv *Inventory) snapshot() map[string]string {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.cache == nil {
		inv.cache = inv.scan()
	}

	return inv.cache
}

// SubscribeInstalledChanged starts the poll loop on first use and fires
// handler whenever the installed app set changes.
func (inv *Inventory) SubscribeInstalledChanged(handler func()) (domain.Unsubscribe, error) {
	inv.mu.Lock()

	inv.handlers = append(inv.handlers, handler)
	index := len(inv.handlers) - 1

	if !inv.watching {
		inv.watching = true
		inv.stop = make(chan struct{})

		go inv.watch(inv.stop)
	}
	inv.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			inv.mu.Lock()
			defer inv.mu.Unlock()
			inv.handlers[index] = nil
		})
	}, nil
}

// watch polls the desktop entry directories until Close.
func (inv *Inventory) watch(stop chan struct{}) {
	ticker := time.NewTicker(installedPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			inv.rescan()
		}
	}
}

// rescan re-reads the directories and notifies on changes.
func (inv *Inventory) rescan() {
	fresh := inv.scan()

	inv.mu.Lock()
	changed := !sameAppSet(inv.cache, fresh)
	inv.cache = fresh

	var handlers []func()

	if changed {
		handlers = slices.Clone(inv.handlers)
	}
	inv.mu.Unlock()

	for _, handler := range handlers {
		if handler != nil {
			handler()
		}
	}
}

func sameAppSet(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}

	for id, name := range a {
		if other, ok := b[id]; !ok || other != name {
			return false
		}
	}

	return true
}

// Close stops the poll loop.
func (inv *Inventory) Close() {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.watching {
		close(inv.stop)
		inv.watching = false
	}
}
