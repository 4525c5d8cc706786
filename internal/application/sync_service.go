// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

// Package application wires the ordering rules to the shell through
// hexagonal ports.
package application

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/janderssonse/ordna/internal/console"
	"github.com/janderssonse/ordna/internal/domain"
	"github.com/janderssonse/ordna/internal/overrides"
)

// Settings keys observed or read by the sync service.
const (
	// KeyAppPickerLayout is the shell key holding the drag-and-drop grid
	// layout.
	KeyAppPickerLayout = "app-picker-layout"
	// KeyFavoriteApps is the shell key holding the dash favorites.
	KeyFavoriteApps = "favorite-apps"
	// KeyFolderChildren is the app-folders key listing folder ids.
	KeyFolderChildren = "folder-children"
	// KeyLoggingEnabled toggles diagnostic output.
	KeyLoggingEnabled = "logging-enabled"
	// KeySortFolderContents toggles alphabetical folder contents.
	KeySortFolderContents = "sort-folder-contents"
	// KeyFolderOrderPosition selects where folders land relative to apps.
	KeyFolderOrderPosition = "folder-order-position"
)

// DefaultDebounce is the delay between a reorder trigger and the grid
// redisplay, long enough for bursts of change events to coalesce.
const DefaultDebounce = 100 * time.Millisecond

// ShellPorts bundles the host collaborators the sync service drives.
type ShellPorts struct {
	Grid              domain.GridDisplay
	Overview          domain.Overview
	Inventory         domain.AppInventory
	Folders           domain.FolderStore
	ShellSettings     domain.SettingsStore
	ExtensionSettings domain.SettingsStore
}

// subscription tags a teardown function with its source for diagnostics.
type subscription struct {
	source string
	cancel domain.Unsubscribe
}

// SyncService keeps the app grid order synchronized with the app set,
// favorites, folders and drag layout. It is a two-state machine: idle, or
// reordering. A trigger while a reorder is in flight is dropped, not
// queued, so bursts of change events collapse into a single redisplay.
type SyncService struct {
	ports    ShellPorts
	registry *overrides.Registry
	output   *console.OutputState
	debounce time.Duration

	mu      sync.Mutex
	enabled bool
	busy    bool
	pending *time.Timer
	subs    []subscription
	cancel  context.CancelFunc

	// runCtx holds the context.Context for the current enable span. It
	// is read lock-free by the patched comparator, which runs inside the
	// host's rebuild while the service mutex may be held elsewhere.
	runCtx atomic.Value
}

// NewSyncService creates a sync service over the given host ports.
func NewSyncService(ports ShellPorts, output *console.OutputState) *SyncService {
	return &SyncService{
		ports:    ports,
		registry: overrides.NewRegistry(),
		output:   output,
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides the redisplay delay. Only useful before Enable.
func (s *SyncService) SetDebounce(d time.Duration) {
	s.debounce = d
}

// Enable patches the shell's grid display, subscribes to every change
// source that can invalidate the order, and performs an initial reorder.
func (s *SyncService) Enable(ctx context.Context) error {
	s.mu.Lock()

	if s.enabled {
		s.mu.Unlock()

		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.runCtx.Store(runCtx)
	s.cancel = cancel

	s.refreshLoggingFlag()
	s.patchShell()

	if err := s.wireSubscriptionsLocked(); err != nil {
		s.registry.RestoreAll()
		s.cancel()
		s.mu.Unlock()

		return err
	}

	s.enabled = true
	s.mu.Unlock()

	s.output.Progressf("ordna enabled, shell grid patched")
	s.requestReorder("sorting enabled")

	return nil
}

// Disable cancels any pending redisplay, detaches every subscription and
// restores the patched shell functions. Idempotent.
func (s *SyncService) Disable() {
	s.mu.Lock()

	if !s.enabled {
		s.mu.Unlock()

		return
	}

	s.enabled = false
	s.busy = false

	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}

	subs := s.subs
	s.subs = nil
	cancel := s.cancel
	s.mu.Unlock()

	// Reverse order mirrors wiring order, same as override restoration.
	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].cancel()
	}

	s.registry.RestoreAll()

	if cancel != nil {
		cancel()
	}

	s.output.Progressf("ordna disabled, shell grid restored")
}

// Enabled reports whether the service is currently wired to the shell.
func (s *SyncService) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enabled
}

// patchShell installs the two grid overrides: the comparator bound to
// live settings reads, and the redisplay trampoline. Settings changes
// therefore take effect without re-patching.
func (s *SyncService) patchShell() {
	slots := s.ports.Grid.Slots()

	overrides.Override(s.registry, "compareItems", &slots.CompareItems,
		func(a, b domain.GridItem) int {
			return domain.CompareItems(a, b, s.orderingConfig())
		})

	overrides.Override(s.registry, "redisplay", &slots.Redisplay,
		s.ports.Grid.Rebuild)
}

// wireSubscriptionsLocked attaches every reorder trigger. On failure it
// detaches whatever was already attached and returns the error.
func (s *SyncService) wireSubscriptionsLocked() error {
	wires := []struct {
		source string
		attach func() (domain.Unsubscribe, error)
	}{
		{"shell:app-picker-layout", func() (domain.Unsubscribe, error) {
			return s.ports.ShellSettings.Subscribe(KeyAppPickerLayout, func() {
				s.requestReorder("app grid layout changed externally")
			})
		}},
		{"overview:item-drag-end", func() (domain.Unsubscribe, error) {
			return s.ports.Overview.SubscribeItemDragEnd(func() {
				s.requestReorder("app icon drag finished")
			})
		}},
		{"shell:favorite-apps", func() (domain.Unsubscribe, error) {
			return s.ports.ShellSettings.Subscribe(KeyFavoriteApps, func() {
				s.requestReorder("favorite apps changed")
			})
		}},
		{"extension:settings", func() (domain.Unsubscribe, error) {
			return s.ports.ExtensionSettings.Subscribe("", func() {
				s.refreshLoggingFlag()
				s.requestReorder("extension settings changed")
			})
		}},
		{"app-folders:folder-children", func() (domain.Unsubscribe, error) {
			return s.ports.Folders.SubscribeFoldersChanged(func() {
				s.requestReorder("app folders created or deleted")
			})
		}},
		{"inventory:installed-changed", func() (domain.Unsubscribe, error) {
			return s.ports.Inventory.SubscribeInstalledChanged(func() {
				s.requestReorder("installed apps changed")
			})
		}},
		// Wired once, fires on every transition into the app grid view.
		{"overview:state-changed", func() (domain.Unsubscribe, error) {
			return s.ports.Overview.SubscribeStateChanged(func(state domain.ViewState) {
				if state == domain.ViewAppGrid {
					s.requestReorder("app grid displayed")
				}
			})
		}},
	}

	for _, wire := range wires {
		cancel, err := wire.attach()
		if err != nil {
			for i := len(s.subs) - 1; i >= 0; i-- {
				s.subs[i].cancel()
			}

			s.subs = nil

			return fmt.Errorf("subscribe %s: %w", wire.source, err)
		}

		s.subs = append(s.subs, subscription{source: wire.source, cancel: cancel})
	}

	return nil
}

// requestReorder is the single entry point for all triggers. The reason
// string is diagnostic only.
func (s *SyncService) requestReorder(reason string) {
	s.mu.Lock()

	if !s.enabled {
		s.mu.Unlock()

		return
	}

	if s.ports.Grid.UpdatingPages() {
		s.output.Progressf("skipping reorder (%s): host grid update in progress", reason)
		s.mu.Unlock()

		return
	}

	if s.busy {
		s.output.Progressf("dropping reorder (%s): reorder already in flight", reason)
		s.mu.Unlock()

		return
	}

	s.busy = true
	s.mu.Unlock()

	ctx := s.currentCtx()
	s.output.Progressf("reordering app grid (%s)", reason)

	if enabled, err := s.ports.ExtensionSettings.GetBool(ctx, KeySortFolderContents); err == nil && enabled {
		if err := s.ReorderFolderContents(ctx); err != nil {
			s.output.Warningf("folder content sort failed: %v", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		s.busy = false

		return
	}

	s.pending = time.AfterFunc(s.debounce, s.redisplay)
}

// redisplay is the delayed half of a reorder: reload the grid, then
// return to idle.
func (s *SyncService) redisplay() {
	s.mu.Lock()

	if !s.enabled {
		s.busy = false
		s.pending = nil
		s.mu.Unlock()

		return
	}

	s.pending = nil
	s.mu.Unlock()

	s.ReloadAppGrid()

	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// ReloadAppGrid triggers the host's full grid rebuild through the
// redisplay slot. Safe to call from a timer callback; a trigger arriving
// during the rebuild is dropped by the busy flag.
func (s *SyncService) ReloadAppGrid() {
	s.ports.Grid.Redisplay()
}

// ReorderFolderContents sorts the child list of every configured folder
// case-insensitively by display name and persists orders that changed.
// Idempotent: an already sorted folder is left untouched.
func (s *SyncService) ReorderFolderContents(ctx context.Context) error {
	folderIDs, err := s.ports.Folders.FolderIDs(ctx)
	if err != nil {
		return fmt.Errorf("list folders: %w", err)
	}

	for _, folderID := range folderIDs {
		children, err := s.ports.Folders.Children(ctx, folderID)
		if err != nil {
			return fmt.Errorf("read folder %s: %w", folderID, err)
		}

		sorted := domain.SortChildIDs(children, func(appID string) string {
			return s.ports.Inventory.DisplayName(ctx, appID)
		})

		if slices.Equal(children, sorted) {
			continue
		}

		if err := s.ports.Folders.SetChildOrder(ctx, folderID, sorted); err != nil {
			return fmt.Errorf("write folder %s: %w", folderID, err)
		}

		s.output.Progressf("sorted contents of folder %s", folderID)
	}

	return nil
}

// orderingConfig re-reads the ordering policy from settings. Called for
// every comparison so a settings change applies mid-flight without
// re-patching.
func (s *SyncService) orderingConfig() domain.OrderingConfig {
	ctx := s.currentCtx()

	position, err := s.ports.ExtensionSettings.Get(ctx, KeyFolderOrderPosition)
	if err != nil {
		position = ""
	}

	pinned, err := s.ports.Folders.FolderIDs(ctx)
	if err != nil {
		pinned = nil
	}

	return domain.OrderingConfig{
		FolderOrder:     domain.ParseFolderOrderPosition(position),
		PinnedFolderIDs: pinned,
	}
}

// refreshLoggingFlag mirrors logging-enabled into the output state.
func (s *SyncService) refreshLoggingFlag() {
	if enabled, err := s.ports.ExtensionSettings.GetBool(s.currentCtx(), KeyLoggingEnabled); err == nil {
		s.output.SetVerbose(enabled)
	}
}

// currentCtx returns the context of the current enable span, or a
// background context outside one.
func (s *SyncService) currentCtx() context.Context {
	if ctx, ok := s.runCtx.Load().(context.Context); ok && ctx != nil {
		return ctx
	}

	return context.Background()
}
