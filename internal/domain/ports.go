// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"context"
	"errors"
)

// Common domain errors.
var (
	// ErrSchemaNotInstalled is returned when a settings schema is missing.
	ErrSchemaNotInstalled = errors.New("settings schema not installed")
	// ErrUnknownFolder is returned when a folder id has no configuration.
	ErrUnknownFolder = errors.New("unknown folder")
)

// ViewState is the overview's visible view.
type ViewState int

// Overview view states.
const (
	ViewHidden ViewState = iota
	ViewWindows
	ViewAppGrid
)

// Unsubscribe detaches an event subscription. Calling it more than once is
// a no-op.
type Unsubscribe func()

// SettingsStore is a schema-scoped key-value settings source with change
// notifications. Implemented by the gsettings adapter and by in-memory
// fakes in tests.
type SettingsStore interface {
	// Get returns the value for key as a plain string.
	Get(ctx context.Context, key string) (string, error)

	// GetBool returns the value for key as a boolean.
	GetBool(ctx context.Context, key string) (bool, error)

	// GetStrv returns the value for key as an ordered string sequence.
	GetStrv(ctx context.Context, key string) ([]string, error)

	// SetStrv replaces the value for key with an ordered string sequence.
	SetStrv(ctx context.Context, key string, value []string) error

	// Subscribe registers a handler for changes to key; an empty key
	// subscribes to every change in the schema.
	Subscribe(key string, handler func()) (Unsubscribe, error)
}

// GridSlots are the grid display's overridable behavior slots. The sync
// controller replaces them through the override registry and restores them
// on teardown.
type GridSlots struct {
	// CompareItems orders two visible items during a rebuild.
	CompareItems func(a, b GridItem) int

	// Redisplay performs the full grid rebuild.
	Redisplay func()
}

// GridDisplay is the shell's app grid component. Redisplay dispatches
// through the Redisplay slot; Rebuild is the host-native rebuild that
// orders every visible item pairwise through the CompareItems slot.
type GridDisplay interface {
	// Redisplay requests a full grid refresh via the current slot.
	Redisplay()

	// Rebuild runs the host's own rebuild, consulting the comparator
	// slot for every pairwise ordering decision.
	Rebuild()

	// UpdatingPages reports whether a host-driven rebuild is already in
	// progress.
	UpdatingPages() bool

	// Slots exposes the overridable behavior for patching.
	Slots() *GridSlots
}

// Overview is the shell overview, source of drag and view-state events.
type Overview interface {
	// SubscribeItemDragEnd fires after the user finishes dragging an
	// icon.
	SubscribeItemDragEnd(handler func()) (Unsubscribe, error)

	// SubscribeStateChanged fires on every overview view transition with
	// the new state. It fires for every transition into ViewAppGrid, not
	// just the first one.
	SubscribeStateChanged(handler func(state ViewState)) (Unsubscribe, error)
}

// AppInventory is the installed-application catalog.
type AppInventory interface {
	// InstalledApps lists installed applications as grid items.
	InstalledApps(ctx context.Context) ([]GridItem, error)

	// DisplayName resolves an app id to its display name, or "" when the
	// app is unknown.
	DisplayName(ctx context.Context, appID string) string

	// SubscribeInstalledChanged fires when the installed app set
	// changes.
	SubscribeInstalledChanged(handler func()) (Unsubscribe, error)
}

// FolderStore reads and writes app-folder configuration.
type FolderStore interface {
	// FolderIDs lists configured folder ids in their stored order.
	FolderIDs(ctx context.Context) ([]string, error)

	// FolderName resolves a folder id to its display name.
	FolderName(ctx context.Context, folderID string) (string, error)

	// Children lists the app ids inside a folder in their stored order.
	Children(ctx context.Context, folderID string) ([]string, error)

	// SetChildOrder persists a new child ordering for a folder. This is
	// the only external mutation this system performs.
	SetChildOrder(ctx context.Context, folderID string, appIDs []string) error

	// SubscribeFoldersChanged fires when folders are created or deleted.
	SubscribeFoldersChanged(handler func()) (Unsubscribe, error)
}
