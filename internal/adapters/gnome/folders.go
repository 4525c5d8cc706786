// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

// Package gnome adapts GNOME desktop services to the domain ports.
package gnome

import (
	"context"
	"fmt"

	"github.com/janderssonse/ordna/internal/adapters/gsettings"
	"github.com/janderssonse/ordna/internal/domain"
)

// GNOME schema names and paths.
const (
	// SchemaShell holds app-picker-layout and favorite-apps.
	SchemaShell = "org.gnome.shell"
	// SchemaAppFolders lists the configured app folders.
	SchemaAppFolders = "org.gnome.desktop.app-folders"
	// SchemaFolder is the relocatable per-folder schema.
	SchemaFolder = "org.gnome.desktop.app-folders.folder"
	// SchemaExtension holds the extension's own configuration.
	SchemaExtension = "org.gnome.shell.extensions.alphabetical-app-grid"
	// folderPathFormat locates one folder's relocatable schema instance.
	folderPathFormat = "/org/gnome/desktop/app-folders/folders/%s/"
)

// FolderStore implements the folder port over the app-folders schemas.
type FolderStore struct {
	runner     gsettings.Runner
	appFolders *gsettings.Store
}

// NewFolderStore creates a folder store.
func NewFolderStore(runner gsettings.Runner) *FolderStore {
	return &FolderStore{
		runner:     runner,
		appFolders: gsettings.NewStore(runner, SchemaAppFolders),
	}
}

// folderStore opens the relocatable schema instance for one folder.
func (f *FolderStore) folderStore(folderID string) *gsettings.Store {
	return gsettings.NewStoreWithPath(f.runner, SchemaFolder, fmt.Sprintf(folderPathFormat, folderID))
}

// FolderIDs lists configured folder ids in their stored order.
func (f *FolderStore) FolderIDs(ctx context.Context) ([]string, error) {
	return f.appFolders.GetStrv(ctx, "folder-children")
}

// FolderName resolves a folder id to its display name. Folders with an
// empty name key fall back to the id itself, matching what the shell
// shows for category-driven folders.
func (f *FolderStore) FolderName(ctx context.Context, folderID string) (string, error) {
	name, err := f.folderStore(folderID).Get(ctx, "name")
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownFolder, folderID)
	}

	if name == "" {
		return folderID, nil
	}

	return name, nil
}

// Children lists the app ids inside a folder in their stored order.
func (f *FolderStore) Children(ctx context.Context, folderID string) ([]string, error) {
	children, err := f.folderStore(folderID).GetStrv(ctx, "apps")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownFolder, folderID)
	}

	return children, nil
}

// SetChildOrder persists a new child ordering for a folder.
func (f *FolderStore) SetChildOrder(ctx context.Context, folderID string, appIDs []string) error {
	return f.folderStore(folderID).SetStrv(ctx, "apps", appIDs)
}

// SubscribeFoldersChanged fires when folders are created or deleted.
func (f *FolderStore) SubscribeFoldersChanged(handler func()) (domain.Unsubscribe, error) {
	return f.appFolders.Subscribe("folder-children", handler)
}

// Close stops the store's monitors.
func (f *FolderStore) Close() {
	f.appFolders.Close()
}
