// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

// Package domain contains the ordering rules for the application grid.
package domain

// ItemKind distinguishes the two kinds of entries in the app grid.
type ItemKind int

// Grid item kinds.
const (
	KindApp ItemKind = iota
	KindFolder
)

// String returns the human-readable kind name.
func (k ItemKind) String() string {
	if k == KindFolder {
		return "folder"
	}

	return "app"
}

// GridItem is one entry in the launcher collection, either an application
// shortcut or a folder. Items are owned by the shell's display collection;
// this system only reads them and requests re-ordering.
type GridItem struct {
	ID          string
	Kind        ItemKind
	DisplayName string
}

// IsFolder reports whether the item is a folder.
func (i GridItem) IsFolder() bool {
	return i.Kind == KindFolder
}
