// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FolderOrderPosition controls where folders land relative to apps.
type FolderOrderPosition int

// Folder order positions.
const (
	// FolderOrderDefault interleaves folders with apps alphabetically.
	FolderOrderDefault FolderOrderPosition = iota
	// FolderOrderFirst pins all folders before all apps.
	FolderOrderFirst
	// FolderOrderLast pins all folders after all apps.
	FolderOrderLast
)

// ParseFolderOrderPosition maps a settings value to a position. Unknown or
// empty values fall back to FolderOrderDefault rather than erroring, so a
// malformed gsettings entry never breaks sorting.
func ParseFolderOrderPosition(value string) FolderOrderPosition {
	switch value {
	case "start", "first", "top":
		return FolderOrderFirst
	case "end", "last", "bottom":
		return FolderOrderLast
	default:
		return FolderOrderDefault
	}
}

// String returns the canonical settings value for the position.
func (p FolderOrderPosition) String() string {
	switch p {
	case FolderOrderFirst:
		return "start"
	case FolderOrderLast:
		return "end"
	default:
		return "default"
	}
}

// OrderingConfig is the per-comparison snapshot of the ordering policy.
// Callers re-read it from settings for every comparison pass so a settings
// change takes effect without re-patching the shell.
type OrderingConfig struct {
	FolderOrder     FolderOrderPosition
	PinnedFolderIDs []string
}

// ConfigProvider yields the current ordering configuration. The sync
// controller binds this to live settings reads.
type ConfigProvider func() OrderingConfig

// nameCollator compares display names case-insensitively with proper
// locale-neutral collation, so "Éclair" and "eclair" bucket together the
// way GNOME Shell's own grid does. collate.Collator is not safe for
// concurrent use, hence the mutex.
//nolint:gochecknoglobals
var (
	collatorMu   sync.Mutex
	nameCollator = collate.New(language.Und, collate.IgnoreCase)
)

// CompareNames compares two display names case-insensitively. An item with
// no display name sorts after all named items.
func CompareNames(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()

	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	default:
		return nameCollator.CompareString(a, b)
	}
}

// pinRank returns the index of folderID in the pinned sequence, or
// len(pinned) when the folder is not pinned, so unpinned folders keep a
// stable position after every pinned one.
func pinRank(folderID string, pinned []string) int {
	for i, id := range pinned {
		if id == folderID {
			return i
		}
	}

	return len(pinned)
}

// CompareItems orders two grid items under the given configuration and
// returns -1, 0 or 1. Folders are forced before or after apps when the
// position demands it, and inside that contiguous folder bucket the pinned
// folder order outranks names. In the default position folders compete
// with apps purely by name, so there the pin rank only breaks ties between
// identically named folders; ranking them ahead of the name comparison
// would make folder-vs-app ordering intransitive. A 0 result means the
// caller's stable sort keeps the original relative order.
func CompareItems(a, b GridItem, cfg OrderingConfig) int {
	if a.IsFolder() != b.IsFolder() {
		switch cfg.FolderOrder {
		case FolderOrderFirst:
			if a.IsFolder() {
				return -1
			}

			return 1
		case FolderOrderLast:
			if a.IsFolder() {
				return 1
			}

			return -1
		case FolderOrderDefault:
			// Fall through to the name comparison.
		}
	}

	if a.IsFolder() && b.IsFolder() {
		if cfg.FolderOrder == FolderOrderDefault {
			if cmp := CompareNames(a.DisplayName, b.DisplayName); cmp != 0 {
				return cmp
			}
		}

		rankA, rankB := pinRank(a.ID, cfg.PinnedFolderIDs), pinRank(b.ID, cfg.PinnedFolderIDs)
		if rankA != rankB {
			if rankA < rankB {
				return -1
			}

			return 1
		}
	}

	return CompareNames(a.DisplayName, b.DisplayName)
}

// SortItems stable-sorts items in place under the configuration.
func SortItems(items []GridItem, cfg OrderingConfig) {
	sort.SliceStable(items, func(i, j int) bool {
		return CompareItems(items[i], items[j], cfg) < 0
	})
}

// SortChildIDs returns the folder child IDs ordered case-insensitively by
// display name. The sort is stable and idempotent: re-sorting an already
// sorted list returns the same order. Unknown IDs (no display name in the
// lookup) sort after named children.
func SortChildIDs(childIDs []string, displayName func(id string) string) []string {
	sorted := make([]string, len(childIDs))
	copy(sorted, childIDs)

	sort.SliceStable(sorted, func(i, j int) bool {
		return CompareNames(displayName(sorted[i]), displayName(sorted[j])) < 0
	})

	return sorted
}
