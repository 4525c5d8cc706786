// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package domain_test

import (
	"testing"

	"github.com/janderssonse/ordna/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func app(id, name string) domain.GridItem {
	return domain.GridItem{ID: id, Kind: domain.KindApp, DisplayName: name}
}

func folder(id, name string) domain.GridItem {
	return domain.GridItem{ID: id, Kind: domain.KindFolder, DisplayName: name}
}

func names(items []domain.GridItem) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		result = append(result, item.DisplayName)
	}

	return result
}

func TestParseFolderOrderPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  domain.FolderOrderPosition
	}{
		{name: "start_means_first", value: "start", want: domain.FolderOrderFirst},
		{name: "top_means_first", value: "top", want: domain.FolderOrderFirst},
		{name: "end_means_last", value: "end", want: domain.FolderOrderLast},
		{name: "bottom_means_last", value: "bottom", want: domain.FolderOrderLast},
		{name: "default_keyword", value: "default", want: domain.FolderOrderDefault},
		{name: "unknown_value_falls_back_to_default", value: "sideways", want: domain.FolderOrderDefault},
		{name: "empty_value_falls_back_to_default", value: "", want: domain.FolderOrderDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, domain.ParseFolderOrderPosition(tt.value))
		})
	}
}

func TestCompareItems_NameOrdering(t *testing.T) {
	t.Parallel()

	cfg := domain.OrderingConfig{FolderOrder: domain.FolderOrderDefault}

	t.Run("case_insensitive_sign_agreement", func(t *testing.T) {
		t.Parallel()

		pairs := [][2]string{
			{"apple", "Banana"},
			{"GIMP", "gedit"},
			{"Files", "firefox"},
			{"a", "B"},
		}

		for _, pair := range pairs {
			itemA, itemB := app("a", pair[0]), app("b", pair[1])
			cmp := domain.CompareItems(itemA, itemB, cfg)
			assert.NotZero(t, cmp, "distinct names must not compare equal")
			assert.Equal(t, -cmp, domain.CompareItems(itemB, itemA, cfg), "comparison must be antisymmetric")
		}
	})

	t.Run("equal_names_compare_equal", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, domain.CompareItems(app("a", "Tilix"), app("b", "tilix"), cfg))
	})

	t.Run("nameless_items_sort_last", func(t *testing.T) {
		t.Parallel()

		assert.Positive(t, domain.CompareItems(app("a", ""), app("b", "Zzz"), cfg))
		assert.Negative(t, domain.CompareItems(app("a", "Aaa"), app("b", ""), cfg))
		assert.Zero(t, domain.CompareItems(app("a", ""), app("b", ""), cfg))
	})
}

func TestCompareItems_FolderBuckets(t *testing.T) {
	t.Parallel()

	theFolder := folder("f1", "Zed Tools")
	theApp := app("a1", "Abc")

	t.Run("folders_first_forces_folder_before_app", func(t *testing.T) {
		t.Parallel()

		cfg := domain.OrderingConfig{FolderOrder: domain.FolderOrderFirst}
		assert.Negative(t, domain.CompareItems(theFolder, theApp, cfg))
		assert.Positive(t, domain.CompareItems(theApp, theFolder, cfg))
	})

	t.Run("folders_last_forces_folder_after_app", func(t *testing.T) {
		t.Parallel()

		cfg := domain.OrderingConfig{FolderOrder: domain.FolderOrderLast}
		assert.Positive(t, domain.CompareItems(theFolder, theApp, cfg))
		assert.Negative(t, domain.CompareItems(theApp, theFolder, cfg))
	})

	t.Run("default_interleaves_by_name", func(t *testing.T) {
		t.Parallel()

		cfg := domain.OrderingConfig{FolderOrder: domain.FolderOrderDefault}
		assert.Positive(t, domain.CompareItems(theFolder, theApp, cfg), "Zed Tools sorts after Abc")
	})
}

func TestCompareItems_PinnedFolderRank(t *testing.T) {
	t.Parallel()

	work := folder("work", "Work")
	games := folder("games", "Games")
	misc := folder("misc", "Aardvark Misc")

	cfg := domain.OrderingConfig{
		FolderOrder:     domain.FolderOrderFirst,
		PinnedFolderIDs: []string{"work", "games"},
	}

	t.Run("pin_rank_beats_name", func(t *testing.T) {
		t.Parallel()

		// Work is pinned before Games even though G < W.
		assert.Negative(t, domain.CompareItems(work, games, cfg))
	})

	t.Run("unpinned_folders_sort_after_pinned", func(t *testing.T) {
		t.Parallel()

		assert.Negative(t, domain.CompareItems(games, misc, cfg))
		assert.Positive(t, domain.CompareItems(misc, work, cfg))
	})

	t.Run("default_mode_sorts_folders_by_name", func(t *testing.T) {
		t.Parallel()

		defCfg := domain.OrderingConfig{
			FolderOrder:     domain.FolderOrderDefault,
			PinnedFolderIDs: []string{"work", "games"},
		}

		// Without a contiguous folder bucket the pin rank stays out of
		// folder-vs-folder comparisons with distinct names.
		assert.Positive(t, domain.CompareItems(work, games, defCfg), "Games sorts before Work by name")
	})

	t.Run("pin_rank_breaks_equal_name_ties_in_default_mode", func(t *testing.T) {
		t.Parallel()

		defCfg := domain.OrderingConfig{
			FolderOrder:     domain.FolderOrderDefault,
			PinnedFolderIDs: []string{"second"},
		}

		first := folder("first", "Projects")
		second := folder("second", "projects")
		assert.Positive(t, domain.CompareItems(first, second, defCfg))
		assert.Negative(t, domain.CompareItems(second, first, defCfg))
	})
}

// TestCompareItems_DefaultModeMixedOrder pins a late-alphabet folder and
// checks that default-position sorting still yields a consistent total
// order when apps interleave with folders by name.
func TestCompareItems_DefaultModeMixedOrder(t *testing.T) {
	t.Parallel()

	cfg := domain.OrderingConfig{
		FolderOrder:     domain.FolderOrderDefault,
		PinnedFolderIDs: []string{"games"},
	}

	accessories := folder("accessories", "Accessories")
	games := folder("games", "games")
	blender := app("blender", "blender")

	assert.Negative(t, domain.CompareItems(accessories, blender, cfg))
	assert.Negative(t, domain.CompareItems(blender, games, cfg))
	assert.Negative(t, domain.CompareItems(accessories, games, cfg))

	sorted := []domain.GridItem{games, blender, accessories}
	domain.SortItems(sorted, cfg)
	assert.Equal(t, []string{"Accessories", "blender", "games"}, names(sorted))
}

func TestSortItems_Scenarios(t *testing.T) {
	t.Parallel()

	items := func() []domain.GridItem {
		return []domain.GridItem{
			app("zed", "Zed"),
			folder("abc", "Abc Folder"),
			app("apple", "Apple"),
		}
	}

	t.Run("folders_first", func(t *testing.T) {
		t.Parallel()

		sorted := items()
		domain.SortItems(sorted, domain.OrderingConfig{FolderOrder: domain.FolderOrderFirst})
		assert.Equal(t, []string{"Abc Folder", "Apple", "Zed"}, names(sorted))
	})

	t.Run("default_pure_lexicographic", func(t *testing.T) {
		t.Parallel()

		sorted := items()
		domain.SortItems(sorted, domain.OrderingConfig{FolderOrder: domain.FolderOrderDefault})
		assert.Equal(t, []string{"Abc Folder", "Apple", "Zed"}, names(sorted))
	})

	t.Run("folders_last", func(t *testing.T) {
		t.Parallel()

		sorted := items()
		domain.SortItems(sorted, domain.OrderingConfig{FolderOrder: domain.FolderOrderLast})
		assert.Equal(t, []string{"Apple", "Zed", "Abc Folder"}, names(sorted))
	})

	t.Run("stable_for_equal_names", func(t *testing.T) {
		t.Parallel()

		sorted := []domain.GridItem{app("first", "Editor"), app("second", "editor")}
		domain.SortItems(sorted, domain.OrderingConfig{})
		assert.Equal(t, "first", sorted[0].ID, "stable sort keeps original relative order")
	})
}

// TestCompareItems_Transitivity sorts a mixed set under every position and
// verifies the comparator never disagrees with the resulting total order.
func TestCompareItems_Transitivity(t *testing.T) {
	t.Parallel()

	items := []domain.GridItem{
		app("a", "Calculator"),
		folder("f1", "Internet"),
		app("b", "blender"),
		folder("f2", "Accessories"),
		app("c", ""),
		app("d", "calculator"),
		folder("f3", "games"),
	}

	positions := []domain.FolderOrderPosition{
		domain.FolderOrderDefault,
		domain.FolderOrderFirst,
		domain.FolderOrderLast,
	}

	for _, pos := range positions {
		cfg := domain.OrderingConfig{FolderOrder: pos, PinnedFolderIDs: []string{"f3"}}

		sorted := make([]domain.GridItem, len(items))
		copy(sorted, items)
		domain.SortItems(sorted, cfg)

		for i := range sorted {
			for j := i + 1; j < len(sorted); j++ {
				cmp := domain.CompareItems(sorted[i], sorted[j], cfg)
				require.LessOrEqual(t, cmp, 0,
					"position %v: %q must not sort after %q", pos, sorted[i].DisplayName, sorted[j].DisplayName)
			}
		}
	}
}

func TestSortChildIDs(t *testing.T) {
	t.Parallel()

	nameOf := func(id string) string {
		return map[string]string{
			"org.gnome.Maps.desktop":    "Maps",
			"org.gnome.Weather.desktop": "Weather",
			"org.gnome.Boxes.desktop":   "boxes",
			"org.example.Ghost.desktop": "",
			"org.gnome.Builder.desktop": "Builder",
		}[id]
	}

	children := []string{
		"org.gnome.Weather.desktop",
		"org.example.Ghost.desktop",
		"org.gnome.Boxes.desktop",
		"org.gnome.Maps.desktop",
		"org.gnome.Builder.desktop",
	}

	sorted := domain.SortChildIDs(children, nameOf)

	assert.Equal(t, []string{
		"org.gnome.Boxes.desktop",
		"org.gnome.Builder.desktop",
		"org.gnome.Maps.desktop",
		"org.gnome.Weather.desktop",
		"org.example.Ghost.desktop",
	}, sorted)

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		again := domain.SortChildIDs(sorted, nameOf)
		assert.Equal(t, sorted, again)
	})

	t.Run("does_not_mutate_input", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "org.gnome.Weather.desktop", children[0])
	})
}
