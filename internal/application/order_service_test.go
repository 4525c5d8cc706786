// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package application_test

import (
	"context"
	"testing"

	"github.com/janderssonse/ordna/internal/application"
	"github.com/janderssonse/ordna/internal/domain"
	"github.com/janderssonse/ordna/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService() (*application.OrderService, *testutil.FakeInventory, *testutil.FakeFolders, *testutil.FakeSettings) {
	inventory := testutil.NewFakeInventory(map[string]string{
		"zed.desktop":   "Zed",
		"apple.desktop": "Apple",
		"inner.desktop": "Inner App",
	})
	folders := testutil.NewFakeFolders()
	settings := testutil.NewFakeSettings()

	return application.NewOrderService(inventory, folders, settings), inventory, folders, settings
}

func TestOrderService_SortedGrid(t *testing.T) {
	t.Parallel()

	service, _, folders, settings := newOrderService()
	folders.AddFolder("abc", "Abc Folder", []string{"inner.desktop"})
	settings.Set(application.KeyFolderOrderPosition, "start")

	sorted, err := service.SortedGrid(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(sorted))
	for _, item := range sorted {
		names = append(names, item.DisplayName)
	}

	assert.Equal(t, []string{"Abc Folder", "Apple", "Zed"}, names)
}

func TestOrderService_FolderedAppsExcludedFromGrid(t *testing.T) {
	t.Parallel()

	service, _, folders, _ := newOrderService()
	folders.AddFolder("abc", "Abc Folder", []string{"inner.desktop"})

	items, err := service.GridItems(context.Background())
	require.NoError(t, err)

	for _, item := range items {
		assert.NotEqual(t, "inner.desktop", item.ID, "apps inside folders must not appear at top level")
	}

	assert.Len(t, items, 3) // folder + two loose apps
}

func TestOrderService_CurrentConfigUsesFolderOrderAsPinned(t *testing.T) {
	t.Parallel()

	service, _, folders, settings := newOrderService()
	folders.AddFolder("work", "Work", nil)
	folders.AddFolder("games", "Games", nil)
	settings.Set(application.KeyFolderOrderPosition, "end")

	cfg, err := service.CurrentConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.FolderOrderLast, cfg.FolderOrder)
	assert.Equal(t, []string{"work", "games"}, cfg.PinnedFolderIDs)
}

func TestOrderService_SortedFolderContentsDoesNotWrite(t *testing.T) {
	t.Parallel()

	service, inventory, folders, _ := newOrderService()
	inventory.Install("b.desktop", "Bravo")
	inventory.Install("a.desktop", "Alpha")
	folders.AddFolder("misc", "Misc", []string{"b.desktop", "a.desktop"})

	contents, err := service.SortedFolderContents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.desktop", "b.desktop"}, contents["misc"])
	assert.Zero(t, folders.Writes(), "preview must not persist anything")
}
