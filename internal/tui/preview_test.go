// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/ordna/internal/application"
	"github.com/janderssonse/ordna/internal/domain"
	"github.com/janderssonse/ordna/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPreview(t *testing.T) *Preview {
	t.Helper()

	inventory := testutil.NewFakeInventory(map[string]string{
		"zed.desktop":   "Zed",
		"apple.desktop": "Apple",
	})

	folders := testutil.NewFakeFolders()
	folders.AddFolder("Utilities", "Utilities", []string{"zed.desktop"})

	settings := testutil.NewFakeSettings()
	settings.Set(application.KeyFolderOrderPosition, "start")

	service := application.NewOrderService(inventory, folders, settings)

	return NewPreview(context.Background(), service)
}

func TestPreview_LoadsSortedGrid(t *testing.T) {
	t.Parallel()

	preview := newTestPreview(t)

	msg := preview.Init()()
	loaded, ok := msg.(gridLoadedMsg)
	require.True(t, ok, "expected gridLoadedMsg, got %T", msg)

	require.NotEmpty(t, loaded.items)
	assert.Equal(t, domain.FolderOrderFirst, loaded.config.FolderOrder)

	// Folders first: Utilities leads despite sorting after Apple by name.
	assert.Equal(t, "Utilities", loaded.items[0].ID)

	model, _ := preview.Update(loaded)
	updated, ok := model.(*Preview)
	require.True(t, ok)
	assert.False(t, updated.loading)

	view := updated.View()
	assert.Contains(t, view, "grid preview")
}

func TestPreview_GridContentListsFoldersAndApps(t *testing.T) {
	t.Parallel()

	preview := newTestPreview(t)

	msg := preview.Init()()
	model, _ := preview.Update(msg)
	updated, ok := model.(*Preview)
	require.True(t, ok)

	model, _ = updated.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	updated, ok = model.(*Preview)
	require.True(t, ok)

	content := updated.renderGrid()
	assert.Contains(t, content, "Utilities")
	assert.Contains(t, content, "Apple")
	assert.Contains(t, content, "before apps")

	// Folder contents are indented under the folder.
	assert.Contains(t, content, "zed.desktop")
}

func TestPreview_QuitKey(t *testing.T) {
	t.Parallel()

	preview := newTestPreview(t)

	_, cmd := preview.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRunPreview_RequiresTerminal(t *testing.T) {
	if isTerminal() {
		t.Skip("stdout is a terminal")
	}

	preview := newTestPreview(t)

	err := RunPreview(context.Background(), preview.service)
	require.ErrorIs(t, err, ErrNoTerminal)
}

func TestPreview_HelpOverlayToggles(t *testing.T) {
	t.Parallel()

	preview := newTestPreview(t)

	msg := preview.Init()()
	model, _ := preview.Update(msg)
	updated, ok := model.(*Preview)
	require.True(t, ok)

	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	updated, ok = model.(*Preview)
	require.True(t, ok)
	assert.True(t, updated.showHelp)

	// Escape closes the overlay without quitting.
	model, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated, ok = model.(*Preview)
	require.True(t, ok)
	assert.False(t, updated.showHelp)
	assert.Nil(t, cmd)
}
