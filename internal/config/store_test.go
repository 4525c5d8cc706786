// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_DefaultsWhenFileMissing(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "config.toml"))
	ctx := context.Background()

	position, err := store.Get(ctx, KeyFolderOrderPosition)
	require.NoError(t, err)
	assert.Equal(t, "default", position)

	sortFolders, err := store.GetBool(ctx, KeySortFolderContents)
	require.NoError(t, err)
	assert.False(t, sortFolders)
}

func TestFileStore_SetPersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	ctx := context.Background()

	store := NewFileStore(path)
	require.NoError(t, store.Set(ctx, KeyFolderOrderPosition, "start"))
	require.NoError(t, store.Set(ctx, KeyLoggingEnabled, "true"))

	// A fresh store over the same path sees the written values.
	reopened := NewFileStore(path)

	position, err := reopened.Get(ctx, KeyFolderOrderPosition)
	require.NoError(t, err)
	assert.Equal(t, "start", position)

	logging, err := reopened.GetBool(ctx, KeyLoggingEnabled)
	require.NoError(t, err)
	assert.True(t, logging)
}

func TestFileStore_UnknownKey(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "config.toml"))
	ctx := context.Background()

	_, err := store.Get(ctx, "app-picker-layout")
	require.ErrorIs(t, err, ErrUnknownKey)

	err = store.Set(ctx, "favorite-apps", "[]")
	require.ErrorIs(t, err, ErrUnknownKey)

	_, err = store.GetStrv(ctx, KeyFolderOrderPosition)
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestFileStore_SubscribeFiresOnWrite(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "config.toml"))
	ctx := context.Background()

	fired := 0
	unsubscribe, err := store.Subscribe(KeyFolderOrderPosition, func() { fired++ })
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, KeyFolderOrderPosition, "end"))
	assert.Equal(t, 1, fired)

	unsubscribe()

	require.NoError(t, store.Set(ctx, KeyFolderOrderPosition, "start"))
	assert.Equal(t, 1, fired)
}
