// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import (
	"context"
	"fmt"

	"github.com/janderssonse/ordna/internal/domain"
)

// OrderService computes grid orderings outside a live shell session, for
// the one-shot CLI commands.
type OrderService struct {
	inventory         domain.AppInventory
	folders           domain.FolderStore
	extensionSettings domain.SettingsStore
}

// NewOrderService creates an OrderService.
func NewOrderService(inventory domain.AppInventory, folders domain.FolderStore, extensionSettings domain.SettingsStore) *OrderService {
	return &OrderService{
		inventory:         inventory,
		folders:           folders,
		extensionSettings: extensionSettings,
	}
}

// CurrentConfig reads the effective ordering configuration.
func (s *OrderService) CurrentConfig(ctx context.Context) (domain.OrderingConfig, error) {
	position, err := s.extensionSettings.Get(ctx, KeyFolderOrderPosition)
	if err != nil {
		return domain.OrderingConfig{}, fmt.Errorf("read %s: %w", KeyFolderOrderPosition, err)
	}

	pinned, err := s.folders.FolderIDs(ctx)
	if err != nil {
		return domain.OrderingConfig{}, fmt.Errorf("list folders: %w", err)
	}

	return domain.OrderingConfig{
		FolderOrder:     domain.ParseFolderOrderPosition(position),
		PinnedFolderIDs: pinned,
	}, nil
}

// GridItems assembles the top-level grid: every configured folder, plus
// every installed app that is not inside a folder.
func (s *OrderService) GridItems(ctx context.Context) ([]domain.GridItem, error) {
	folderIDs, err := s.folders.FolderIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	inFolder := make(map[string]bool)
	items := make([]domain.GridItem, 0, len(folderIDs))

	for _, folderID := range folderIDs {
		name, err := s.folders.FolderName(ctx, folderID)
		if err != nil {
			return nil, fmt.Errorf("folder %s: %w", folderID, err)
		}

		children, err := s.folders.Children(ctx, folderID)
		if err != nil {
			return nil, fmt.Errorf("folder %s: %w", folderID, err)
		}

		for _, child := range children {
			inFolder[child] = true
		}

		items = append(items, domain.GridItem{ID: folderID, Kind: domain.KindFolder, DisplayName: name})
	}

	apps, err := s.inventory.InstalledApps(ctx)
	if err != nil {
		return nil, fmt.Errorf("list installed apps: %w", err)
	}

	for _, app := range apps {
		if !inFolder[app.ID] {
			items = append(items, app)
		}
	}

	return items, nil
}

// SortedGrid returns the grid items in the order the extension would
// display them.
func (s *OrderService) SortedGrid(ctx context.Context) ([]domain.GridItem, error) {
	items, err := s.GridItems(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := s.CurrentConfig(ctx)
	if err != nil {
		return nil, err
	}

	domain.SortItems(items, cfg)

	return items, nil
}

// SortedFolderContents returns, per folder, the child order a folder
// content sort would produce. Nothing is written.
func (s *OrderService) SortedFolderContents(ctx context.Context) (map[string][]string, error) {
	folderIDs, err := s.folders.FolderIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	result := make(map[string][]string, len(folderIDs))

	for _, folderID := range folderIDs {
		children, err := s.folders.Children(ctx, folderID)
		if err != nil {
			return nil, fmt.Errorf("folder %s: %w", folderID, err)
		}

		result[folderID] = domain.SortChildIDs(children, func(appID string) string {
			return s.inventory.DisplayName(ctx, appID)
		})
	}

	return result, nil
}
