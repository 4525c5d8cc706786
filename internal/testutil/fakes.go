// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil provides fake host collaborators shared by tests
// across packages.
package testutil

import (
	"context"
	"sync"

	"github.com/janderssonse/ordna/internal/domain"
)

// FakeSettings is an in-memory SettingsStore with change notifications.
type FakeSettings struct {
	mu       sync.Mutex
	values   map[string]string
	strvs    map[string][]string
	handlers map[string][]func()
}

// NewFakeSettings creates an empty settings store.
func NewFakeSettings() *FakeSettings {
	return &FakeSettings{
		values:   make(map[string]string),
		strvs:    make(map[string][]string),
		handlers: make(map[string][]func()),
	}
}

// Get returns the stored string for key.
func (f *FakeSettings) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.values[key], nil
}

// GetBool interprets the stored string as a boolean.
func (f *FakeSettings) GetBool(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.values[key] == "true", nil
}

// GetStrv returns the stored string sequence for key.
func (f *FakeSettings) GetStrv(_ context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.strvs[key]...), nil
}

// SetStrv stores a string sequence and notifies subscribers.
func (f *FakeSettings) SetStrv(_ context.Context, key string, value []string) error {
	f.mu.Lock()
	f.strvs[key] = append([]string(nil), value...)
	f.mu.Unlock()
	f.Notify(key)

	return nil
}

// Subscribe registers a change handler for key ("" matches every key).
func (f *FakeSettings) Subscribe(key string, handler func()) (domain.Unsubscribe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.handlers[key] = append(f.handlers[key], handler)
	index := len(f.handlers[key]) - 1

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		if handlers, ok := f.handlers[key]; ok && index < len(handlers) {
			handlers[index] = nil
		}
	}, nil
}

// Set stores a plain string value without notifying.
func (f *FakeSettings) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = value
}

// Notify fires the handlers subscribed to key and to the catch-all key.
func (f *FakeSettings) Notify(key string) {
	f.mu.Lock()
	handlers := make([]func(), 0)

	sources := [][]func(){f.handlers[key]}
	if key != "" {
		sources = append(sources, f.handlers[""])
	}

	for _, subscribed := range sources {
		for _, handler := range subscribed {
			if handler != nil {
				handlers = append(handlers, handler)
			}
		}
	}
	f.mu.Unlock()

	for _, handler := range handlers {
		handler()
	}
}

// FakeGrid is an in-memory GridDisplay that records rebuilds.
type FakeGrid struct {
	mu       sync.Mutex
	slots    domain.GridSlots
	items    []domain.GridItem
	rebuilds int
	updating bool
}

// NewFakeGrid creates a grid over the given items with its native slots
// installed.
func NewFakeGrid(items []domain.GridItem) *FakeGrid {
	grid := &FakeGrid{items: append([]domain.GridItem(nil), items...)}
	grid.slots = domain.GridSlots{
		CompareItems: func(a, b domain.GridItem) int {
			return domain.CompareNames(a.DisplayName, b.DisplayName)
		},
		Redisplay: grid.Rebuild,
	}

	return grid
}

// Slots exposes the overridable behavior.
func (g *FakeGrid) Slots() *domain.GridSlots {
	return &g.slots
}

// Redisplay dispatches through the redisplay slot.
func (g *FakeGrid) Redisplay() {
	g.slots.Redisplay()
}

// Rebuild sorts the visible items with the comparator slot and counts the
// pass.
func (g *FakeGrid) Rebuild() {
	g.mu.Lock()
	defer g.mu.Unlock()

	compare := g.slots.CompareItems
	items := g.items

	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && compare(items[j-1], items[j]) > 0; j-- {
			items[j-1], items[j] = items[j], items[j-1]
		}
	}

	g.rebuilds++
}

// UpdatingPages reports the simulated host-update flag.
func (g *FakeGrid) UpdatingPages() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.updating
}

// SetUpdatingPages toggles the simulated host-update flag.
func (g *FakeGrid) SetUpdatingPages(updating bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.updating = updating
}

// Rebuilds returns how many full rebuilds have run.
func (g *FakeGrid) Rebuilds() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.rebuilds
}

// Items returns the current display order.
func (g *FakeGrid) Items() []domain.GridItem {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]domain.GridItem(nil), g.items...)
}

// FakeOverview simulates the shell overview's event sources.
type FakeOverview struct {
	mu        sync.Mutex
	dragEnd   []func()
	stateSubs []func(domain.ViewState)
}

// NewFakeOverview creates an overview with no subscribers.
func NewFakeOverview() *FakeOverview {
	return &FakeOverview{}
}

// SubscribeItemDragEnd registers a drag-end handler.
func (o *FakeOverview) SubscribeItemDragEnd(handler func()) (domain.Unsubscribe, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.dragEnd = append(o.dragEnd, handler)
	index := len(o.dragEnd) - 1

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.dragEnd[index] = nil
	}, nil
}

// SubscribeStateChanged registers a view-state handler.
func (o *FakeOverview) SubscribeStateChanged(handler func(domain.ViewState)) (domain.Unsubscribe, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stateSubs = append(o.stateSubs, handler)
	index := len(o.stateSubs) - 1

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.stateSubs[index] = nil
	}, nil
}

// FireItemDragEnd delivers a drag-end event to live subscribers.
func (o *FakeOverview) FireItemDragEnd() {
	for _, handler := range o.liveDragHandlers() {
		handler()
	}
}

// FireStateChanged delivers a view-state transition to live subscribers.
func (o *FakeOverview) FireStateChanged(state domain.ViewState) {
	o.mu.Lock()
	handlers := make([]func(domain.ViewState), 0, len(o.stateSubs))

	for _, handler := range o.stateSubs {
		if handler != nil {
			handlers = append(handlers, handler)
		}
	}
	o.mu.Unlock()

	for _, handler := range handlers {
		handler(state)
	}
}

func (o *FakeOverview) liveDragHandlers() []func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	handlers := make([]func(), 0, len(o.dragEnd))

	for _, handler := range o.dragEnd {
		if handler != nil {
			handlers = append(handlers, handler)
		}
	}

	return handlers
}

// FakeInventory is an in-memory AppInventory.
type FakeInventory struct {
	mu       sync.Mutex
	apps     map[string]string
	handlers []func()
}

// NewFakeInventory creates an inventory from app id to display name.
func NewFakeInventory(apps map[string]string) *FakeInventory {
	copied := make(map[string]string, len(apps))
	for id, name := range apps {
		copied[id] = name
	}

	return &FakeInventory{apps: copied}
}

// InstalledApps lists the apps as grid items.
func (f *FakeInventory) InstalledApps(_ context.Context) ([]domain.GridItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]domain.GridItem, 0, len(f.apps))
	for id, name := range f.apps {
		items = append(items, domain.GridItem{ID: id, Kind: domain.KindApp, DisplayName: name})
	}

	return items, nil
}

// DisplayName resolves an app id.
func (f *FakeInventory) DisplayName(_ context.Context, appID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.apps[appID]
}

// SubscribeInstalledChanged registers an installed-changed handler.
func (f *FakeInventory) SubscribeInstalledChanged(handler func()) (domain.Unsubscribe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.handlers = append(f.handlers, handler)
	index := len(f.handlers) - 1

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.handlers[index] = nil
	}, nil
}

// Install adds an app and notifies subscribers.
func (f *FakeInventory) Install(appID, name string) {
	f.mu.Lock()
	f.apps[appID] = name
	handlers := append([]func(){}, f.handlers...)
	f.mu.Unlock()

	for _, handler := range handlers {
		if handler != nil {
			handler()
		}
	}
}

// FireInstalledChanged notifies subscribers without changing the set.
func (f *FakeInventory) FireInstalledChanged() {
	f.mu.Lock()
	handlers := append([]func(){}, f.handlers...)
	f.mu.Unlock()

	for _, handler := range handlers {
		if handler != nil {
			handler()
		}
	}
}

// FakeFolders is an in-memory FolderStore.
type FakeFolders struct {
	mu       sync.Mutex
	order    []string
	names    map[string]string
	children map[string][]string
	writes   int
	handlers []func()
}

// NewFakeFolders creates an empty folder store.
func NewFakeFolders() *FakeFolders {
	return &FakeFolders{
		names:    make(map[string]string),
		children: make(map[string][]string),
	}
}

// AddFolder configures a folder with its child order.
func (f *FakeFolders) AddFolder(folderID, name string, children []string) {
	f.mu.Lock()
	f.order = append(f.order, folderID)
	f.names[folderID] = name
	f.children[folderID] = append([]string(nil), children...)
	handlers := append([]func(){}, f.handlers...)
	f.mu.Unlock()

	for _, handler := range handlers {
		if handler != nil {
			handler()
		}
	}
}

// FolderIDs lists folders in configured order.
func (f *FakeFolders) FolderIDs(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.order...), nil
}

// FolderName resolves a folder id.
func (f *FakeFolders) FolderName(_ context.Context, folderID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name, ok := f.names[folderID]
	if !ok {
		return "", domain.ErrUnknownFolder
	}

	return name, nil
}

// Children lists a folder's child order.
func (f *FakeFolders) Children(_ context.Context, folderID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	children, ok := f.children[folderID]
	if !ok {
		return nil, domain.ErrUnknownFolder
	}

	return append([]string(nil), children...), nil
}

// SetChildOrder replaces a folder's child order and counts the write.
func (f *FakeFolders) SetChildOrder(_ context.Context, folderID string, appIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.children[folderID]; !ok {
		return domain.ErrUnknownFolder
	}

	f.children[folderID] = append([]string(nil), appIDs...)
	f.writes++

	return nil
}

// SubscribeFoldersChanged registers a folders-changed handler.
func (f *FakeFolders) SubscribeFoldersChanged(handler func()) (domain.Unsubscribe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.handlers = append(f.handlers, handler)
	index := len(f.handlers) - 1

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.handlers[index] = nil
	}, nil
}

// Writes returns how many child-order writes happened.
func (f *FakeFolders) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.writes
}
