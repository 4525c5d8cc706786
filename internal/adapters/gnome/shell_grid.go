// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package gnome

import (
	"context"

	"github.com/janderssonse/ordna/internal/adapters/gsettings"
	"github.com/janderssonse/ordna/internal/domain"
)

// ShellGrid is the grid-display port for a session driven from outside
// the shell process. We cannot call the shell's layout code directly;
// resetting a manually arranged app-picker-layout makes the shell fall
// back to its own alphabetical ordering on the next grid display, and
// folder placement is applied by the in-shell extension when present.
type ShellGrid struct {
	ctx   context.Context //nolint:containedctx // session lifetime
	shell *gsettings.Store
	slots domain.GridSlots
}

// NewShellGrid creates a grid display over the org.gnome.shell settings.
func NewShellGrid(ctx context.Context, shell *gsettings.Store) *ShellGrid {
	grid := &ShellGrid{ctx: ctx, shell: shell}
	grid.slots = domain.GridSlots{
		CompareItems: func(a, b domain.GridItem) int {
			return domain.CompareNames(a.DisplayName, b.DisplayName)
		},
		Redisplay: grid.Rebuild,
	}

	return grid
}

// Slots exposes the overridable behavior.
func (g *ShellGrid) Slots() *domain.GridSlots {
	return &g.slots
}

// Redisplay dispatches through the redisplay slot.
func (g *ShellGrid) Redisplay() {
	g.slots.Redisplay()
}

// Rebuild resets a manually arranged layout so the shell re-sorts. An
// already default layout is left alone, which keeps the layout-changed
// monitor from re-triggering in a loop.
func (g *ShellGrid) Rebuild() {
	layout, err := g.shell.GetRaw(g.ctx, "app-picker-layout")
	if err != nil || layout == "" || layout == "[]" || layout == "@aa{sv} []" {
		return
	}

	_ = g.shell.Reset(g.ctx, "app-picker-layout")
}

// UpdatingPages always reports false: outside the shell process there is
// no host-driven rebuild to collide with.
func (g *ShellGrid) UpdatingPages() bool {
	return false
}

// NullOverview is the overview port for sessions driven from outside the
// shell: drag and view-state events are not observable there, so
// subscriptions are accepted and never fire.
type NullOverview struct{}

// NewNullOverview creates a NullOverview.
func NewNullOverview() *NullOverview {
	return &NullOverview{}
}

// SubscribeItemDragEnd accepts the handler and never fires it.
func (o *NullOverview) SubscribeItemDragEnd(_ func()) (domain.Unsubscribe, error) {
	return func() {}, nil
}

// SubscribeStateChanged accepts the handler and never fires it.
func (o *NullOverview) SubscribeStateChanged(_ func(domain.ViewState)) (domain.Unsubscribe, error) {
	return func() {}, nil
}
