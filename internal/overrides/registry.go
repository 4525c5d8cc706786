// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

// Package overrides implements a registration table for replacing and
// restoring behavior slots on host shell components.
package overrides

import "sync"

// restoreEntry records one installed override so it can be undone exactly.
type restoreEntry struct {
	name    string
	restore func()
}

// Registry tracks installed overrides. RestoreAll undoes exactly what was
// registered, in reverse order, and is safe to call when nothing is
// patched.
type Registry struct {
	mu      sync.Mutex
	entries []restoreEntry
}

// NewRegistry creates an empty override registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Override replaces the function slot with replacement and records the
// original for restoration. The slot keeps the replacement until
// RestoreAll runs.
func Override[T any](r *Registry, name string, slot *T, replacement T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	original := *slot
	*slot = replacement

	r.entries = append(r.entries, restoreEntry{
		name: name,
		restore: func() {
			*slot = original
		},
	})
}

// Installed returns the names of currently installed overrides in
// installation order.
func (r *Registry) Installed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		names = append(names, entry.name)
	}

	return names
}

// RestoreAll restores every overridden slot in reverse installation order.
// Idempotent: a second call is a no-op.
func (r *Registry) RestoreAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.entries) - 1; i >= 0; i-- {
		r.entries[i].restore()
	}

	r.entries = nil
}
