// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package gsettings

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/janderssonse/ordna/internal/domain"
)

// Runner executes system commands. Satisfied by platform.CommandRunner.
type Runner interface {
	Execute(ctx context.Context, name string, args ...string) error
	ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error)
	CommandExists(name string) bool
}

// Store is a schema-scoped settings store backed by the gsettings tool.
// Change notifications come from long-running `gsettings monitor`
// processes, one per subscription.
type Store struct {
	runner Runner
	schema string
	path   string

	mu   sync.Mutex
	subs []*monitorSub
}

// NewStore creates a store for a schema.
func NewStore(runner Runner, schema string) *Store {
	return &Store{runner: runner, schema: schema}
}

// NewStoreWithPath creates a store for a relocatable schema at path, e.g.
// the per-folder app-folder schema.
func NewStoreWithPath(runner Runner, schema, path string) *Store {
	return &Store{runner: runner, schema: schema, path: path}
}

// schemaArg is the schema[:path] argument gsettings expects.
func (s *Store) schemaArg() string {
	if s.path != "" {
		return s.schema + ":" + s.path
	}

	return s.schema
}

// Available reports whether the schema is installed.
func (s *Store) Available(ctx context.Context) bool {
	if !s.runner.CommandExists("gsettings") {
		return false
	}

	output, err := s.runner.ExecuteWithOutput(ctx, "gsettings", "list-schemas")
	if err != nil {
		return false
	}

	for _, schema := range strings.Fields(output) {
		if schema == s.schema {
			return true
		}
	}

	return false
}

// GetRaw returns the serialized GVariant text for key, for values whose
// type the caller only needs to inspect, not decode.
func (s *Store) GetRaw(ctx context.Context, key string) (string, error) {
	raw, err := s.runner.ExecuteWithOutput(ctx, "gsettings", "get", s.schemaArg(), key)
	if err != nil {
		return "", fmt.Errorf("gsettings get %s %s: %w", s.schemaArg(), key, err)
	}

	return strings.TrimSpace(raw), nil
}

// Reset restores key to its schema default.
func (s *Store) Reset(ctx context.Context, key string) error {
	if err := s.runner.Execute(ctx, "gsettings", "reset", s.schemaArg(), key); err != nil {
		return fmt.Errorf("gsettings reset %s %s: %w", s.schemaArg(), key, err)
	}

	return nil
}

// Get returns the value for key as a plain string.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	raw, err := s.runner.ExecuteWithOutput(ctx, "gsettings", "get", s.schemaArg(), key)
	if err != nil {
		return "", fmt.Errorf("gsettings get %s %s: %w", s.schemaArg(), key, err)
	}

	value, err := ParseString(raw)
	if err != nil {
		return "", fmt.Errorf("key %s: %w", key, err)
	}

	return value, nil
}

// GetBool returns the value for key as a boolean.
func (s *Store) GetBool(ctx context.Context, key string) (bool, error) {
	raw, err := s.runner.ExecuteWithOutput(ctx, "gsettings", "get", s.schemaArg(), key)
	if err != nil {
		return false, fmt.Errorf("gsettings get %s %s: %w", s.schemaArg(), key, err)
	}

	value, err := ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("key %s: %w", key, err)
	}

	return value, nil
}

// GetStrv returns the value for key as an ordered string sequence.
func (s *Store) GetStrv(ctx context.Context, key string) ([]string, error) {
	raw, err := s.runner.ExecuteWithOutput(ctx, "gsettings", "get", s.schemaArg(), key)
	if err != nil {
		return nil, fmt.Errorf("gsettings get %s %s: %w", s.schemaArg(), key, err)
	}

	values, err := ParseStrv(raw)
	if err != nil {
		return nil, fmt.Errorf("key %s: %w", key, err)
	}

	return values, nil
}

// Set writes a plain string value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)

	if err := s.runner.Execute(ctx, "gsettings", "set", s.schemaArg(), key, "'"+escaped+"'"); err != nil {
		return fmt.Errorf("gsettings set %s %s: %w", s.schemaArg(), key, err)
	}

	return nil
}

// SetBool writes a boolean value.
func (s *Store) SetBool(ctx context.Context, key string, value bool) error {
	serialized := "false"
	if value {
		serialized = "true"
	}

	if err := s.runner.Execute(ctx, "gsettings", "set", s.schemaArg(), key, serialized); err != nil {
		return fmt.Errorf("gsettings set %s %s: %w", s.schemaArg(), key, err)
	}

	return nil
}

// SetStrv replaces the value for key with an ordered string sequence.
func (s *Store) SetStrv(ctx context.Context, key string, value []string) error {
	if err := s.runner.Execute(ctx, "gsettings", "set", s.schemaArg(), key, FormatStrv(value)); err != nil {
		return fmt.Errorf("gsettings set %s %s: %w", s.schemaArg(), key, err)
	}

	return nil
}

// monitorSub is one live `gsettings monitor` process.
type monitorSub struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (m *monitorSub) stop() {
	m.once.Do(func() {
		m.cancel()
		<-m.done
	})
}

// Subscribe spawns `gsettings monitor` for the schema (optionally
// narrowed to one key) and invokes handler for every reported change.
// The returned Unsubscribe terminates the monitor; calling it twice is a
// no-op.
func (s *Store) Subscribe(key string, handler func()) (domain.Unsubscribe, error) {
	if !s.runner.CommandExists("gsettings") {
		return nil, fmt.Errorf("%w: %s", domain.ErrSchemaNotInstalled, s.schema)
	}

	args := []string{"monitor", s.schemaArg()}
	if key != "" {
		args = append(args, key)
	}

	ctx, cancel := context.WithCancel(context.Background())

	cmd := exec.CommandContext(ctx, "gsettings", args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()

		return nil, fmt.Errorf("monitor %s: %w", s.schemaArg(), err)
	}

	if err := cmd.Start(); err != nil {
		cancel()

		return nil, fmt.Errorf("monitor %s: %w", s.schemaArg(), err)
	}

	sub := &monitorSub{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)

		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			handler()
		}

		_ = cmd.Wait()
	}()

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	return sub.stop, nil
}

// Close terminates every live monitor.
func (s *Store) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		sub.stop()
	}
}
