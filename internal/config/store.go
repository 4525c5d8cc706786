// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/janderssonse/ordna/internal/domain"
)

// Settings keys understood by the file store.
const (
	KeyLoggingEnabled      = "logging-enabled"
	KeySortFolderContents  = "sort-folder-contents"
	KeyFolderOrderPosition = "folder-order-position"
)

// ErrUnknownKey is returned for keys outside the configuration surface.
var ErrUnknownKey = errors.New("unknown configuration key")

// FileStore adapts the TOML fallback file to the settings-store port for
// sessions without the extension schema. Changes made through the same
// process notify subscribers; external file edits do not.
type FileStore struct {
	path string

	mu       sync.Mutex
	handlers []func()
}

// NewFileStore creates a file store over path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get returns the value for key as a plain string.
func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	settings, err := Load(s.path)
	if err != nil {
		return "", err
	}

	switch key {
	case KeyFolderOrderPosition:
		return settings.FolderOrderPosition, nil
	case KeyLoggingEnabled:
		return formatBool(settings.LoggingEnabled), nil
	case KeySortFolderContents:
		return formatBool(settings.SortFolderContents), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// GetBool returns the value for key as a boolean.
func (s *FileStore) GetBool(ctx context.Context, key string) (bool, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}

	return value == "true", nil
}

// GetStrv is not part of the file-backed surface; every key is scalar.
func (s *FileStore) GetStrv(_ context.Context, key string) ([]string, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// SetStrv is not part of the file-backed surface; every key is scalar.
func (s *FileStore) SetStrv(_ context.Context, key string, _ []string) error {
	return fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set updates one key and persists the file.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	settings, err := Load(s.path)
	if err != nil {
		return err
	}

	switch key {
	case KeyFolderOrderPosition:
		settings.FolderOrderPosition = value
	case KeyLoggingEnabled:
		settings.LoggingEnabled = value == "true"
	case KeySortFolderContents:
		settings.SortFolderContents = value == "true"
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	if err := Save(s.path, settings); err != nil {
		return err
	}

	s.notify()

	return nil
}

// Subscribe registers a handler fired on writes through this store.
func (s *FileStore) Subscribe(_ string, handler func()) (domain.Unsubscribe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlers = append(s.handlers, handler)
	index := len(s.handlers) - 1

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.handlers[index] = nil
	}, nil
}

func (s *FileStore) notify() {
	s.mu.Lock()
	handlers := append([]func(){}, s.handlers...)
	s.mu.Unlock()

	for _, handler := range handlers {
		if handler != nil {
			handler()
		}
	}
}

func formatBool(value bool) string {
	if value {
		return "true"
	}

	return "false"
}
