// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides output adapters for CLI operations.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/janderssonse/ordna/internal/domain"
)

// ErrUnsupportedFormat is returned when an unsupported output format is requested.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// OutputFormat represents the output format type.
type OutputFormat int

const (
	// TextFormat outputs a human-readable table.
	TextFormat OutputFormat = iota
	// JSONFormat outputs machine-readable JSON.
	JSONFormat
	// PlainFormat outputs one item per line for scripting.
	PlainFormat
)

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(format string) (OutputFormat, error) {
	switch format {
	case "", "text":
		return TextFormat, nil
	case "json":
		return JSONFormat, nil
	case "plain":
		return PlainFormat, nil
	default:
		return TextFormat, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// GridPrinter renders grid orderings for the CLI commands.
type GridPrinter struct {
	writer io.Writer
	format OutputFormat
}

// NewGridPrinter creates a printer writing to stdout.
func NewGridPrinter(format OutputFormat) *GridPrinter {
	return &GridPrinter{writer: os.Stdout, format: format}
}

// NewGridPrinterWithWriter creates a printer with a custom writer for testing.
func NewGridPrinterWithWriter(writer io.Writer, format OutputFormat) *GridPrinter {
	return &GridPrinter{writer: writer, format: format}
}

// gridItemJSON is the JSON shape for one grid item.
type gridItemJSON struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// PrintGrid renders the sorted grid.
func (p *GridPrinter) PrintGrid(items []domain.GridItem) error {
	switch p.format {
	case JSONFormat:
		payload := make([]gridItemJSON, 0, len(items))
		for _, item := range items {
			payload = append(payload, gridItemJSON{ID: item.ID, Kind: item.Kind.String(), Name: item.DisplayName})
		}

		return p.printJSON(map[string]any{"items": payload})
	case PlainFormat:
		for _, item := range items {
			fmt.Fprintf(p.writer, "%s\n", item.ID)
		}

		return nil
	case TextFormat:
		fallthrough
	default:
		writer := tabwriter.NewWriter(p.writer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "NAME\tKIND\tID")

		for _, item := range items {
			fmt.Fprintf(writer, "%s\t%s\t%s\n", item.DisplayName, item.Kind, item.ID)
		}

		return writer.Flush()
	}
}

// PrintFolderContents renders per-folder child orderings.
func (p *GridPrinter) PrintFolderContents(contents map[string][]string, order []string) error {
	switch p.format {
	case JSONFormat:
		return p.printJSON(map[string]any{"folders": contents})
	case PlainFormat, TextFormat:
		fallthrough
	default:
		for _, folderID := range order {
			fmt.Fprintf(p.writer, "%s:\n", folderID)

			for _, child := range contents[folderID] {
				fmt.Fprintf(p.writer, "  %s\n", child)
			}
		}

		return nil
	}
}

// PrintStatus renders key/value status pairs.
func (p *GridPrinter) PrintStatus(status map[string]string, keys []string) error {
	if p.format == JSONFormat {
		return p.printJSON(map[string]any{"status": status})
	}

	writer := tabwriter.NewWriter(p.writer, 0, 4, 2, ' ', 0)

	for _, key := range keys {
		fmt.Fprintf(writer, "%s\t%s\n", key, status[key])
	}

	return writer.Flush()
}

func (p *GridPrinter) printJSON(data any) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	return nil
}
