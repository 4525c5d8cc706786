// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/janderssonse/ordna/internal/adapters/cli"
	"github.com/janderssonse/ordna/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleItems = []domain.GridItem{
	{ID: "abc", Kind: domain.KindFolder, DisplayName: "Abc Folder"},
	{ID: "apple.desktop", Kind: domain.KindApp, DisplayName: "Apple"},
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	format, err := cli.ParseOutputFormat("json")
	require.NoError(t, err)
	assert.Equal(t, cli.JSONFormat, format)

	format, err = cli.ParseOutputFormat("")
	require.NoError(t, err)
	assert.Equal(t, cli.TextFormat, format)

	_, err = cli.ParseOutputFormat("yaml")
	require.ErrorIs(t, err, cli.ErrUnsupportedFormat)
}

func TestGridPrinter_PlainFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	printer := cli.NewGridPrinterWithWriter(&buf, cli.PlainFormat)
	require.NoError(t, printer.PrintGrid(sampleItems))

	assert.Equal(t, "abc\napple.desktop\n", buf.String())
}

func TestGridPrinter_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	printer := cli.NewGridPrinterWithWriter(&buf, cli.JSONFormat)
	require.NoError(t, printer.PrintGrid(sampleItems))

	var decoded struct {
		Items []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
			Name string `json:"name"`
		} `json:"items"`
	}

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, "folder", decoded.Items[0].Kind)
	assert.Equal(t, "Apple", decoded.Items[1].Name)
}

func TestGridPrinter_TextFormatIncludesHeader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	printer := cli.NewGridPrinterWithWriter(&buf, cli.TextFormat)
	require.NoError(t, printer.PrintGrid(sampleItems))

	assert.Contains(t, buf.String(), "NAME")
	assert.Contains(t, buf.String(), "Abc Folder")
}
