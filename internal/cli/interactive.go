// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/ordna/internal/application"
	"github.com/janderssonse/ordna/internal/console"
	"github.com/janderssonse/ordna/internal/domain"
	"github.com/urfave/cli/v3"
)

func getTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)
}

// orderingSelections holds the values the form edits.
type orderingSelections struct {
	FolderPosition string
	SortFolders    bool
	Logging        bool
}

func (app *CLI) runConfigEdit(ctx context.Context, _ *cli.Command) error {
	if app.json || app.plain {
		return domain.NewExitError(ExitUsageError, "interactive mode not available with --json or --plain", nil)
	}

	env, err := app.openShellEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	settings := env.extensionSettings()

	selections := orderingSelections{FolderPosition: "default"}
	if value, err := settings.Get(ctx, application.KeyFolderOrderPosition); err == nil {
		if normalized, ok := normalizeFolderPosition(value); ok {
			selections.FolderPosition = normalized
		}
	}

	selections.SortFolders, _ = settings.GetBool(ctx, application.KeySortFolderContents)
	selections.Logging, _ = settings.GetBool(ctx, application.KeyLoggingEnabled)

	fmt.Print(getTitleStyle().Render("◈ Ordna settings ◈"))
	fmt.Println()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Folder position").
				Description("Where folders sit relative to loose apps").
				Options(
					huh.NewOption("▸ Before apps", "start"),
					huh.NewOption("▾ After apps", "end"),
					huh.NewOption("◦ Mixed in alphabetically", "default"),
				).
				Value(&selections.FolderPosition),
			huh.NewConfirm().
				Title("Sort folder contents?").
				Description("Keep the apps inside each folder alphabetical").
				Value(&selections.SortFolders),
			huh.NewConfirm().
				Title("Enable diagnostic logging?").
				Value(&selections.Logging),
		),
	)

	if err := form.Run(); err != nil {
		return domain.NewExitError(ExitInterruptError, "configuration cancelled", err)
	}

	updates := map[string]string{
		application.KeyFolderOrderPosition: selections.FolderPosition,
		application.KeySortFolderContents:  formatBoolValue(selections.SortFolders),
		application.KeyLoggingEnabled:      formatBoolValue(selections.Logging),
	}

	for _, key := range configKeys {
		if err := app.writeSetting(ctx, env, key, updates[key]); err != nil {
			return err
		}
	}

	console.DefaultOutput.Successf("Settings saved")

	return nil
}

func formatBoolValue(value bool) string {
	if value {
		return "true"
	}

	return "false"
}
