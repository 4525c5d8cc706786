// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	cliAdapter "github.com/janderssonse/ordna/internal/adapters/cli"
	"github.com/janderssonse/ordna/internal/adapters/gnome"
	"github.com/janderssonse/ordna/internal/adapters/gsettings"
	"github.com/janderssonse/ordna/internal/adapters/platform"
	"github.com/janderssonse/ordna/internal/application"
	"github.com/janderssonse/ordna/internal/config"
	"github.com/janderssonse/ordna/internal/console"
	"github.com/janderssonse/ordna/internal/domain"
	"github.com/janderssonse/ordna/internal/tui"
	"github.com/urfave/cli/v3"
)

// Extension settings keys exposed through `ordna config`.
var configKeys = []string{ //nolint:gochecknoglobals
	application.KeyLoggingEnabled,
	application.KeySortFolderContents,
	application.KeyFolderOrderPosition,
}

// shellEnv bundles the adapters a command needs to talk to the desktop.
type shellEnv struct {
	runner    *platform.CommandRunner
	shell     *gsettings.Store
	extension *gsettings.Store // nil when the extension schema is absent
	fallback  *config.FileStore
	folders   *gnome.FolderStore
	inventory *gnome.Inventory
}

// openShellEnv wires the gsettings-backed adapters. When the extension
// schema is not installed its settings fall back to the Ordna config file.
func (app *CLI) openShellEnv(ctx context.Context) (*shellEnv, error) {
	runner := platform.NewCommandRunner(app.verbose, app.dryRun)
	if !runner.CommandExists("gsettings") {
		return nil, domain.NewExitError(ExitDependencyError, "gsettings is required but was not found in PATH", ErrGsettingsMissing)
	}

	env := &shellEnv{
		runner:    runner,
		shell:     gsettings.NewStore(runner, gnome.SchemaShell),
		fallback:  config.NewFileStore(config.GetConfigFilePath()),
		folders:   gnome.NewFolderStore(runner),
		inventory: gnome.NewInventory(),
	}

	extension := gsettings.NewStore(runner, gnome.SchemaExtension)
	if extension.Available(ctx) {
		env.extension = extension
	} else {
		console.DefaultOutput.Warningf("extension schema %s not installed, using %s",
			gnome.SchemaExtension, config.GetConfigFilePath())
	}

	return env, nil
}

// extensionSettings returns the live settings store for the extension keys.
func (env *shellEnv) extensionSettings() domain.SettingsStore {
	if env.extension != nil {
		return env.extension
	}

	return env.fallback
}

func (env *shellEnv) close() {
	env.inventory.Close()
	env.folders.Close()
	env.shell.Close()

	if env.extension != nil {
		env.extension.Close()
	}
}

// resolveFormat picks the printer format from the command flag, falling
// back to the global output flags.
func (app *CLI) resolveFormat(cmd *cli.Command) (cliAdapter.OutputFormat, error) {
	if format := cmd.String("format"); format != "" {
		parsed, err := cliAdapter.ParseOutputFormat(format)
		if err != nil {
			return cliAdapter.TextFormat, domain.NewExitError(ExitUsageError, err.Error(), err)
		}

		return parsed, nil
	}

	switch {
	case app.json:
		return cliAdapter.JSONFormat, nil
	case app.plain:
		return cliAdapter.PlainFormat, nil
	default:
		return cliAdapter.TextFormat, nil
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "output format: text, json, plain",
	}
}

// createSortCommand creates the one-shot sort command.
func (app *CLI) createSortCommand() *cli.Command {
	return &cli.Command{
		Name:  "sort",
		Usage: "Sort the app grid alphabetically once",
		Description: `Applies the alphabetical order once and exits: resets any manual
drag-and-drop layout so the shell lays the grid out alphabetically, and
optionally rewrites folder contents in sorted order.

Examples:
  ordna sort                      # Sort grid, leave folder contents alone
  ordna sort --folders            # Also sort the apps inside each folder
  ordna sort --preview --json     # Show the resulting order without writing`,
		Flags: []cli.Flag{
			formatFlag(),
			&cli.BoolFlag{
				Name:  "folders",
				Usage: "also sort the contents of each app folder",
			},
			&cli.BoolFlag{
				Name:    "preview",
				Aliases: []string{"n"},
				Usage:   "print the sorted order without changing anything",
			},
		},
		Action: app.runSort,
	}
}

func (app *CLI) runSort(ctx context.Context, cmd *cli.Command) error {
	format, err := app.resolveFormat(cmd)
	if err != nil {
		return err
	}

	env, err := app.openShellEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	service := application.NewOrderService(env.inventory, env.folders, env.extensionSettings())

	items, err := service.SortedGrid(ctx)
	if err != nil {
		return domain.NewExitError(ExitSystemError, "failed to compute grid order", err)
	}

	sortFolders := cmd.Bool("folders")
	if !sortFolders {
		if enabled, err := env.extensionSettings().GetBool(ctx, application.KeySortFolderContents); err == nil {
			sortFolders = enabled
		}
	}

	if cmd.Bool("preview") {
		printer := cliAdapter.NewGridPrinter(format)
		if err := printer.PrintGrid(items); err != nil {
			return domain.NewExitError(ExitGeneralError, "failed to print grid", err)
		}

		if sortFolders {
			return app.printFolderPreview(ctx, service, format)
		}

		return nil
	}

	syncService := application.NewSyncService(application.ShellPorts{
		Grid:              gnome.NewShellGrid(ctx, env.shell),
		Overview:          gnome.NewNullOverview(),
		Inventory:         env.inventory,
		Folders:           env.folders,
		ShellSettings:     env.shell,
		ExtensionSettings: env.extensionSettings(),
	}, console.DefaultOutput)

	if sortFolders {
		if err := syncService.ReorderFolderContents(ctx); err != nil {
			return domain.NewExitError(ExitSystemError, "failed to sort folder contents", err)
		}
	}

	syncService.ReloadAppGrid()

	console.DefaultOutput.Successf("Sorted %d grid items", len(items))
	console.DefaultOutput.JSONResult("sorted", map[string]any{"items": len(items), "folders": sortFolders})

	return nil
}

func (app *CLI) printFolderPreview(ctx context.Context, service *application.OrderService, format cliAdapter.OutputFormat) error {
	contents, err := service.SortedFolderContents(ctx)
	if err != nil {
		return domain.NewExitError(ExitSystemError, "failed to compute folder order", err)
	}

	order := make([]string, 0, len(contents))
	for folderID := range contents {
		order = append(order, folderID)
	}

	sort.Strings(order)

	printer := cliAdapter.NewGridPrinter(format)
	if err := printer.PrintFolderContents(contents, order); err != nil {
		return domain.NewExitError(ExitGeneralError, "failed to print folder contents", err)
	}

	return nil
}

// createWatchCommand creates the resident watch command.
func (app *CLI) createWatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Keep the app grid sorted until interrupted",
		Description: `Stays resident and re-sorts the grid whenever apps are installed or
removed, favorites change, folders change, or the drag layout is edited.
Stop with Ctrl+C.`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "delay between a change and the re-sort",
				Value: application.DefaultDebounce,
			},
		},
		Action: app.runWatch,
	}
}

func (app *CLI) runWatch(ctx context.Context, cmd *cli.Command) error {
	env, err := app.openShellEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	syncService := application.NewSyncService(application.ShellPorts{
		Grid:              gnome.NewShellGrid(ctx, env.shell),
		Overview:          gnome.NewNullOverview(),
		Inventory:         env.inventory,
		Folders:           env.folders,
		ShellSettings:     env.shell,
		ExtensionSettings: env.extensionSettings(),
	}, console.DefaultOutput)

	if debounce := cmd.Duration("debounce"); debounce > 0 {
		syncService.SetDebounce(debounce)
	}

	if err := syncService.Enable(ctx); err != nil {
		return domain.NewExitError(ExitSystemError, "failed to start watching", err)
	}

	console.DefaultOutput.Progressf("Watching the app grid, press Ctrl+C to stop")

	<-ctx.Done()

	syncService.Disable()
	console.DefaultOutput.Successf("Stopped watching")

	return nil
}

// createStatusCommand creates the status command.
func (app *CLI) createStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show ordering settings and grid contents",
		Flags: []cli.Flag{formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return app.runStatus(ctx, cmd)
		},
	}
}

func (app *CLI) runStatus(ctx context.Context, cmd *cli.Command) error {
	format, err := app.resolveFormat(cmd)
	if err != nil {
		return err
	}

	env, err := app.openShellEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	status := map[string]string{
		"extension-schema": "not installed",
		"settings-backend": config.GetConfigFilePath(),
	}

	if env.extension != nil {
		status["extension-schema"] = "installed"
		status["settings-backend"] = "gsettings"
	}

	settings := env.extensionSettings()
	for _, key := range configKeys {
		value, err := readSetting(ctx, settings, key)
		if err != nil {
			value = "unreadable"
		}

		status[key] = value
	}

	if apps, err := env.inventory.InstalledApps(ctx); err == nil {
		status["applications"] = strconv.Itoa(len(apps))
	}

	if folderIDs, err := env.folders.FolderIDs(ctx); err == nil {
		status["folders"] = strconv.Itoa(len(folderIDs))
	}

	keys := []string{"extension-schema", "settings-backend"}
	keys = append(keys, configKeys...)
	keys = append(keys, "applications", "folders")

	printer := cliAdapter.NewGridPrinter(format)
	if err := printer.PrintStatus(status, keys); err != nil {
		return domain.NewExitError(ExitGeneralError, "failed to print status", err)
	}

	return nil
}

// createConfigCommand creates the config command tree.
func (app *CLI) createConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect and change ordering settings",
		Description: `Reads and writes the extension settings through gsettings, or through
the Ordna config file when the extension schema is not installed.

Keys:
  folder-order-position   start, end or default
  sort-folder-contents    true or false
  logging-enabled         true or false`,
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all settings and their values",
				Flags:  []cli.Flag{formatFlag()},
				Action: app.runConfigList,
			},
			{
				Name:      "get",
				Usage:     "Print the value of one setting",
				ArgsUsage: "<key>",
				Action:    app.runConfigGet,
			},
			{
				Name:      "set",
				Usage:     "Change one setting",
				ArgsUsage: "<key> <value>",
				Action:    app.runConfigSet,
			},
			{
				Name:   "edit",
				Usage:  "Change settings through an interactive form",
				Action: app.runConfigEdit,
			},
		},
	}
}

func (app *CLI) runConfigList(ctx context.Context, cmd *cli.Command) error {
	format, err := app.resolveFormat(cmd)
	if err != nil {
		return err
	}

	env, err := app.openShellEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	settings := env.extensionSettings()
	values := make(map[string]string, len(configKeys))

	for _, key := range configKeys {
		value, err := readSetting(ctx, settings, key)
		if err != nil {
			return domain.NewExitError(ExitConfigError, fmt.Sprintf("failed to read %s", key), err)
		}

		values[key] = value
	}

	printer := cliAdapter.NewGridPrinter(format)
	if err := printer.PrintStatus(values, configKeys); err != nil {
		return domain.NewExitError(ExitGeneralError, "failed to print settings", err)
	}

	return nil
}

func (app *CLI) runConfigGet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.Args().First()
	if key == "" {
		return domain.NewExitError(ExitUsageError, "usage: ordna config get <key>", ErrMissingArgument)
	}

	if !isConfigKey(key) {
		return domain.NewExitError(ExitNotFoundError, "unknown setting: "+key, nil)
	}

	env, err := app.openShellEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	value, err := readSetting(ctx, env.extensionSettings(), key)
	if err != nil {
		return domain.NewExitError(ExitConfigError, "failed to read "+key, err)
	}

	fmt.Println(value)

	return nil
}

func (app *CLI) runConfigSet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.Args().First()
	value := cmd.Args().Get(1)

	if key == "" || value == "" {
		return domain.NewExitError(ExitUsageError, "usage: ordna config set <key> <value>", ErrMissingArgument)
	}

	env, err := app.openShellEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	if err := app.writeSetting(ctx, env, key, value); err != nil {
		return err
	}

	console.DefaultOutput.Successf("%s set to %s", key, value)
	console.DefaultOutput.JSONResult("updated", map[string]any{"key": key, "value": value})

	return nil
}

// writeSetting validates and persists one extension setting.
func (app *CLI) writeSetting(ctx context.Context, env *shellEnv, key, value string) error {
	switch key {
	case application.KeyFolderOrderPosition:
		normalized, ok := normalizeFolderPosition(value)
		if !ok {
			return domain.NewExitError(ExitUsageError, "folder-order-position must be start, end or default", ErrInvalidValue)
		}

		value = normalized
	case application.KeyLoggingEnabled, application.KeySortFolderContents:
		if value != "true" && value != "false" {
			return domain.NewExitError(ExitUsageError, key+" must be true or false", ErrInvalidValue)
		}
	default:
		return domain.NewExitError(ExitNotFoundError, "unknown setting: "+key, nil)
	}

	if env.extension != nil {
		var err error
		if value == "true" || value == "false" {
			err = env.extension.SetBool(ctx, key, value == "true")
		} else {
			err = env.extension.Set(ctx, key, value)
		}

		if err != nil {
			return domain.NewExitError(ExitConfigError, "failed to write "+key, err)
		}

		return nil
	}

	if err := env.fallback.Set(ctx, key, value); err != nil {
		return domain.NewExitError(ExitConfigError, "failed to write "+key, err)
	}

	return nil
}

// normalizeFolderPosition maps accepted spellings onto the stored values.
func normalizeFolderPosition(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "start", "first", "top":
		return "start", true
	case "end", "last", "bottom":
		return "end", true
	case "default", "mixed":
		return "default", true
	default:
		return "", false
	}
}

// readSetting reads one extension setting through the typed accessor the
// key needs; the boolean keys come back unquoted from gsettings.
func readSetting(ctx context.Context, settings domain.SettingsStore, key string) (string, error) {
	switch key {
	case application.KeyLoggingEnabled, application.KeySortFolderContents:
		value, err := settings.GetBool(ctx, key)
		if err != nil {
			return "", err
		}

		return strconv.FormatBool(value), nil
	default:
		return settings.Get(ctx, key)
	}
}

func isConfigKey(key string) bool {
	for _, known := range configKeys {
		if key == known {
			return true
		}
	}

	return false
}

// createPreviewCommand creates the TUI preview command.
func (app *CLI) createPreviewCommand() *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Browse the sorted grid in an interactive view",
		Action: func(ctx context.Context, _ *cli.Command) error {
			env, err := app.openShellEnv(ctx)
			if err != nil {
				return err
			}
			defer env.close()

			service := application.NewOrderService(env.inventory, env.folders, env.extensionSettings())

			if err := tui.RunPreview(ctx, service); err != nil {
				return domain.NewExitError(ExitGeneralError, "failed to launch preview (terminal required)", err)
			}

			return nil
		},
	}
}

// createVersionCommand creates the version command.
func (app *CLI) createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			if console.DefaultOutput.JSON {
				console.DefaultOutput.JSONResult("ok", map[string]any{"version": app.getVersion()})

				return nil
			}

			fmt.Printf("ordna %s\n", app.getVersion())

			return nil
		},
	}
}
