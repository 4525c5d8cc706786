// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the command-line interface for Ordna.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/janderssonse/ordna/internal/console"
	"github.com/janderssonse/ordna/internal/domain"
	"github.com/urfave/cli/v3"
)

// Exit codes follow standard Unix conventions for better scripting support.
// Range 0-125 are safe to use (126+ have special meaning in shells).
const (
	ExitSuccess         = 0  // Operation completed successfully
	ExitGeneralError    = 1  // Generic failure (catch-all)
	ExitUsageError      = 2  // Invalid command line usage
	ExitConfigError     = 3  // Configuration file or settings error
	ExitNotFoundError   = 5  // Schema, folder or key not found
	ExitDependencyError = 10 // Missing dependency (gsettings)
	ExitSystemError     = 12 // System call failed
	ExitInterruptError  = 14 // User interrupted (Ctrl+C)

	// HelpFlag is the long-form help flag.
	HelpFlag = "--help"
)

var (
	// ErrGsettingsMissing is returned when the gsettings binary is not on PATH.
	ErrGsettingsMissing = errors.New("gsettings not found in PATH")
	// ErrMissingArgument is returned when a required argument is absent.
	ErrMissingArgument = errors.New("missing argument")
	// ErrInvalidValue is returned when a setting value is malformed.
	ErrInvalidValue = errors.New("invalid value")
)

// CLI composes the ordna command tree and the global output flags.
type CLI struct {
	app     *cli.Command
	verbose bool
	json    bool
	plain   bool
	dryRun  bool
}

// NewCLI creates the ordna command-line interface.
func NewCLI() *CLI {
	app := &CLI{}

	app.app = &cli.Command{
		Name:    "ordna",
		Usage:   "Keep the GNOME app grid in alphabetical order",
		Version: app.getVersion(),
		Suggest: true,
		Description: `Re-sorts the app grid alphabetically whenever apps, favorites or
folders change, with folders placed first, last or mixed in with apps.

ESSENTIAL COMMANDS:
  sort                  Sort the grid once and exit
  watch                 Keep the grid sorted until interrupted
  status                Show current settings and grid contents
  config set <k> <v>    Change an ordering setting

QUICK START:
  ordna sort                                 # One-shot alphabetical sort
  ordna config set folder-order-position start
  ordna watch                                # Stay resident and re-sort on change

SUPPORT:
  https://github.com/janderssonse/ordna/issues`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "help",
				Usage:   "show help information",
				Aliases: []string{"h"},
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "show progress messages to stderr",
				Aliases:     []string{"v"},
				Destination: &app.verbose,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output structured JSON results",
				Aliases:     []string{"j"},
				Destination: &app.json,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "output plain text without formatting for scripts",
				Destination: &app.plain,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "log writes instead of applying them",
				Destination: &app.dryRun,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return app.initConfig(ctx, cmd)
		},
		Action:          app.defaultAction,
		Commands:        app.createAllCommands(),
		CommandNotFound: app.commandNotFound,
	}

	return app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

func (app *CLI) createAllCommands() []*cli.Command {
	return []*cli.Command{
		app.createSortCommand(),
		app.createWatchCommand(),
		app.createStatusCommand(),
		app.createConfigCommand(),
		app.createPreviewCommand(),
		app.createVersionCommand(),
	}
}

// defaultAction runs when no command is provided.
func (app *CLI) defaultAction(_ context.Context, cmd *cli.Command) error {
	return cli.ShowAppHelp(cmd)
}

// initConfig validates flag combinations and configures shared output state.
func (app *CLI) initConfig(ctx context.Context, _ *cli.Command) (context.Context, error) {
	if app.json && app.plain {
		return ctx, domain.NewExitError(ExitUsageError, "cannot use both --json and --plain flags simultaneously", nil)
	}

	console.DefaultOutput.SetMode(app.verbose, app.json, app.plain)

	return ctx, nil
}

// commandNotFound handles unknown commands.
func (app *CLI) commandNotFound(_ context.Context, _ *cli.Command, command string) {
	console.DefaultOutput.Errorf("'%s' is not a command.", command)
	fmt.Fprintf(os.Stderr, "\nRun 'ordna --help' to see available commands.\n")
	os.Exit(ExitUsageError)
}

// getVersion returns the current version, set at build time via ldflags.
func (app *CLI) getVersion() string {
	if version != "" {
		return version
	}

	return "dev"
}

// version is stamped by the release build.
var version string //nolint:gochecknoglobals

// App provides the app constructor used by cmd/main.
func App() *cli.Command {
	app := NewCLI()

	return app.app
}
