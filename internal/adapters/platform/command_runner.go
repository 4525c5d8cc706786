// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform provides command execution for the desktop adapters.
package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes system commands, with optional verbose tracing
// and a dry-run mode that skips mutating calls.
type CommandRunner struct {
	verbose bool
	dryRun  bool
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(verbose, dryRun bool) *CommandRunner {
	return &CommandRunner{
		verbose: verbose,
		dryRun:  dryRun,
	}
}

// Execute runs a command and returns its completion error.
func (r *CommandRunner) Execute(ctx context.Context, name string, args ...string) error {
	if r.verbose {
		fmt.Printf("Executing: %s %s\n", name, strings.Join(args, " "))
	}

	if r.dryRun {
		fmt.Printf("DRY RUN: %s %s\n", name, strings.Join(args, " "))

		return nil
	}

	if err := exec.CommandContext(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// ExecuteWithOutput runs a command and returns its stdout. Reads run even
// in dry-run mode; only mutations are skipped, and those go through
// Execute.
func (r *CommandRunner) ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error) {
	if r.verbose {
		fmt.Printf("Executing (with output): %s %s\n", name, strings.Join(args, " "))
	}

	output, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("command failed: %w", err)
	}

	return string(output), nil
}

// CommandExists checks if a command is available on the system.
func (r *CommandRunner) CommandExists(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}
