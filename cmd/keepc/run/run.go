// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the run verb.
package run

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/keepc/internal/color"
	"github.com/matt-FFFFFF/keepc/internal/ctxlog"
	"github.com/matt-FFFFFF/keepc/internal/dispatch"
	"github.com/urfave/cli/v3"
)

// Command returns the command that executes a saved command through the user's shell.
func Command() *cli.Command {
	return &cli.Command{
		Name:      dispatch.Name(dispatch.OpRun),
		Aliases:   dispatch.Aliases(dispatch.OpRun),
		Usage:     "Execute a saved command",
		ArgsUsage: "NAME|PATTERN...",
		Description: `Execute the command called NAME, or pick one of the commands matching PATTERN.
The command runs in your shell with the current environment and terminal.
keepc exits with the command's exit code. Commands are not sandboxed:
only save and run commands you trust.`,
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return cli.Exit("run needs a NAME or PATTERN", dispatch.ExitUsage)
	}

	app, err := dispatch.FromContext(ctx)
	if err != nil {
		return err
	}

	if err := app.Ready(); err != nil {
		return err
	}

	e, err := app.Select(ctx, cmd.Args().Slice(), cmd.Name)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(app.Stderr, "Executing: %s\n", color.Apply(app.Colour, e.Name, color.FgHiGreen)); err != nil {
		return err
	}

	status, err := app.Executor.Run(ctx, e)
	if err != nil {
		return err
	}

	ctxlog.Debug(ctx, "command finished", "name", e.Name, "code", status.Code, "duration", status.Duration.String())

	if !status.Success() {
		return &dispatch.ChildExitError{Name: e.Name, Code: status.Code}
	}

	return nil
}
