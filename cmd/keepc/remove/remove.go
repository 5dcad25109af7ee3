// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package remove implements the rm verb.
package remove

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/keepc/internal/ctxlog"
	"github.com/matt-FFFFFF/keepc/internal/dispatch"
	"github.com/urfave/cli/v3"
)

// Command returns the command that deletes a saved command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      dispatch.Name(dispatch.OpRemove),
		Aliases:   dispatch.Aliases(dispatch.OpRemove),
		Usage:     "Delete a saved command",
		ArgsUsage: "NAME|PATTERN...",
		Description: `Delete the command called NAME. When no command has that exact name the
argument is used as a search pattern and you pick one of the matches.`,
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return cli.Exit("rm needs a NAME or PATTERN", dispatch.ExitUsage)
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

	if err := app.Store.Remove(e.Name); err != nil {
		return err
	}

	if err := app.Store.Persist(ctx); err != nil {
		return err
	}

	ctxlog.Info(ctx, "command deleted", "name", e.Name)

	return app.Printer().Message(fmt.Sprintf("Deleted command: %s", e.Name))
}
