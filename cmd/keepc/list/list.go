// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package list implements the list verb.
package list

import (
	"context"

	"github.com/matt-FFFFFF/keepc/internal/dispatch"
	"github.com/matt-FFFFFF/keepc/internal/render"
	"github.com/urfave/cli/v3"
)

// Command returns the command that prints every saved command.
func Command() *cli.Command {
	return &cli.Command{
		Name:    dispatch.Name(dispatch.OpList),
		Aliases: dispatch.Aliases(dispatch.OpList),
		Usage:   "List all saved commands",
		Action:  actionFunc,
	}
}

func actionFunc(ctx context.Context, _ *cli.Command) error {
	app, err := dispatch.FromContext(ctx)
	if err != nil {
		return err
	}

	if err := app.Ready(); err != nil {
		return err
	}

	entries := app.Store.List()
	if len(entries) == 0 {
		return app.Printer().Message(render.NoCommands)
	}

	return app.Printer().Entries(entries)
}
