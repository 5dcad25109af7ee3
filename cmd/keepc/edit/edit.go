// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package edit implements the edit verb.
package edit

import (
	"context"

	"github.com/matt-FFFFFF/keepc/internal/dispatch"
	"github.com/matt-FFFFFF/keepc/internal/editor"
	"github.com/urfave/cli/v3"
)

const (
	editorFlag   = "editor"
	msgUpdated   = "Commands updated."
	msgUnchanged = "No changes."
)

// Command returns the command that opens every saved command in the user's editor.
func Command() *cli.Command {
	return &cli.Command{
		Name:  dispatch.Name(dispatch.OpEdit),
		Usage: "Edit all saved commands in your editor",
		Description: `Open the saved commands as a YAML document in your editor. The editor is taken from
--editor, the configuration file, $VISUAL or $EDITOR, in that order, falling back to nano.
Nothing is saved when the editor exits with an error or the document is invalid.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  editorFlag,
				Usage: "Editor command line, for example 'code --wait'",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	app, err := dispatch.FromContext(ctx)
	if err != nil {
		return err
	}

	if err := app.Ready(); err != nil {
		return err
	}

	editorCmd := app.Config.Editor
	if s := cmd.String(editorFlag); s != "" {
		editorCmd = s
	}

	changed, err := editor.Edit(ctx, app.Store, app.Executor, editorCmd)
	if err != nil {
		return err
	}

	if !changed {
		return app.Printer().Message(msgUnchanged)
	}

	return app.Printer().Message(msgUpdated)
}
