// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package grep implements the grep verb, which is also used for bare patterns.
package grep

import (
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/keepc/internal/dispatch"
	"github.com/matt-FFFFFF/keepc/internal/matcher"
	"github.com/matt-FFFFFF/keepc/internal/render"
	"github.com/urfave/cli/v3"
)

const modeFlag = "mode"

// Command returns the command that searches saved commands.
func Command() *cli.Command {
	return &cli.Command{
		Name:      dispatch.Name(dispatch.OpGrep),
		Aliases:   dispatch.Aliases(dispatch.OpGrep),
		Usage:     "Search saved commands",
		ArgsUsage: "PATTERN...",
		Description: `Print the commands whose name or body contains every word of PATTERN,
ignoring case and word order. An empty pattern lists everything.
Running keepc with a pattern and no verb is the same as keepc grep.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    modeFlag,
				Aliases: []string{"m"},
				Usage:   fmt.Sprintf("Match mode, one of %s (default from config)", strings.Join(matcher.ModeNames(), ", ")),
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

	mode := app.Config.MatchMode

	if s := cmd.String(modeFlag); s != "" {
		if mode, err = matcher.ParseMode(s); err != nil {
			return cli.Exit(err.Error(), dispatch.ExitUsage)
		}
	}

	pattern := strings.Join(cmd.Args().Slice(), " ")

	matches := matcher.Match(pattern, app.Store.List(), mode)
	if len(matches) == 0 {
		return app.Printer().Message(render.NoMatches(pattern))
	}

	return app.Printer().Entries(matches)
}
