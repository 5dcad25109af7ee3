// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package add implements the new verb.
package add

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/keepc/internal/ctxlog"
	"github.com/matt-FFFFFF/keepc/internal/dispatch"
	"github.com/matt-FFFFFF/keepc/internal/entry"
	"github.com/matt-FFFFFF/keepc/internal/prompt"
	"github.com/urfave/cli/v3"
)

const (
	forceFlag      = "force"
	forceFlagShort = "f"
)

var errHelp = errors.New("help requested")

// Command returns the command that saves a new command.
func Command() *cli.Command {
	return &cli.Command{
		Name:      dispatch.Name(dispatch.OpNew),
		Aliases:   dispatch.Aliases(dispatch.OpNew),
		Usage:     "Save a command under a name",
		ArgsUsage: "NAME [COMMAND...]",
		Description: `Save COMMAND under NAME. The remaining arguments are joined with single spaces,
so quote the command when it contains shell operators: keepc new up 'docker compose up -d'.
Missing values are prompted for. An existing name is rejected unless --force is given
or overwrite = true is set in the configuration file. Flags must come before NAME,
and -- ends them. Arguments are stored exactly as given, whitespace included.`,
		// Arguments are read verbatim, see parseArgs.
		SkipFlagParsing: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    forceFlag,
				Aliases: []string{forceFlagShort},
				Usage:   "Replace the command if the name already exists",
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

	raw, ok := dispatch.VerbArgs(ctx, dispatch.OpNew)
	if !ok {
		raw = cmd.Args().Slice()
	}

	force, args, err := parseArgs(raw)
	if errors.Is(err, errHelp) {
		return cli.ShowSubcommandHelp(cmd)
	}

	if err != nil {
		return err
	}

	name, err := argOrPrompt(app.Prompter, args, 0, "Name: ", entry.ErrEmptyName)
	if err != nil {
		return err
	}

	body, err := bodyOrPrompt(app.Prompter, args)
	if err != nil {
		return err
	}

	e, err := entry.Validate(name, body)
	if err != nil {
		return err
	}

	overwrite := app.Config.Overwrite || force
	if err := app.Store.Add(e, overwrite); err != nil {
		return err
	}

	if err := app.Store.Persist(ctx); err != nil {
		return err
	}

	ctxlog.Info(ctx, "command saved", "name", e.Name, "path", app.Store.Path())

	return app.Printer().Message(fmt.Sprintf("Saved command: %s", e.Name))
}

// argOrPrompt returns args[i], prompting when it was not given.
// A prompt the user cannot answer is reported as missing.
func argOrPrompt(p prompt.Prompter, args []string, i int, question string, missing error) (string, error) {
	if i < len(args) {
		return args[i], nil
	}

	v, err := prompt.Required(p, question)
	if errors.Is(err, prompt.ErrAborted) {
		return "", missing
	}

	return v, err
}

// bodyOrPrompt returns a single body argument verbatim and joins several
// with single spaces. An empty word among several would be lost, so it is refused.
func bodyOrPrompt(p prompt.Prompter, args []string) (string, error) {
	switch {
	case len(args) < 2:
		return argOrPrompt(p, args, 1, "Command: ", entry.ErrEmptyBody)
	case len(args) == 2:
		return args[1], nil
	}

	words := args[1:]
	for i, w := range words {
		if strings.TrimSpace(w) == "" {
			return "", cli.Exit(fmt.Sprintf(
				"word %d of the command is empty, quote the whole command as one argument", i+1), dispatch.ExitUsage)
		}
	}

	return strings.Join(words, " "), nil
}

// parseArgs splits leading flags from the positional arguments, which are
// returned unmodified.
func parseArgs(args []string) (bool, []string, error) {
	var force bool

	for i, a := range args {
		switch {
		case a == "--":
			return force, args[i+1:], nil
		case a == "-"+forceFlagShort, a == "--"+forceFlag, a == "-"+forceFlag:
			force = true
		case a == "-h", a == "--help", a == "-help":
			return false, nil, errHelp
		case strings.HasPrefix(a, "-") && a != "-":
			return false, nil, cli.Exit(fmt.Sprintf("unknown flag %s, see keepc help new", a), dispatch.ExitUsage)
		default:
			return force, args[i:], nil
		}
	}

	return force, nil, nil
}
