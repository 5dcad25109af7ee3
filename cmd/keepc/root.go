// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/keepc"
	"github.com/matt-FFFFFF/keepc/cmd/keepc/add"
	configcmd "github.com/matt-FFFFFF/keepc/cmd/keepc/config"
	"github.com/matt-FFFFFF/keepc/cmd/keepc/edit"
	"github.com/matt-FFFFFF/keepc/cmd/keepc/grep"
	"github.com/matt-FFFFFF/keepc/cmd/keepc/list"
	"github.com/matt-FFFFFF/keepc/cmd/keepc/remove"
	"github.com/matt-FFFFFF/keepc/cmd/keepc/run"
	"github.com/matt-FFFFFF/keepc/internal/color"
	"github.com/matt-FFFFFF/keepc/internal/config"
	"github.com/matt-FFFFFF/keepc/internal/ctxlog"
	"github.com/matt-FFFFFF/keepc/internal/dispatch"
	"github.com/urfave/cli/v3"
)

const (
	configFlag = "config"
	storeFlag  = "store"
)

// valueFlags are the global flags that take a value, for dispatch.Rewrite.
var valueFlags = []string{configFlag, "c", storeFlag, "s"}

const description = `keepc saves shell commands under short names so you can list, search, edit,
delete and run them later. Run keepc PATTERN to search without a verb.

Exit codes:
   0  success
   1  usage or unexpected error
   2  validation error (empty name or body, invalid edit)
   3  duplicate name
   4  not found, or nothing matched
   5  corrupt store
   6  persist failure
   7  spawn failure
   8  editor failed or aborted
   9  selection aborted or invalid
   n  run: the exit code of the command`

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:        "keepc",
		Usage:       "keep and run your favourite commands",
		UsageText:   "keepc [global options] [command [options]] [PATTERN...]",
		Description: description,
		Version:     fmt.Sprintf("%s (commit: %s)", keepc.Version, keepc.Commit),
		Writer:      os.Stdout,
		ErrWriter:   os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      configFlag,
				Aliases:   []string{"c"},
				Usage:     "Path to the configuration file",
				Sources:   cli.EnvVars("KEEPC_CONFIG"),
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      storeFlag,
				Aliases:   []string{"s"},
				Usage:     "Path to the command store, overrides store_path",
				Sources:   cli.EnvVars("KEEPC_STORE"),
				TakesFile: true,
			},
		},
		Commands: []*cli.Command{
			add.Command(),
			list.Command(),
			grep.Command(),
			remove.Command(),
			edit.Command(),
			run.Command(),
			configcmd.Command(),
		},
		Before:         before,
		After:          after,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Copyright:      "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}

// before builds the App unless the context already carries one.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if _, err := dispatch.FromContext(ctx); err == nil {
		return ctx, nil
	}

	cfg, err := config.Load(cmd.String(configFlag))
	if err != nil {
		return ctx, err
	}

	if s := cmd.String(storeFlag); s != "" {
		cfg.StorePath = s
	}

	if os.Getenv(ctxlog.EnvVarName()) == "" {
		if err := ctxlog.SetLevel(cfg.LogLevel); err != nil {
			return ctx, err
		}
	}

	ctxlog.Debug(ctx, "configuration loaded", "path", cfg.Path, "found", cfg.Found, "store", cfg.StorePath)

	app, err := dispatch.NewApp(ctx, cfg, cmd.Root().Writer, cmd.Root().ErrWriter, color.Enabled())
	if err != nil {
		return ctx, err
	}

	return dispatch.WithApp(ctx, app), nil
}

func after(ctx context.Context, _ *cli.Command) error {
	app, err := dispatch.FromContext(ctx)
	if err != nil {
		return nil //nolint:nilerr
	}

	return app.Close()
}
