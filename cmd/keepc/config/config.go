// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config implements the config verb.
package config

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/keepc/internal/config"
	"github.com/matt-FFFFFF/keepc/internal/dispatch"
	"github.com/urfave/cli/v3"
)

// Command returns the command that shows the effective configuration.
func Command() *cli.Command {
	return &cli.Command{
		Name:   dispatch.Name(dispatch.OpConfig),
		Usage:  "Show the effective configuration",
		Action: showFunc,
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a starter configuration file",
				Action: initFunc,
			},
		},
	}
}

func showFunc(ctx context.Context, _ *cli.Command) error {
	app, err := dispatch.FromContext(ctx)
	if err != nil {
		return err
	}

	return app.Config.Show(app.Stdout)
}

func initFunc(ctx context.Context, _ *cli.Command) error {
	app, err := dispatch.FromContext(ctx)
	if err != nil {
		return err
	}

	if err := config.WriteDefault(app.Config.Path, app.Config.StorePath); err != nil {
		return err
	}

	_, err = fmt.Fprintf(app.Stdout, "Wrote %s\n", app.Config.Path)

	return err
}
