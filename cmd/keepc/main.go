// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the keepc command-line interface (CLI).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/keepc/internal/ctxlog"
	"github.com/matt-FFFFFF/keepc/internal/dispatch"
	"github.com/matt-FFFFFF/keepc/internal/signalbroker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.FromEnv())

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	args := dispatch.Rewrite(os.Args, valueFlags...)
	ctx = dispatch.WithArgv(ctx, args, valueFlags...)

	err := newRootCmd().Run(ctx, args)
	code := dispatch.ExitCode(err)

	report(ctx, err, code)

	signalbroker.Stop(sigCh)
	cancel()
	os.Exit(code)
}

// report prints err for the user. A run that failed only because the child
// exited non-zero has already shown its own output.
func report(ctx context.Context, err error, code int) {
	if err == nil {
		return
	}

	ctxlog.Debug(ctx, "command failed", "error", err.Error(), "exit_code", code)

	var child *dispatch.ChildExitError
	if errors.As(err, &child) {
		return
	}

	fmt.Fprintf(os.Stderr, "keepc: %s\n", err) //nolint:errcheck
}
