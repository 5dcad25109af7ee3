// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/matt-FFFFFF/keepc/internal/ctxlog"
	"github.com/matt-FFFFFF/keepc/internal/entry"
	"github.com/matt-FFFFFF/keepc/internal/signalbroker"
)

const signalExitBase = 128 // Shell convention: a child killed by signal N exits with 128+N.

// forwardSignals are relayed to the child. Terminal generated signals
// (SIGINT, SIGQUIT) already reach it through the foreground process group.
var forwardSignals = []os.Signal{syscall.SIGTERM}

var (
	// ErrSpawnFailure is returned when the child process could not be started.
	ErrSpawnFailure = errors.New("could not start process")
	// ErrCancelled is returned when the context ended while the child was running.
	ErrCancelled = errors.New("context done, process killed")
)

// ExitStatus is the outcome of a child process that was started.
type ExitStatus struct {
	Code     int           // Exit code, 128+N when terminated by signal N, -1 when killed on cancellation.
	Duration time.Duration // Wall time between start and exit.
}

// Success reports whether the child exited with code 0.
func (s ExitStatus) Success() bool {
	return s.Code == 0
}

// Launcher starts a program and waits for it.
type Launcher interface {
	Exec(ctx context.Context, path string, args []string) (ExitStatus, error)
}

var _ Launcher = (*Executor)(nil)

// Executor starts child processes wired to the given standard streams.
type Executor struct {
	Shell  string   // Shell used for Run; empty means $SHELL, then /bin/sh.
	Stdin  *os.File // Nil closes the child's stdin.
	Stdout *os.File
	Stderr *os.File
	sigCh  chan os.Signal // Signals to forward, allows mocking in test.
}

// New returns an Executor inheriting the current process's standard streams.
func New(shell string) *Executor {
	return &Executor{
		Shell:  shell,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes the body of e through the shell.
func (x *Executor) Run(ctx context.Context, e entry.CommandEntry) (ExitStatus, error) {
	shell := resolveShell(ctx, x.Shell)
	ctx = ctxlog.New(ctx, ctxlog.Logger(ctx).With("name", e.Name))

	return x.Exec(ctx, shell, shellArgs(e.Body))
}

// Exec runs path with args, waits for it and returns its exit status.
// A bare program name is looked up in PATH.
func (x *Executor) Exec(ctx context.Context, path string, args []string) (ExitStatus, error) {
	logger := ctxlog.Logger(ctx).With("path", path)

	if err := ctx.Err(); err != nil {
		return ExitStatus{Code: -1}, errors.Join(ErrCancelled, err)
	}

	resolved, err := lookPath(path)
	if err != nil {
		return ExitStatus{Code: -1}, fmt.Errorf("%w: %w", ErrSpawnFailure, err)
	}

	sigCh := x.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx, forwardSignals...)
		defer signalbroker.Stop(sigCh)
	}

	argv := slices.Concat([]string{filepath.Base(resolved)}, args)

	logger.Debug("starting process", "args", args)

	start := time.Now()

	ps, err := os.StartProcess(resolved, argv, &os.ProcAttr{
		Env:   os.Environ(),
		Files: []*os.File{x.Stdin, x.Stdout, x.Stderr},
	})
	if err != nil {
		return ExitStatus{Code: -1}, fmt.Errorf("%w: %w", ErrSpawnFailure, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	var (
		killed atomic.Bool
		wg     sync.WaitGroup
	)

	done := make(chan struct{})

	// Forward signals to the child and kill it if the context ends.
	wg.Add(1)

	go func() {
		defer wg.Done()

		for {
			select {
			case s := <-sigCh:
				logger.Info("forwarding signal", "signal", s.String(), "pid", ps.Pid)

				if err := ps.Signal(s); err != nil {
					logger.Info("failed to send signal", "signal", s.String(), "error", err)
				}
			case <-ctx.Done():
				logger.Info("context done, killing process", "pid", ps.Pid)
				killed.Store(true)
				killPs(ctx, ps)

				return
			case <-done:
				return
			}
		}
	}()

	state, waitErr := ps.Wait()

	close(done)
	wg.Wait()

	status := ExitStatus{Code: -1, Duration: time.Since(start)}

	if waitErr != nil {
		return status, fmt.Errorf("%w: %w", ErrSpawnFailure, waitErr)
	}

	status.Code = exitCode(state)

	logger.Debug("process finished", "exitCode", status.Code, "duration", status.Duration.String())

	if killed.Load() {
		status.Code = -1
		return status, errors.Join(ErrCancelled, ctx.Err())
	}

	return status, nil
}

func lookPath(path string) (string, error) {
	if filepath.Base(path) != path {
		return path, nil
	}

	return exec.LookPath(path)
}

func exitCode(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return signalExitBase + int(ws.Signal())
	}

	return state.ExitCode()
}

func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)
}
