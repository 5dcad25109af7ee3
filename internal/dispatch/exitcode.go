// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/keepc/internal/editor"
	"github.com/matt-FFFFFF/keepc/internal/entry"
	"github.com/matt-FFFFFF/keepc/internal/executor"
	"github.com/matt-FFFFFF/keepc/internal/prompt"
	"github.com/matt-FFFFFF/keepc/internal/store"
	"github.com/urfave/cli/v3"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitUsage      = 1
	ExitValidation = 2
	ExitDuplicate  = 3
	ExitNotFound   = 4
	ExitCorrupt    = 5
	ExitPersist    = 6
	ExitSpawn      = 7
	ExitEditor     = 8
	ExitSelection  = 9
)

// ChildExitError carries the non-zero exit code of a command started by run.
type ChildExitError struct {
	Name string
	Code int
}

// Error implements the error interface.
func (e *ChildExitError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.Name, e.Code)
}

// ExitCode implements cli.ExitCoder.
func (e *ChildExitError) ExitCode() int {
	return e.Code
}

var _ cli.ExitCoder = (*ChildExitError)(nil)

// exitCodes is checked in order, the first matching category wins.
var exitCodes = []struct {
	err  error
	code int
}{
	{err: store.ErrCorruptStore, code: ExitCorrupt},
	{err: store.ErrPersistFailure, code: ExitPersist},
	{err: editor.ErrEditorFailed, code: ExitEditor},
	{err: executor.ErrSpawnFailure, code: ExitSpawn},
	{err: prompt.ErrAborted, code: ExitSelection},
	{err: prompt.ErrInvalidChoice, code: ExitSelection},
	{err: entry.ErrValidation, code: ExitValidation},
	{err: store.ErrDuplicateName, code: ExitDuplicate},
	{err: store.ErrNotFound, code: ExitNotFound},
	{err: ErrNoMatch, code: ExitNotFound},
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var child *ChildExitError
	if errors.As(err, &child) {
		return child.Code
	}

	for _, c := range exitCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}

	var coder cli.ExitCoder
	if errors.As(err, &coder) && coder.ExitCode() != 0 {
		return coder.ExitCode()
	}

	return ExitUsage
}
