// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package executor runs saved commands as child processes.
//
// A body is handed verbatim to the user's shell (`$SHELL -c`, `cmd.exe /C` on
// Windows) with the parent's environment and standard streams. The body is not
// sandboxed or inspected in any way: keepc is a personal memory aid and running
// exactly what the user saved is its purpose. Treat the store file with the
// same care as a shell rc file.
//
// A child that exits non-zero is not an error: its code is returned in
// ExitStatus and the caller decides what to do with it. Failed commands are
// never retried.
package executor
