// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger uses the pretty handler and writes to stderr, so that
// stdout only ever holds the output of keepc itself and of the commands it runs.
// The level is read from the `<EXECUTABLE>_LOG_LEVEL` environment variable
// (for example KEEPC_LOG_LEVEL) and can be changed later with SetLevel.
// Setting `<EXECUTABLE>_LOG_FORMAT` to json selects JSONLogger in FromEnv.
package ctxlog
