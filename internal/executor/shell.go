// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package executor

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/matt-FFFFFF/keepc/internal/ctxlog"
)

const (
	// GOOSWindows is the string constant for Windows OS from the runtime package.
	GOOSWindows          = "windows"
	commandSwitchWindows = "/C"         // Command switch for Windows cmd.exe
	commandSwitchUnix    = "-c"         // Command switch for Unix-like shells
	winSystem32          = "System32"   // Directory where cmd.exe is located on Windows.
	cmdExe               = "cmd.exe"    // Name of the command interpreter on Windows.
	binSh                = "/bin/sh"    // Default shell for Unix-like systems.
	winSystemRootEnv     = "SystemRoot" // Environment variable for Windows system root directory.
	winComSpecEnv        = "ComSpec"    // Environment variable naming the Windows command interpreter.
)

// resolveShell returns configured if set, then the platform default.
func resolveShell(ctx context.Context, configured string) string {
	if configured != "" {
		return configured
	}

	if runtime.GOOS == GOOSWindows {
		if spec := os.Getenv(winComSpecEnv); spec != "" {
			return spec
		}

		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		ctxlog.Debug(ctx, "using SHELL environment variable", "shell", shell)
		return shell
	}

	return binSh
}

// shellArgs returns the arguments that make the shell run body.
func shellArgs(body string) []string {
	if runtime.GOOS == GOOSWindows {
		return []string{commandSwitchWindows, body}
	}

	return []string{commandSwitchUnix, body}
}
