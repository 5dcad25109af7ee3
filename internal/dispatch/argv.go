// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"slices"
)

type argvKey struct{}

type argv struct {
	args       []string
	valueFlags []string
}

// WithArgv returns a copy of ctx carrying the command line as passed to the
// root command, so verbs can read their arguments byte for byte.
func WithArgv(ctx context.Context, args []string, valueFlags ...string) context.Context {
	return context.WithValue(ctx, argvKey{}, argv{args: slices.Clone(args), valueFlags: valueFlags})
}

// VerbArgs returns the arguments following the verb of op exactly as given.
// It reports false when ctx has no command line or its verb is not op.
func VerbArgs(ctx context.Context, op Op) ([]string, bool) {
	v, ok := ctx.Value(argvKey{}).(argv)
	if !ok {
		return nil, false
	}

	i := firstPositional(v.args, v.valueFlags)
	if i >= len(v.args) {
		return nil, false
	}

	if got, ok := Resolve(v.args[i]); !ok || got != op {
		return nil, false
	}

	return slices.Clone(v.args[i+1:]), true
}
