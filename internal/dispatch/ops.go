// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"slices"
	"strings"
)

// Op is a dispatcher operation.
type Op int

// Operations, in help order.
const (
	OpNew Op = iota
	OpList
	OpGrep
	OpRemove
	OpEdit
	OpRun
	OpConfig
	OpHelp
)

// verbs lists the names of each Op. The first name is canonical.
var verbs = map[Op][]string{
	OpNew:    {"new", "add"},
	OpList:   {"list", "ls"},
	OpGrep:   {"grep", "find", "search"},
	OpRemove: {"rm", "remove", "delete"},
	OpEdit:   {"edit"},
	OpRun:    {"run", "execute"},
	OpConfig: {"config"},
	OpHelp:   {"help", "h"},
}

var lookup = func() map[string]Op {
	m := make(map[string]Op)

	for op, names := range verbs {
		for _, n := range names {
			m[n] = op
		}
	}

	return m
}()

// Resolve returns the Op for a verb or alias.
func Resolve(verb string) (Op, bool) {
	op, ok := lookup[verb]
	return op, ok
}

// Name returns the canonical verb of op.
func Name(op Op) string {
	names, ok := verbs[op]
	if !ok {
		return ""
	}

	return names[0]
}

// Aliases returns the alternative verbs of op.
func Aliases(op Op) []string {
	names, ok := verbs[op]
	if !ok || len(names) < 2 {
		return nil
	}

	return slices.Clone(names[1:])
}

// Rewrite turns a bare pattern into an implicit grep: when the first
// positional argument is not a verb, "grep" is inserted before it.
// valueFlags names global flags that consume the following argument.
func Rewrite(args []string, valueFlags ...string) []string {
	i := firstPositional(args, valueFlags)
	if i >= len(args) {
		return args
	}

	if _, ok := Resolve(args[i]); ok {
		return args
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, args[:i]...)
	out = append(out, Name(OpGrep))
	out = append(out, args[i:]...)

	return out
}

// firstPositional returns the index of the first argument after args[0]
// that is not a global flag or a global flag's value.
func firstPositional(args []string, valueFlags []string) int {
	i := 1
	for i < len(args) {
		a := args[i]
		if a == "--" || !strings.HasPrefix(a, "-") || a == "-" {
			break
		}

		i++

		if !strings.Contains(a, "=") && slices.Contains(valueFlags, strings.TrimLeft(a, "-")) {
			i++
		}
	}

	return i
}
