// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render formats command entries for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/keepc/internal/color"
	"github.com/matt-FFFFFF/keepc/internal/entry"
)

// NoCommands is printed by list when the store is empty.
const NoCommands = "No commands saved."

const continuationIndent = "    "

// Printer writes entries to W, coloured when Colour is set.
type Printer struct {
	W      io.Writer
	Colour bool
}

// New returns a Printer for w.
func New(w io.Writer, colour bool) *Printer {
	return &Printer{W: w, Colour: colour}
}

// NoMatches returns the message printed when pattern matched nothing.
func NoMatches(pattern string) string {
	return fmt.Sprintf("No commands found matching '%s'", pattern)
}

// Entries prints one `$ name: body` line per entry.
func (p *Printer) Entries(entries []entry.CommandEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(p.W, "%s %s\n", color.Apply(p.Colour, "$", color.Faint), p.line(e)); err != nil {
			return err
		}
	}

	return nil
}

// Numbered prints entries prefixed with their 1-based position, for selection.
func (p *Printer) Numbered(entries []entry.CommandEntry) error {
	for i, e := range entries {
		num := color.Apply(p.Colour, fmt.Sprintf("[%d]", i+1), color.FgHiYellow)
		if _, err := fmt.Fprintf(p.W, "%s %s\n", num, p.line(e)); err != nil {
			return err
		}
	}

	return nil
}

// Message prints a plain line.
func (p *Printer) Message(msg string) error {
	_, err := fmt.Fprintln(p.W, msg)
	return err
}

func (p *Printer) line(e entry.CommandEntry) string {
	body := strings.ReplaceAll(e.Body, "\n", "\n"+continuationIndent)

	return color.Apply(p.Colour, e.Name, color.FgHiGreen, color.Bold) + ": " + color.Apply(p.Colour, body, color.FgBlue)
}
