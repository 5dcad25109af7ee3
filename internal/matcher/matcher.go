// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package matcher finds saved commands whose name or body matches a pattern.
//
// All modes are case-insensitive and compare NFC-normalised text. Results keep
// insertion order, except in fuzzy mode where they are ranked by score and
// ties keep insertion order. An empty pattern matches everything.
package matcher

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/keepc/internal/entry"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownMode is returned by ParseMode for unrecognised mode names.
var ErrUnknownMode = errors.New("unknown match mode")

// Mode selects how a pattern is compared with entries.
type Mode int

const (
	// ModeTokens requires every whitespace separated token to appear, in any order.
	ModeTokens Mode = iota
	// ModeSubstring requires the whole pattern to appear as written.
	ModeSubstring
	// ModeFuzzy ranks entries whose text contains the pattern as a subsequence.
	ModeFuzzy
)

var modeNames = map[Mode]string{
	ModeTokens:    "tokens",
	ModeSubstring: "substring",
	ModeFuzzy:     "fuzzy",
}

// String returns the name used in config files and flags.
func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// ModeNames lists the accepted mode names.
func ModeNames() []string {
	return []string{ModeTokens.String(), ModeSubstring.String(), ModeFuzzy.String()}
}

// ParseMode converts a mode name into a Mode. Empty means ModeTokens.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeTokens, nil
	}

	for m, n := range modeNames {
		if n == s {
			return m, nil
		}
	}

	return ModeTokens, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownMode, s, strings.Join(ModeNames(), ", "))
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// Match returns the entries matching pattern. It never returns nil.
func Match(pattern string, entries []entry.CommandEntry, mode Mode) []entry.CommandEntry {
	if strings.TrimSpace(pattern) == "" {
		return append([]entry.CommandEntry{}, entries...)
	}

	switch mode {
	case ModeFuzzy:
		return matchFuzzy(pattern, entries)
	case ModeSubstring:
		return matchTokens([]string{fold(strings.TrimSpace(pattern))}, entries)
	default:
		return matchTokens(strings.Fields(fold(pattern)), entries)
	}
}

func matchTokens(tokens []string, entries []entry.CommandEntry) []entry.CommandEntry {
	out := []entry.CommandEntry{}

	for _, e := range entries {
		name, body := fold(e.Name), fold(e.Body)

		if !slices.ContainsFunc(tokens, func(tok string) bool {
			return !strings.Contains(name, tok) && !strings.Contains(body, tok)
		}) {
			out = append(out, e)
		}
	}

	return out
}

// source adapts entries to fuzzy.Source.
type source []entry.CommandEntry

func (s source) String(i int) string {
	return fold(s[i].Name + " " + s[i].Body)
}

func (s source) Len() int {
	return len(s)
}

func matchFuzzy(pattern string, entries []entry.CommandEntry) []entry.CommandEntry {
	matches := fuzzy.FindFrom(fold(strings.TrimSpace(pattern)), source(entries))

	slices.SortStableFunc(matches, func(a, b fuzzy.Match) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}

		return a.Index - b.Index
	})

	out := make([]entry.CommandEntry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}

	return out
}
