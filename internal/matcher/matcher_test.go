// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package matcher

import (
	"testing"

	"github.com/matt-FFFFFF/keepc/internal/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtures = []entry.CommandEntry{
	{Name: "deploy", Body: "prod deploy script"},
	{Name: "build", Body: "make all"},
	{Name: "Logs", Body: "kubectl logs -f deploy/api"},
	{Name: "cafe", Body: "echo caf\u00e9"},
	{Name: "clean", Body: "make clean && rm -rf dist"},
}

func names(entries []entry.CommandEntry) []string {
	out := []string{}
	for _, e := range entries {
		out = append(out, e.Name)
	}

	return out
}

func TestMatch_Tokens(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{name: "order insensitive", pattern: "deploy prod", want: []string{"deploy"}},
		{name: "reversed order", pattern: "prod deploy", want: []string{"deploy"}},
		{name: "single token across entries keeps insertion order", pattern: "make", want: []string{"build", "clean"}},
		{name: "token may hit name or body", pattern: "logs api", want: []string{"Logs"}},
		{name: "case insensitive", pattern: "MAKE ALL", want: []string{"build"}},
		{name: "tokens split across name and body", pattern: "build all", want: []string{"build"}},
		{name: "all tokens required", pattern: "make prod", want: []string{}},
		{name: "no match", pattern: "zzz-none", want: []string{}},
		{name: "extra whitespace ignored", pattern: "  deploy \t  prod ", want: []string{"deploy"}},
		{name: "normalised unicode", pattern: "cafe\u0301", want: []string{"cafe"}},
		{name: "empty matches all", pattern: "", want: []string{"deploy", "build", "Logs", "cafe", "clean"}},
		{name: "whitespace matches all", pattern: "   ", want: []string{"deploy", "build", "Logs", "cafe", "clean"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.pattern, fixtures, ModeTokens)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestMatch_Substring(t *testing.T) {
	assert.Equal(t, []string{"deploy"}, names(Match("deploy script", fixtures, ModeSubstring)))
	assert.Empty(t, Match("script deploy", fixtures, ModeSubstring), "order matters for substring mode")
	assert.Equal(t, []string{"clean"}, names(Match("  && RM ", fixtures, ModeSubstring)))
}

func TestMatch_Fuzzy(t *testing.T) {
	got := Match("mkal", fixtures, ModeFuzzy)
	require.NotEmpty(t, got)
	assert.Equal(t, "build", got[0].Name)

	assert.Empty(t, Match("qqqq", fixtures, ModeFuzzy))
	assert.Len(t, Match("", fixtures, ModeFuzzy), len(fixtures))
}

func TestMatch_DoesNotAliasInput(t *testing.T) {
	in := []entry.CommandEntry{{Name: "a", Body: "echo a"}}

	got := Match("", in, ModeTokens)
	got[0].Body = "changed"

	assert.Equal(t, "echo a", in[0].Body)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeTokens},
		{in: "tokens", want: ModeTokens},
		{in: "Substring", want: ModeSubstring},
		{in: " fuzzy ", want: ModeFuzzy},
		{in: "regex", want: ModeTokens, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownMode)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "fuzzy", ModeFuzzy.String())
	assert.Equal(t, "Mode(42)", Mode(42).String())
}
