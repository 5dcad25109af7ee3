// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"testing"

	"github.com/matt-FFFFFF/keepc/internal/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []entry.CommandEntry{
	{Name: "build", Body: "make all"},
	{Name: "deploy", Body: "make deploy\nmake verify"},
}

func TestEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, false).Entries(sample))
	assert.Equal(t, "$ build: make all\n$ deploy: make deploy\n    make verify\n", buf.String())
}

func TestEntries_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, false).Entries(nil))
	assert.Empty(t, buf.String())
}

func TestNumbered(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, false).Numbered(sample[:1]))
	assert.Equal(t, "[1] build: make all\n", buf.String())
}

func TestColour(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, true).Entries(sample[:1]))
	assert.Contains(t, buf.String(), "\033[")
	assert.Contains(t, buf.String(), "build")
	assert.Contains(t, buf.String(), "make all")
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "No commands found matching 'dock up'", NoMatches("dock up"))

	var buf bytes.Buffer
	require.NoError(t, New(&buf, false).Message(NoCommands))
	assert.Equal(t, "No commands saved.\n", buf.String())
}
