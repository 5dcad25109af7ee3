// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderPrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewReader(strings.NewReader("first\r\nsecond"), &out)

	got, err := p.Prompt("a? ")
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = p.Prompt("b? ")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	_, err = p.Prompt("c? ")
	require.ErrorIs(t, err, ErrAborted)

	assert.Equal(t, "a? b? c? ", out.String())
	assert.NoError(t, p.Close())
}

func TestChoose(t *testing.T) {
	testCases := []struct {
		desc  string
		input string
		want  int
		err   error
	}{
		{desc: "first", input: "1\n", want: 0},
		{desc: "last", input: " 3 \n", want: 2},
		{desc: "zero", input: "0\n", want: -1, err: ErrInvalidChoice},
		{desc: "too big", input: "4\n", want: -1, err: ErrInvalidChoice},
		{desc: "not a number", input: "two\n", want: -1, err: ErrInvalidChoice},
		{desc: "blank", input: "\n", want: -1, err: ErrAborted},
		{desc: "quit", input: "Q\n", want: -1, err: ErrAborted},
		{desc: "eof", input: "", want: -1, err: ErrAborted},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			var out bytes.Buffer

			got, err := Choose(NewReader(strings.NewReader(tc.input), &out), 3, "run")
			assert.Equal(t, tc.want, got)
			assert.Contains(t, out.String(), "Select the command to run [1-3]")

			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRequired(t *testing.T) {
	var out bytes.Buffer

	got, err := Required(NewReader(strings.NewReader("\n   \nls -la\n"), &out), "Command: ")
	require.NoError(t, err)
	assert.Equal(t, "ls -la", got)
	assert.Equal(t, 3, strings.Count(out.String(), "Command: "))

	_, err = Required(NewReader(strings.NewReader("\n"), &out), "Command: ")
	assert.ErrorIs(t, err, ErrAborted)
}

func TestLinePrompter_CloseWithoutPrompt(t *testing.T) {
	assert.NoError(t, New().Close())
}

func TestReaderPrompter_LeavesRestUnread(t *testing.T) {
	in := strings.NewReader("1\ny\nmore\n")

	got, err := Choose(NewReader(in, io.Discard), 2, "run")
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	rest, err := io.ReadAll(in)
	require.NoError(t, err)
	assert.Equal(t, "y\nmore\n", string(rest), "input after the answer belongs to the command")
}

func TestForStdin(t *testing.T) {
	stubs := gostub.Stub(&isTerminal, func(int) bool { return false })
	defer stubs.Reset()

	_, ok := ForStdin().(*ReaderPrompter)
	assert.True(t, ok, "piped stdin is read without line editing")

	stubs.Stub(&isTerminal, func(int) bool { return true })

	_, ok = ForStdin().(*LinePrompter)
	assert.True(t, ok)
}
