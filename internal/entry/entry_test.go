// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		argName  string
		argBody  string
		wantErr  error
		wantBody string
	}{
		{name: "valid", argName: "build", argBody: "make all", wantBody: "make all"},
		{name: "empty name", argName: "", argBody: "make", wantErr: ErrEmptyName},
		{name: "whitespace name", argName: " \t\n", argBody: "make", wantErr: ErrEmptyName},
		{name: "empty body", argName: "build", argBody: "", wantErr: ErrEmptyBody},
		{name: "whitespace body", argName: "build", argBody: "   ", wantErr: ErrEmptyBody},
		{name: "both empty reports name", argName: "", argBody: "", wantErr: ErrEmptyName},
		{name: "invalid utf8 body", argName: "bad", argBody: "invalid\xffutf8", wantErr: ErrInvalidText},
		{name: "invalid utf8 name", argName: "\xff", argBody: "echo", wantErr: ErrInvalidText},
		{name: "control bytes are valid", argName: "esc", argBody: "printf '\x1b[1m\x00'\r\n", wantBody: "printf '\x1b[1m\x00'\r\n"},
		{
			name:     "interior whitespace kept",
			argName:  "grep",
			argBody:  "  grep -rn  'a  b' .\n",
			wantBody: "  grep -rn  'a  b' .\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.argName, tt.argBody)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Equal(t, CommandEntry{}, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.argName, got.Name)
			assert.Equal(t, tt.wantBody, got.Body)
			assert.True(t, got.CreatedAt.IsZero())
		})
	}
}

func TestNew(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	e, err := New("build", "make all", now)
	require.NoError(t, err)
	assert.Equal(t, now, e.CreatedAt)
	assert.Equal(t, now, e.ModifiedAt)

	_, err = New("build", " ", now)
	assert.ErrorIs(t, err, ErrEmptyBody)
}
