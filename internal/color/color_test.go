// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabledFor(t *testing.T) {
	t.Setenv(NoColor, "1")
	assert.False(t, EnabledFor(os.Stdout), "NO_COLOR disables colour")

	t.Setenv(ForceColor, "1")
	assert.False(t, EnabledFor(os.Stdout), "NO_COLOR wins over FORCE_COLOR")

	t.Setenv(NoColor, "")
	assert.True(t, EnabledFor(os.Stdout), "FORCE_COLOR enables colour")

	t.Setenv(ForceColor, "")

	f, err := os.CreateTemp(t.TempDir(), "out")
	assert.NoError(t, err)
	defer f.Close() //nolint:errcheck
	assert.False(t, EnabledFor(f), "regular files are not terminals")
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		on    bool
		codes []Code
		want  string
	}{
		{name: "disabled", on: false, codes: []Code{FgRed}, want: "build"},
		{name: "no codes", on: true, want: "build"},
		{name: "single", on: true, codes: []Code{FgHiGreen}, want: "\033[92mbuild\033[0m"},
		{name: "multiple", on: true, codes: []Code{Bold, FgBlue}, want: "\033[1;34mbuild\033[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.on, "build", tt.codes...))
		})
	}
}
