// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/keepc/internal/ctxlog"
	"github.com/matt-FFFFFF/keepc/internal/matcher"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cfgPath = "/home/me/.config/keepc/config.hcl"

func stubFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o600))
	}

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	stubs.Stub(&UserConfigDir, func() (string, error) { return "/home/me/.config", nil })
	t.Cleanup(stubs.Reset)

	return fs
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	stubFs(t, nil)
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Found)
	assert.Equal(t, cfgPath, cfg.Path)
	assert.Equal(t, "/home/me/.config/keepc/commands.yaml", cfg.StorePath)
	assert.Equal(t, DefaultEditor, cfg.Editor)
	assert.Equal(t, matcher.ModeTokens, cfg.MatchMode)
	assert.False(t, cfg.Overwrite)
	assert.Empty(t, cfg.Shell)
}

func TestLoad_EditorFromEnvironment(t *testing.T) {
	stubFs(t, nil)

	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "vim")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "vim", cfg.Editor)

	t.Setenv("VISUAL", "code --wait")

	cfg, err = Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "code --wait", cfg.Editor)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("KEEPC_TEST_SHELL", "/bin/zsh")
	stubFs(t, map[string]string{cfgPath: `
store_path = "/data/keepc.yaml"
editor     = "hx"
shell      = env("KEEPC_TEST_SHELL")
overwrite  = true
match_mode = "fuzzy"
log_level  = "debug"
`})

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.True(t, cfg.Found)
	assert.Equal(t, "/data/keepc.yaml", cfg.StorePath)
	assert.Equal(t, "hx", cfg.Editor)
	assert.Equal(t, "/bin/zsh", cfg.Shell)
	assert.True(t, cfg.Overwrite)
	assert.Equal(t, matcher.ModeFuzzy, cfg.MatchMode)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_RelativeStorePath(t *testing.T) {
	stubFs(t, map[string]string{cfgPath: `store_path = "snippets.yaml"`})

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(cfgPath), "snippets.yaml"), cfg.StorePath)
}

func TestLoad_EmptyEditorFallsBack(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	stubFs(t, map[string]string{cfgPath: `editor = env("EDITOR")`})

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultEditor, cfg.Editor)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		desc    string
		content string
		also    error
	}{
		{desc: "syntax", content: `store_path = `},
		{desc: "unknown attribute", content: `colour = "red"`},
		{desc: "wrong type", content: `overwrite = "perhaps"`},
		{desc: "unknown function", content: `editor = lower("VI")`},
		{desc: "bad match mode", content: `match_mode = "regex"`, also: matcher.ErrUnknownMode},
		{desc: "bad log level", content: `log_level = "loud"`, also: ctxlog.ErrUnknownLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			stubFs(t, map[string]string{cfgPath: tc.content})

			_, err := Load(cfgPath)
			require.ErrorIs(t, err, ErrParseConfig)

			if tc.also != nil {
				assert.ErrorIs(t, err, tc.also)
			}
		})
	}
}

func TestLoad_NoConfigDir(t *testing.T) {
	stubs := gostub.Stub(&UserConfigDir, func() (string, error) { return "", errors.New("no home") })
	defer stubs.Reset()

	_, err := Load("")
	assert.ErrorIs(t, err, ErrNoConfigDir)
}

func TestShow(t *testing.T) {
	cfg := &Config{
		Path:      cfgPath,
		StorePath: "/data/keepc.yaml",
		Editor:    "vim",
		MatchMode: matcher.ModeSubstring,
	}

	var buf bytes.Buffer
	require.NoError(t, cfg.Show(&buf))

	out := buf.String()
	assert.Contains(t, out, cfgPath)
	assert.Contains(t, out, "defaults, no file found")
	assert.Contains(t, out, "store_path")
	assert.Contains(t, out, "/data/keepc.yaml")
	assert.Contains(t, out, "vim")
	assert.Contains(t, out, "substring")
	assert.Contains(t, out, "false")
}

func TestWriteDefault(t *testing.T) {
	t.Setenv("EDITOR", "micro")
	fs := stubFs(t, nil)

	require.NoError(t, WriteDefault(cfgPath, "/data/keepc.yaml"))

	content, err := afero.ReadFile(fs, cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `env("EDITOR")`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "/data/keepc.yaml", cfg.StorePath)
	assert.Equal(t, "micro", cfg.Editor)
	assert.Equal(t, "warn", cfg.LogLevel)

	err = WriteDefault(cfgPath, "/elsewhere.yaml")
	assert.ErrorIs(t, err, ErrConfigExists)
}
