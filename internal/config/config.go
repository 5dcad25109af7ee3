// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the optional keepc HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/matt-FFFFFF/keepc/internal/ctxlog"
	"github.com/matt-FFFFFF/keepc/internal/matcher"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

const (
	// AppDirName is the directory under the user config directory holding keepc files.
	AppDirName = "keepc"
	// FileName is the name of the configuration file.
	FileName = "config.hcl"
	// StoreFileName is the default name of the store file.
	StoreFileName = "commands.yaml"
	// DefaultEditor is used when neither the config nor the environment names one.
	DefaultEditor = "nano"
)

var (
	// ErrParseConfig is returned when the configuration file cannot be read or decoded.
	ErrParseConfig = errors.New("failed to parse configuration file")
	// ErrNoConfigDir is returned when the user config directory cannot be determined.
	ErrNoConfigDir = errors.New("cannot determine user configuration directory")
	// ErrConfigExists is returned by WriteDefault when the file is already present.
	ErrConfigExists = errors.New("configuration file already exists")
)

// Config is the resolved configuration.
type Config struct {
	// Path is the configuration file that was read, or would have been.
	Path string
	// Found reports whether Path existed.
	Found     bool
	StorePath string
	Editor    string
	// Shell is empty when the executor should resolve the shell itself.
	Shell     string
	Overwrite bool
	MatchMode matcher.Mode
	LogLevel  string
}

type fileConfig struct {
	StorePath *string `hcl:"store_path,optional"`
	Editor    *string `hcl:"editor,optional"`
	Shell     *string `hcl:"shell,optional"`
	Overwrite *bool   `hcl:"overwrite,optional"`
	MatchMode *string `hcl:"match_mode,optional"`
	LogLevel  *string `hcl:"log_level,optional"`
}

var envFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.StringVal(os.Getenv(args[0].AsString())), nil
	},
})

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env": envFunc,
		},
	}
}

// DefaultDir returns the keepc directory under the user config directory.
func DefaultDir() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", errors.Join(ErrNoConfigDir, err)
	}

	return filepath.Join(dir, AppDirName), nil
}

// DefaultPath returns the default configuration file path.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, FileName), nil
}

// Defaults returns the configuration used when path does not exist.
func Defaults(path string) *Config {
	return &Config{
		Path:      path,
		StorePath: filepath.Join(filepath.Dir(path), StoreFileName),
		Editor:    defaultEditor(),
		MatchMode: matcher.ModeTokens,
	}
}

func defaultEditor() string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}

	return DefaultEditor
}

// Load reads the configuration at path, or at DefaultPath when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}

		path = p
	}

	cfg := Defaults(path)

	content, err := afero.ReadFile(FsFactory(), path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return nil, errors.Join(ErrParseConfig, err)
	}

	cfg.Found = true

	file, diags := hclsyntax.ParseConfig(content, path, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, errors.Join(ErrParseConfig, diags)
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &fc); diags.HasErrors() {
		return nil, errors.Join(ErrParseConfig, diags)
	}

	if err := cfg.apply(fc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseConfig, path, err)
	}

	return cfg, nil
}

func (c *Config) apply(fc fileConfig) error {
	if v := trimmed(fc.StorePath); v != "" {
		if !filepath.IsAbs(v) {
			v = filepath.Join(filepath.Dir(c.Path), v)
		}

		c.StorePath = v
	}

	if v := trimmed(fc.Editor); v != "" {
		c.Editor = v
	}

	c.Shell = trimmed(fc.Shell)

	if fc.Overwrite != nil {
		c.Overwrite = *fc.Overwrite
	}

	if v := trimmed(fc.MatchMode); v != "" {
		mode, err := matcher.ParseMode(v)
		if err != nil {
			return fmt.Errorf("match_mode: %w", err)
		}

		c.MatchMode = mode
	}

	if v := trimmed(fc.LogLevel); v != "" {
		if _, err := ctxlog.ParseLevel(v); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}

		c.LogLevel = v
	}

	return nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}

	return strings.TrimSpace(*s)
}
