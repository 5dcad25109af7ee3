// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/Azure/golden"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/matt-FFFFFF/keepc/internal/matcher"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

const (
	filePerm = 0o600
	dirPerm  = 0o700
)

type attribute struct {
	name  string
	value cty.Value
}

func (c *Config) attributes() []attribute {
	shell := cty.NullVal(cty.String)
	if c.Shell != "" {
		shell = cty.StringVal(c.Shell)
	}

	level := cty.NullVal(cty.String)
	if c.LogLevel != "" {
		level = cty.StringVal(c.LogLevel)
	}

	return []attribute{
		{name: "store_path", value: cty.StringVal(c.StorePath)},
		{name: "editor", value: cty.StringVal(c.Editor)},
		{name: "shell", value: shell},
		{name: "overwrite", value: cty.BoolVal(c.Overwrite)},
		{name: "match_mode", value: cty.StringVal(c.MatchMode.String())},
		{name: "log_level", value: level},
	}
}

// Show writes the effective configuration as HCL-style attribute lines.
func (c *Config) Show(w io.Writer) error {
	source := "defaults, no file found"
	if c.Found {
		source = "loaded"
	}

	if _, err := fmt.Fprintf(w, "# %s (%s)\n", c.Path, source); err != nil {
		return err
	}

	for _, a := range c.attributes() {
		if _, err := fmt.Fprintf(w, "%-10s = %s\n", a.name, golden.CtyValueToString(a.value)); err != nil {
			return err
		}
	}

	return nil
}

// Template returns a starter configuration file with every attribute present.
// The editor attribute reads $EDITOR when the file is evaluated.
func Template(storePath string) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.AppendUnstructuredTokens(hclwrite.Tokens{
		{Type: hclsyntax.TokenComment, Bytes: []byte("# keepc configuration. Every attribute is optional.\n")},
	})
	body.SetAttributeValue("store_path", cty.StringVal(storePath))
	body.SetAttributeRaw("editor", hclwrite.TokensForFunctionCall("env", hclwrite.TokensForValue(cty.StringVal("EDITOR"))))
	body.SetAttributeValue("overwrite", cty.False)
	body.SetAttributeValue("match_mode", cty.StringVal(matcher.ModeTokens.String()))
	body.SetAttributeValue("log_level", cty.StringVal("warn"))

	return hclwrite.Format(f.Bytes())
}

// WriteDefault creates the configuration file at path from Template.
// An existing file is never overwritten.
func WriteDefault(path, storePath string) error {
	afs := FsFactory()

	if _, err := afs.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := afs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}

	return afero.WriteFile(afs, path, Template(storePath), filePerm)
}
