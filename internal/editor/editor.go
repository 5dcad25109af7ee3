// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package editor implements the bulk edit round-trip: the store is exported
// to a temporary YAML file, handed to the user's editor and imported again.
// Nothing is written back unless the editor exits zero and every edited
// command is valid.
package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/keepc/internal/ctxlog"
	"github.com/matt-FFFFFF/keepc/internal/entry"
	"github.com/matt-FFFFFF/keepc/internal/executor"
	"github.com/spf13/afero"
)

const header = `# Edit your saved commands, then save and quit.
# Each command needs a unique name and a non-empty body. Delete an item to remove it.
# Quit without saving, or exit the editor with an error, to keep the store unchanged.
`

var (
	// ErrEditorFailed is returned when the editor cannot start or exits non-zero.
	ErrEditorFailed = errors.New("editor failed")
	// ErrInvalidEdit is returned when the edited file cannot be imported.
	ErrInvalidEdit = fmt.Errorf("%w: edited commands are invalid", entry.ErrValidation)
	// ErrExport is returned when the store cannot be written to the temp file.
	ErrExport = errors.New("failed to export commands for editing")
)

// TempFsFactory returns the filesystem holding the temporary edit file.
// The editor is an external process, so in production this must be the OS filesystem.
var TempFsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Target is the store being edited.
type Target interface {
	List() []entry.CommandEntry
	ReplaceAll([]entry.CommandEntry) error
	Persist(context.Context) error
}

type editDocument struct {
	Commands []editRecord `yaml:"commands"`
}

type editRecord struct {
	Name string `yaml:"name"`
	Body string `yaml:"body"`
}

var exportStyles = [][]yaml.EncodeOption{
	{yaml.IndentSequence(true), yaml.UseLiteralStyleIfMultiline(true)},
	{yaml.JSON()},
}

// Export renders entries as the editable document.
func Export(entries []entry.CommandEntry) ([]byte, error) {
	doc := editDocument{Commands: make([]editRecord, 0, len(entries))}
	for _, e := range entries {
		doc.Commands = append(doc.Commands, editRecord{Name: e.Name, Body: e.Body})
	}

	var errs []error

	for _, opts := range exportStyles {
		data, err := yaml.MarshalWithOptions(doc, opts...)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := sameEntries(data, entries); err != nil {
			errs = append(errs, err)
			continue
		}

		return append([]byte(header), data...), nil
	}

	return nil, errors.Join(append([]error{ErrExport}, errs...)...)
}

func sameEntries(data []byte, want []entry.CommandEntry) error {
	got, err := Import(data)
	if err != nil {
		return err
	}

	if len(got) != len(want) {
		return fmt.Errorf("%w: %d commands read back, want %d", ErrExport, len(got), len(want))
	}

	for i := range got {
		if got[i].Name != want[i].Name || got[i].Body != want[i].Body {
			return fmt.Errorf("%w: %q does not round-trip", ErrExport, want[i].Name)
		}
	}

	return nil
}

// Import parses an edited document strictly and validates every command.
// A document with no commands is valid and means an empty store.
func Import(data []byte) ([]entry.CommandEntry, error) {
	if len(bytes.TrimSpace(stripComments(data))) == 0 {
		return []entry.CommandEntry{}, nil
	}

	var doc editDocument
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEdit, err)
	}

	var merr *multierror.Error

	seen := make(map[string]int, len(doc.Commands))
	out := make([]entry.CommandEntry, 0, len(doc.Commands))

	for i, rec := range doc.Commands {
		e, err := entry.Validate(rec.Name, rec.Body)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("command %d: %w", i+1, err))
			continue
		}

		if first, dup := seen[e.Name]; dup {
			merr = multierror.Append(merr, fmt.Errorf("command %d: name %q already used by command %d", i+1, e.Name, first))
			continue
		}

		seen[e.Name] = i + 1
		out = append(out, e)
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, errors.Join(ErrInvalidEdit, err)
	}

	return out, nil
}

func stripComments(data []byte) []byte {
	var b bytes.Buffer

	for line := range bytes.Lines(data) {
		if bytes.HasPrefix(bytes.TrimSpace(line), []byte("#")) {
			continue
		}

		b.Write(line)
	}

	return b.Bytes()
}

// Edit runs the round-trip with editorCmd, a program optionally followed by
// arguments, for example "code --wait". It reports whether the store changed.
func Edit(ctx context.Context, target Target, launcher executor.Launcher, editorCmd string) (bool, error) {
	fields := strings.Fields(editorCmd)
	if len(fields) == 0 {
		return false, fmt.Errorf("%w: no editor configured", ErrEditorFailed)
	}

	logger := ctxlog.Logger(ctx).With("editor", fields[0])

	before, err := Export(target.List())
	if err != nil {
		return false, err
	}

	fs := TempFsFactory()

	f, err := afero.TempFile(fs, "", "keepc-*.yaml")
	if err != nil {
		return false, errors.Join(ErrExport, err)
	}

	path := f.Name()
	defer fs.Remove(path) //nolint:errcheck

	if _, err := f.Write(before); err != nil {
		_ = f.Close()
		return false, errors.Join(ErrExport, err)
	}

	if err := f.Close(); err != nil {
		return false, errors.Join(ErrExport, err)
	}

	logger.Debug("launching editor", "file", path)

	status, err := launcher.Exec(ctx, fields[0], append(fields[1:], path))
	if err != nil {
		return false, errors.Join(ErrEditorFailed, err)
	}

	if !status.Success() {
		return false, fmt.Errorf("%w: %s exited with code %d, commands left unchanged", ErrEditorFailed, fields[0], status.Code)
	}

	after, err := afero.ReadFile(fs, path)
	if err != nil {
		return false, errors.Join(ErrEditorFailed, err)
	}

	if bytes.Equal(before, after) {
		logger.Debug("edit file unchanged")
		return false, nil
	}

	entries, err := Import(after)
	if err != nil {
		return false, err
	}

	if err := target.ReplaceAll(entries); err != nil {
		return false, err
	}

	if err := target.Persist(ctx); err != nil {
		return false, err
	}

	logger.Info("commands updated", "count", len(entries))

	return true, nil
}
