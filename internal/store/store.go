// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/keepc/internal/ctxlog"
	"github.com/matt-FFFFFF/keepc/internal/entry"
	"github.com/spf13/afero"
)

var (
	// ErrStore is the category shared by every store failure.
	ErrStore = errors.New("store error")
	// ErrDuplicateName is returned when adding a name that is already saved.
	ErrDuplicateName = fmt.Errorf("%w: a command with this name already exists", ErrStore)
	// ErrNotFound is returned when a name is not saved.
	ErrNotFound = fmt.Errorf("%w: no such command", ErrStore)
	// ErrCorruptStore is returned when the store file cannot be parsed.
	ErrCorruptStore = fmt.Errorf("%w: store file is corrupt", ErrStore)
	// ErrPersistFailure is returned when the store file cannot be written.
	ErrPersistFailure = fmt.Errorf("%w: could not save store file", ErrStore)
	// ErrInvalidEntries is returned by ReplaceAll when the new set is rejected.
	ErrInvalidEntries = fmt.Errorf("%w: invalid commands", entry.ErrValidation)
)

// Store is an insertion ordered mapping from name to entry, backed by one file.
// It is not safe for concurrent use.
type Store struct {
	fs      afero.Fs
	path    string
	entries []entry.CommandEntry
	index   map[string]int
	corrupt error
}

// New returns an empty store for the file at path. Call Load to read it.
func New(fs afero.Fs, path string) *Store {
	return &Store{
		fs:    fs,
		path:  path,
		index: make(map[string]int),
	}
}

// Open creates a store on the FsFactory filesystem and loads it.
// On ErrCorruptStore the returned store is still usable for Path and Corrupt.
func Open(ctx context.Context, path string) (*Store, error) {
	s := New(FsFactory(), path)

	return s, s.Load(ctx)
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Corrupt returns the load error that made the store refuse mutations, or nil.
func (s *Store) Corrupt() error {
	return s.corrupt
}

// Load replaces the in-memory entries with the content of the backing file.
// A missing file is an empty store.
func (s *Store) Load(ctx context.Context) error {
	logger := ctxlog.Logger(ctx).With("path", s.path)

	data, err := afero.ReadFile(s.fs, s.path)

	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("store file does not exist, starting empty")
		s.set(nil)
		s.corrupt = nil

		return nil
	case err != nil:
		s.set(nil)
		s.corrupt = fmt.Errorf("%w: %w", ErrStore, err)

		return s.corrupt
	}

	entries, err := decode(data)
	if err != nil {
		s.set(nil)
		s.corrupt = fmt.Errorf("%w: %s: %w", ErrCorruptStore, s.path, err)
		logger.Debug("store file is corrupt", "error", err)

		return s.corrupt
	}

	s.set(entries)
	s.corrupt = nil
	logger.Debug("store loaded", "entries", len(entries))

	return nil
}

func (s *Store) set(entries []entry.CommandEntry) {
	s.entries = entries
	s.index = make(map[string]int, len(entries))

	for i, e := range entries {
		s.index[e.Name] = i
	}
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// List returns a copy of every entry in insertion order.
func (s *Store) List() []entry.CommandEntry {
	return slices.Clone(s.entries)
}

// Get returns the entry with the given name.
func (s *Store) Get(name string) (entry.CommandEntry, bool) {
	i, ok := s.index[name]
	if !ok {
		return entry.CommandEntry{}, false
	}

	return s.entries[i], true
}

// Add appends e. An existing name fails with ErrDuplicateName unless overwrite
// is set, in which case the body is replaced in place and CreatedAt is kept.
func (s *Store) Add(e entry.CommandEntry, overwrite bool) error {
	if s.corrupt != nil {
		return s.corrupt
	}

	e, err := entry.Validate(e.Name, e.Body)
	if err != nil {
		return err
	}

	now := Now()

	if i, ok := s.index[e.Name]; ok {
		if !overwrite {
			return fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}

		if s.entries[i].Body != e.Body {
			s.entries[i].Body = e.Body
			s.entries[i].ModifiedAt = now
		}

		return nil
	}

	e.CreatedAt = now
	e.ModifiedAt = now
	s.index[e.Name] = len(s.entries)
	s.entries = append(s.entries, e)

	return nil
}

// Remove deletes the entry with the given name.
func (s *Store) Remove(name string) error {
	if s.corrupt != nil {
		return s.corrupt
	}

	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	s.set(slices.Delete(s.entries, i, i+1))

	return nil
}

// ReplaceAll swaps the whole content for entries, which must be valid and
// uniquely named. Nothing changes if any entry is rejected. Surviving names
// keep their CreatedAt; ModifiedAt moves only when the body changed.
func (s *Store) ReplaceAll(entries []entry.CommandEntry) error {
	if s.corrupt != nil {
		return s.corrupt
	}

	var merr *multierror.Error

	now := Now()
	seen := make(map[string]struct{}, len(entries))
	next := make([]entry.CommandEntry, 0, len(entries))

	for i, in := range entries {
		e, err := entry.Validate(in.Name, in.Body)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("command %d: %w", i+1, err))
			continue
		}

		if _, dup := seen[e.Name]; dup {
			merr = multierror.Append(merr, fmt.Errorf("command %d: duplicate name %q", i+1, e.Name))
			continue
		}

		seen[e.Name] = struct{}{}

		if old, ok := s.Get(e.Name); ok {
			e.CreatedAt = old.CreatedAt
			e.ModifiedAt = old.ModifiedAt

			if old.Body != e.Body {
				e.ModifiedAt = now
			}
		} else {
			e.CreatedAt = now
			e.ModifiedAt = now
		}

		next = append(next, e)
	}

	if err := merr.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalidEntries, err)
	}

	s.set(next)

	return nil
}

// Persist writes the entries to the backing file atomically.
// On failure the previous file content is left untouched.
func (s *Store) Persist(ctx context.Context) error {
	if s.corrupt != nil {
		return s.corrupt
	}

	logger := ctxlog.Logger(ctx).With("path", s.path)

	data, err := encode(s.entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistFailure, err)
	}

	if err := writeAtomic(s.fs, s.path, data); err != nil {
		logger.Debug("persist failed", "error", err)
		return fmt.Errorf("%w: %w", ErrPersistFailure, err)
	}

	logger.Debug("store persisted", "entries", len(s.entries), "bytes", len(data))

	return nil
}
