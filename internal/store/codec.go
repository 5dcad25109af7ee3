// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/keepc/internal/entry"
)

// FileVersion is the only store file version this build reads and writes.
const FileVersion = 1

var (
	// ErrUnsupportedVersion is returned when the file declares another version.
	ErrUnsupportedVersion = errors.New("unsupported store file version")
	// ErrBadTimestamp is returned when a timestamp is not RFC 3339.
	ErrBadTimestamp = errors.New("invalid timestamp")
	// ErrRoundTrip is returned when encoded data does not decode to the same entries.
	ErrRoundTrip = errors.New("encoded store does not round-trip")
)

type fileDocument struct {
	Version  int          `yaml:"version"`
	Commands []fileRecord `yaml:"commands"`
}

type fileRecord struct {
	Name       string `yaml:"name"`
	Body       string `yaml:"body"`
	CreatedAt  string `yaml:"created_at,omitempty"`
	ModifiedAt string `yaml:"modified_at,omitempty"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
	}

	return t.UTC(), nil
}

// encode renders entries in store file format.
func encode(entries []entry.CommandEntry) ([]byte, error) {
	doc := fileDocument{
		Version:  FileVersion,
		Commands: make([]fileRecord, 0, len(entries)),
	}

	for _, e := range entries {
		doc.Commands = append(doc.Commands, fileRecord{
			Name:       e.Name,
			Body:       e.Body,
			CreatedAt:  formatTime(e.CreatedAt),
			ModifiedAt: formatTime(e.ModifiedAt),
		})
	}

	var errs []error

	// Block style first; JSON style quotes every string.
	for _, opts := range encodeStyles {
		data, err := yaml.MarshalWithOptions(doc, opts...)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := verifyRoundTrip(data, entries); err != nil {
			errs = append(errs, err)
			continue
		}

		return data, nil
	}

	return nil, errors.Join(errs...)
}

var encodeStyles = [][]yaml.EncodeOption{
	{yaml.IndentSequence(true), yaml.UseLiteralStyleIfMultiline(true)},
	{yaml.JSON()},
}

// verifyRoundTrip makes sure we never write something we could not read back.
func verifyRoundTrip(data []byte, entries []entry.CommandEntry) error {
	back, err := decode(data)
	if err != nil {
		return errors.Join(ErrRoundTrip, err)
	}

	if len(back) != len(entries) {
		return ErrRoundTrip
	}

	for i := range back {
		if back[i].Name != entries[i].Name || back[i].Body != entries[i].Body {
			return fmt.Errorf("%w: entry %q", ErrRoundTrip, entries[i].Name)
		}
	}

	return nil
}

// decode parses store file data strictly. Empty input is an empty store.
func decode(data []byte) ([]entry.CommandEntry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []entry.CommandEntry{}, nil
	}

	var doc fileDocument
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}

	if doc.Version != FileVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	var merr *multierror.Error

	seen := make(map[string]struct{}, len(doc.Commands))
	entries := make([]entry.CommandEntry, 0, len(doc.Commands))

	for i, rec := range doc.Commands {
		e, err := entry.Validate(rec.Name, rec.Body)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("command %d: %w", i+1, err))
			continue
		}

		if _, dup := seen[e.Name]; dup {
			merr = multierror.Append(merr, fmt.Errorf("command %d: %w: %q", i+1, ErrDuplicateName, e.Name))
			continue
		}

		seen[e.Name] = struct{}{}

		if e.CreatedAt, err = parseTime(rec.CreatedAt); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("command %d: created_at: %w", i+1, err))
		}

		if e.ModifiedAt, err = parseTime(rec.ModifiedAt); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("command %d: modified_at: %w", i+1, err))
		}

		entries = append(entries, e)
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}

	return entries, nil
}
