// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package entry defines the saved command record and its validation rules.
package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	// ErrValidation is the category shared by every validation failure.
	ErrValidation = errors.New("validation error")
	// ErrEmptyName is returned when the name is empty or only whitespace.
	ErrEmptyName = fmt.Errorf("%w: name must not be empty", ErrValidation)
	// ErrEmptyBody is returned when the body is empty or only whitespace.
	ErrEmptyBody = fmt.Errorf("%w: command must not be empty", ErrValidation)
	// ErrInvalidText is returned when the name or body is not valid UTF-8.
	ErrInvalidText = fmt.Errorf("%w: text must be valid UTF-8", ErrValidation)
)

// CommandEntry is one remembered command.
type CommandEntry struct {
	Name       string    // Reference typed by the user to recall the command.
	Body       string    // Literal shell text, kept byte for byte.
	CreatedAt  time.Time // When the entry was first added.
	ModifiedAt time.Time // When the body last changed.
}

// Validate checks name and body and returns an entry without timestamps.
// Neither value is trimmed or otherwise normalised.
func Validate(name, body string) (CommandEntry, error) {
	if strings.TrimSpace(name) == "" {
		return CommandEntry{}, ErrEmptyName
	}

	if strings.TrimSpace(body) == "" {
		return CommandEntry{}, ErrEmptyBody
	}

	if !utf8.ValidString(name) {
		return CommandEntry{}, fmt.Errorf("%w: name %q", ErrInvalidText, name)
	}

	if !utf8.ValidString(body) {
		return CommandEntry{}, fmt.Errorf("%w: command of %q", ErrInvalidText, name)
	}

	return CommandEntry{Name: name, Body: body}, nil
}

// New validates name and body and stamps both timestamps with now.
func New(name, body string, now time.Time) (CommandEntry, error) {
	e, err := Validate(name, body)
	if err != nil {
		return CommandEntry{}, err
	}

	e.CreatedAt = now
	e.ModifiedAt = now

	return e, nil
}
