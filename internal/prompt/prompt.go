// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package prompt reads interactive answers from the user.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

var (
	// ErrAborted is returned when the user cancels a prompt.
	ErrAborted = errors.New("selection aborted")
	// ErrInvalidChoice is returned when a selection is not one of the offered numbers.
	ErrInvalidChoice = errors.New("invalid selection")
)

// Prompter asks a question and returns the answer without its line ending.
type Prompter interface {
	Prompt(question string) (string, error)
	Close() error
}

var isTerminal = term.IsTerminal

// ForStdin returns a LinePrompter when stdin is a terminal, otherwise a
// ReaderPrompter over stdin so piped input after the answer stays unread.
func ForStdin() Prompter {
	if isTerminal(int(os.Stdin.Fd())) {
		return New()
	}

	return NewReader(os.Stdin, os.Stdout)
}

// LinePrompter reads from the terminal with line editing.
// The terminal is in raw mode only while a prompt is waiting for an answer.
type LinePrompter struct{}

// New returns a LinePrompter.
func New() *LinePrompter {
	return &LinePrompter{}
}

// Prompt implements Prompter.
func (p *LinePrompter) Prompt(question string) (string, error) {
	line := liner.NewLiner()
	defer func() {
		_ = line.Close()
	}()

	line.SetCtrlCAborts(true)

	answer, err := line.Prompt(question)

	switch {
	case err == nil:
		return answer, nil
	case errors.Is(err, liner.ErrPromptAborted), errors.Is(err, io.EOF):
		return "", ErrAborted
	default:
		return "", err
	}
}

// Close implements Prompter. The terminal is already restored after each prompt.
func (p *LinePrompter) Close() error {
	return nil
}

// ReaderPrompter answers prompts from a plain reader. It reads one byte at a
// time so nothing past the answer's line ending is consumed.
type ReaderPrompter struct {
	r io.Reader
	w io.Writer
}

// NewReader returns a ReaderPrompter that writes questions to w and reads answers from r.
func NewReader(r io.Reader, w io.Writer) *ReaderPrompter {
	return &ReaderPrompter{r: r, w: w}
}

// Prompt implements Prompter.
func (p *ReaderPrompter) Prompt(question string) (string, error) {
	if _, err := io.WriteString(p.w, question); err != nil {
		return "", err
	}

	line, err := p.readLine()
	if errors.Is(err, io.EOF) {
		if len(line) == 0 {
			return "", ErrAborted
		}

		err = nil
	}

	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(line), "\r"), nil
}

func (p *ReaderPrompter) readLine() ([]byte, error) {
	var (
		line []byte
		b    [1]byte
	)

	for {
		n, err := p.r.Read(b[:])
		if n == 1 {
			if b[0] == '\n' {
				return line, nil
			}

			line = append(line, b[0])
		}

		if err != nil {
			return line, err
		}
	}
}

// Close implements Prompter.
func (p *ReaderPrompter) Close() error {
	return nil
}

// Choose asks for a number between 1 and n and returns it as a 0-based index.
// An empty answer or "q" aborts.
func Choose(p Prompter, n int, verb string) (int, error) {
	answer, err := p.Prompt(fmt.Sprintf("Select the command to %s [1-%d]: ", verb, n))
	if err != nil {
		return -1, err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" || strings.EqualFold(answer, "q") {
		return -1, ErrAborted
	}

	i, err := strconv.Atoi(answer)
	if err != nil || i < 1 || i > n {
		return -1, fmt.Errorf("%w: %q is not between 1 and %d", ErrInvalidChoice, answer, n)
	}

	return i - 1, nil
}

// Required asks question until a non-blank answer is given.
func Required(p Prompter, question string) (string, error) {
	for {
		answer, err := p.Prompt(question)
		if err != nil {
			return "", err
		}

		if strings.TrimSpace(answer) != "" {
			return answer, nil
		}
	}
}
