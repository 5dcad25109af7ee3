// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/keepc/internal/config"
	"github.com/matt-FFFFFF/keepc/internal/ctxlog"
	"github.com/matt-FFFFFF/keepc/internal/entry"
	"github.com/matt-FFFFFF/keepc/internal/executor"
	"github.com/matt-FFFFFF/keepc/internal/matcher"
	"github.com/matt-FFFFFF/keepc/internal/prompt"
	"github.com/matt-FFFFFF/keepc/internal/render"
	"github.com/matt-FFFFFF/keepc/internal/store"
)

var (
	// ErrNoApp is returned when a verb runs without an App in its context.
	ErrNoApp = errors.New("application state missing from context")
	// ErrNoMatch is returned when a pattern selects no command.
	ErrNoMatch = errors.New("no commands found matching")
)

// Executor runs stored commands and other programs such as the editor.
type Executor interface {
	executor.Launcher
	Run(ctx context.Context, e entry.CommandEntry) (executor.ExitStatus, error)
}

// App is the state shared by every verb.
type App struct {
	Config   *config.Config
	Store    *store.Store
	Executor Executor
	Prompter prompt.Prompter
	Stdout   io.Writer
	Stderr   io.Writer
	Colour   bool
}

type appKey struct{}

// WithApp returns a copy of ctx carrying app.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// FromContext returns the App stored by WithApp.
func FromContext(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, ErrNoApp
	}

	return app, nil
}

// NewApp opens the store named by cfg. A corrupt store is not an error here,
// verbs that touch the store report it through Ready.
func NewApp(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer, colour bool) (*App, error) {
	st, err := store.Open(ctx, cfg.StorePath)
	if err != nil && st.Corrupt() == nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Store:    st,
		Executor: executor.New(cfg.Shell),
		Prompter: prompt.ForStdin(),
		Stdout:   stdout,
		Stderr:   stderr,
		Colour:   colour,
	}, nil
}

// Ready returns the load error of the store, with a hint naming the file.
func (a *App) Ready() error {
	err := a.Store.Corrupt()
	if err == nil {
		return nil
	}

	if errors.Is(err, store.ErrCorruptStore) {
		return fmt.Errorf("%w\nhint: repair or move %s, keepc will not modify it until it loads cleanly", err, a.Store.Path())
	}

	return err
}

// Printer returns a renderer for standard output.
func (a *App) Printer() *render.Printer {
	return render.New(a.Stdout, a.Colour)
}

// Find returns the entries matching pattern in the configured match mode.
func (a *App) Find(pattern string) []entry.CommandEntry {
	return matcher.Match(pattern, a.Store.List(), a.Config.MatchMode)
}

// Select resolves args to a single entry. An exact name is used directly,
// otherwise the matches are listed and the user picks one.
func (a *App) Select(ctx context.Context, args []string, verb string) (entry.CommandEntry, error) {
	pattern := strings.Join(args, " ")

	if e, ok := a.Store.Get(pattern); ok {
		return e, nil
	}

	matches := a.Find(pattern)
	if len(matches) == 0 {
		return entry.CommandEntry{}, fmt.Errorf("%w '%s'", ErrNoMatch, pattern)
	}

	ctxlog.Debug(ctx, "selecting from matches", "pattern", pattern, "count", len(matches))

	p := a.Printer()
	if err := p.Message(fmt.Sprintf("Found %d matching commands:", len(matches))); err != nil {
		return entry.CommandEntry{}, err
	}

	if err := p.Numbered(matches); err != nil {
		return entry.CommandEntry{}, err
	}

	i, err := prompt.Choose(a.Prompter, len(matches), verb)
	if err != nil {
		return entry.CommandEntry{}, err
	}

	// The chosen command may run next and must get the terminal back untouched.
	if err := a.Prompter.Close(); err != nil {
		return entry.CommandEntry{}, err
	}

	return matches[i], nil
}

// Close releases the terminal held by the prompter.
func (a *App) Close() error {
	if a.Prompter == nil {
		return nil
	}

	return a.Prompter.Close()
}
