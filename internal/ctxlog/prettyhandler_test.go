// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestNewPrettyHandler(t *testing.T) {
	handler := NewPrettyHandler(nil)

	require.NotNil(t, handler)
	assert.NotNil(t, handler.h)
	assert.NotNil(t, handler.b)
	assert.NotNil(t, handler.m)
	assert.NotNil(t, handler.writer, "writer defaults to stderr")
	assert.False(t, handler.colour)
}

func TestPrettyHandler_Enabled(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelInfo})

	assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_WithAttrsAndGroupShareState(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{}, WithOutputEmptyAttrs())

	for _, h := range []slog.Handler{
		handler.WithAttrs([]slog.Attr{slog.String("k", "v")}),
		handler.WithGroup("store"),
	} {
		ph, ok := h.(*PrettyHandler)
		require.True(t, ok)
		assert.Same(t, handler.b, ph.b)
		assert.Same(t, handler.m, ph.m)
		assert.True(t, ph.outputEmptyAttrs)
	}
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(&buf))
	logger := slog.New(handler).With("component", "store")

	logger.Info("entry added", "name", "build")

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "entry added")
	assert.Contains(t, out, `"component"`)
	assert.Contains(t, out, `"store"`)
	assert.Contains(t, out, `"build"`)
	assert.NotContains(t, out, "\033[", "colour is off unless requested")
}

func TestPrettyHandler_HandleNoAttrs(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(nil, WithDestinationWriter(&buf))
	rec := slog.NewRecord(time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC), slog.LevelWarn, "plain", 0)

	require.NoError(t, handler.Handle(context.Background(), rec))
	assert.Equal(t, "[09:30:00.000] WARN: plain\n", buf.String())
}

func TestPrettyHandler_ReplaceAttrDropsTime(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(&slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	}, WithDestinationWriter(&buf))

	rec := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)
	require.NoError(t, handler.Handle(context.Background(), rec))
	assert.Equal(t, "ERROR: boom\n", buf.String())
}

func TestPrettyHandler_WriteError(t *testing.T) {
	handler := NewPrettyHandler(nil, WithDestinationWriter(failingWriter{}))
	rec := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)

	assert.ErrorIs(t, handler.Handle(context.Background(), rec), ErrIoWrite)
}
