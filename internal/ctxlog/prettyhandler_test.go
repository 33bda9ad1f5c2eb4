// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(NewPrettyHandler(
		&slog.HandlerOptions{Level: slog.LevelDebug},
		WithDestinationWriter(buf),
	))
}

func TestPrettyHandler_WritesToDestination(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := newTestLogger(buf)

	logger.Info("hello", "item", "eu")

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "item")
	assert.Contains(t, out, "eu")
}

func TestPrettyHandler_SuppressesDefaultKeys(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := newTestLogger(buf)

	logger.Warn("plain message")

	out := buf.String()
	assert.Contains(t, out, "plain message")
	assert.NotContains(t, out, `"msg"`, "the message must not be duplicated into the attribute JSON")
	assert.NotContains(t, out, `"level"`)
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := newTestLogger(buf).With("run", "abc123")

	logger.Error("boom")

	out := buf.String()
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "run")
	assert.Contains(t, out, "abc123")
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := newTestLogger(buf).WithGroup("job")

	logger.Info("queued", "item", "us")

	out := buf.String()
	assert.Contains(t, out, "job")
	assert.Contains(t, out, "us")
}

func TestPrettyHandler_RespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(NewPrettyHandler(
		&slog.HandlerOptions{Level: slog.LevelError},
		WithDestinationWriter(buf),
	))

	logger.Info("quiet")
	require.Empty(t, buf.String())

	logger.Error("loud")
	assert.Contains(t, buf.String(), "loud")
}
