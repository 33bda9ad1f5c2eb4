// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	return path
}

func TestStart_ExitZero(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	h, err := Start(ctx, writeScript(t, "exit 0"))
	require.NoError(t, err)

	assert.Positive(t, h.PID())

	require.Eventually(t, h.Exited, 5*time.Second, 10*time.Millisecond, "process should exit")

	code, ok := h.ExitCode()
	assert.True(t, ok)
	assert.Equal(t, 0, code)
}

func TestStart_ExitNonZero(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	h, err := Start(ctx, writeScript(t, "exit 3"))
	require.NoError(t, err)

	require.Eventually(t, h.Exited, 5*time.Second, 10*time.Millisecond, "process should exit")

	code, ok := h.ExitCode()
	assert.True(t, ok)
	assert.Equal(t, 3, code)
}

func TestExitCode_WhileRunning(t *testing.T) {
	ctx := context.Background()
	h, err := Start(ctx, writeScript(t, "sleep 10"))
	require.NoError(t, err)

	assert.False(t, h.Exited(), "process should still be running")

	_, ok := h.ExitCode()
	assert.False(t, ok, "exit code must not be available while running")

	h.Kill(ctx)
	assert.True(t, h.Exited(), "Kill must wait for the process to be reaped")
}

func TestKill_AfterExitIsNoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	h, err := Start(ctx, writeScript(t, "exit 0"))
	require.NoError(t, err)

	require.Eventually(t, h.Exited, 5*time.Second, 10*time.Millisecond)

	h.Kill(ctx)

	code, ok := h.ExitCode()
	assert.True(t, ok)
	assert.Equal(t, 0, code, "exit code must be preserved across a redundant Kill")
}

func TestStart_MissingScript(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()

	// The shell itself starts fine and exits 127 for a missing script.
	h, err := Start(ctx, filepath.Join(t.TempDir(), "missing.sh"))
	require.NoError(t, err)

	require.Eventually(t, h.Exited, 5*time.Second, 10*time.Millisecond)

	code, ok := h.ExitCode()
	assert.True(t, ok)
	assert.NotEqual(t, 0, code)
}
