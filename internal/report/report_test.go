// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/matt-FFFFFF/fanrun/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatElapsed(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   time.Duration
		want string
	}{
		{name: "zero", in: 0, want: "00:00:00"},
		{name: "seconds", in: 8 * time.Second, want: "00:00:08"},
		{name: "sub-second rounds", in: 900 * time.Millisecond, want: "00:00:01"},
		{name: "one of each", in: time.Hour + time.Minute + time.Second, want: "01:01:01"},
		{name: "many hours", in: 25*time.Hour + 59*time.Minute, want: "25:59:00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, FormatElapsed(tc.in))
		})
	}
}

func TestSummaryExitCode(t *testing.T) {
	t.Parallel()

	ok := &Summary{Total: 2, Succeeded: 2}
	assert.Equal(t, 0, ok.ExitCode())

	bad := &Summary{Total: 2, Succeeded: 1, Failed: []string{"b"}}
	assert.Equal(t, 1, bad.ExitCode())
}

func TestSummaryErr(t *testing.T) {
	t.Parallel()

	ok := &Summary{Total: 1, Succeeded: 1}
	assert.NoError(t, ok.Err())

	bad := &Summary{Total: 2, Failed: []string{"a", "b"}}
	err := bad.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `item "a" failed`)
	assert.Contains(t, err.Error(), `item "b" failed`)
}

func TestSummaryWrite(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	s := &Summary{
		Total:     4,
		Succeeded: 3,
		Failed:    []string{"b"},
		Elapsed:   8 * time.Second,
	}

	require.NoError(t, s.Write(buf))

	out := buf.String()
	assert.Contains(t, out, "3 succeeded, 1 failed, 4 total")
	assert.Contains(t, out, "00:00:08")
	assert.Contains(t, out, "Failed items: b")
}

func TestSummaryWrite_NoFailures(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	s := &Summary{Total: 2, Succeeded: 2, Elapsed: time.Second}

	require.NoError(t, s.Write(buf))
	assert.NotContains(t, buf.String(), "Failed items")
}

func TestConsoleOnEvent(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	c := NewConsole(buf)

	now := time.Now()

	c.OnEvent(progress.Event{Item: "eu", Type: progress.EventInitiated, Message: "deploy eu", Timestamp: now})
	c.OnEvent(progress.Event{Item: "eu", Type: progress.EventCompleted, Timestamp: now})
	c.OnEvent(progress.Event{Item: "us", Type: progress.EventFailed, ExitCode: 7, Timestamp: now})
	c.OnEvent(progress.Event{Item: "ap", Type: progress.EventFailed, Abnormal: true, Timestamp: now})

	out := buf.String()
	assert.Contains(t, out, "Initiated")
	assert.Contains(t, out, "deploy eu")
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "exit code 7")
	assert.Contains(t, out, "abnormal termination")
}
