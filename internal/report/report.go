// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report turns progress events into console output and accumulates
// the final run summary: per-state counts, the failed item list and elapsed
// wall-clock time.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/fanrun/internal/color"
	"github.com/matt-FFFFFF/fanrun/internal/ctxlog"
	"github.com/matt-FFFFFF/fanrun/internal/progress"
)

// Console writes one line per item transition. It implements
// progress.Listener.
type Console struct {
	w  io.Writer
	mu sync.Mutex
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// OnEvent implements progress.Listener.
func (c *Console) OnEvent(e progress.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := e.Timestamp.Format(ctxlog.TimeFormat)

	switch e.Type {
	case progress.EventInitiated:
		fmt.Fprintf(c.w, "%s %s %s: %s\n", ts,
			color.Colorize("Initiated", color.FgCyan), e.Item, e.Message)
	case progress.EventCompleted:
		fmt.Fprintf(c.w, "%s %s %s\n", ts,
			color.Colorize("Completed", color.FgGreen), e.Item)
	case progress.EventFailed:
		detail := fmt.Sprintf("exit code %d", e.ExitCode)
		if e.Abnormal {
			detail = "abnormal termination, no marker written"
		}

		fmt.Fprintf(c.w, "%s %s %s (%s)\n", ts,
			color.Colorize("Failed", color.FgRed), e.Item, detail)
	}
}

// Summary is the aggregate outcome of a run.
type Summary struct {
	Total     int           // number of items supplied
	Succeeded int           // items that reached the Succeeded state
	Failed    []string      // identifiers of items that reached the Failed state
	Elapsed   time.Duration // wall-clock duration of the run
}

// ExitCode returns the process exit status for this summary: 0 when no item
// failed, otherwise 1.
func (s *Summary) ExitCode() int {
	if len(s.Failed) == 0 {
		return 0
	}

	return 1
}

// Err returns nil when every item succeeded, otherwise an aggregate error
// naming each failed item.
func (s *Summary) Err() error {
	var merr *multierror.Error

	for _, item := range s.Failed {
		merr = multierror.Append(merr, fmt.Errorf("item %q failed", item))
	}

	return merr.ErrorOrNil()
}

// Write prints the final summary: counts, elapsed time and the failed item
// identifiers, if any.
func (s *Summary) Write(w io.Writer) error {
	verdict := color.Colorize("OK", color.FgGreen, color.Bold)
	if len(s.Failed) > 0 {
		verdict = color.Colorize("FAILED", color.FgRed, color.Bold)
	}

	_, err := fmt.Fprintf(w, "%s %d succeeded, %d failed, %d total in %s\n",
		verdict, s.Succeeded, len(s.Failed), s.Total, FormatElapsed(s.Elapsed))
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if len(s.Failed) == 0 {
		return nil
	}

	_, err = fmt.Fprintf(w, "Failed items: %s\n", strings.Join(s.Failed, ", "))
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	return nil
}

// FormatElapsed renders a duration as HH:MM:SS.
func FormatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	sec := d / time.Second

	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}
