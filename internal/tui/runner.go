// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/fanrun/internal/progress"
	"github.com/matt-FFFFFF/fanrun/internal/report"
)

// RunFunc executes the run and returns its summary. It must honour context
// cancellation so that quitting the TUI aborts the run.
type RunFunc func(context.Context) (*report.Summary, error)

// Run displays the TUI while fn executes, fed by events from the reporter.
// It returns fn's summary and error once both the run and the TUI have
// finished. Quitting the TUI cancels the run context.
func Run(ctx context.Context, items []string, reporter *progress.ChannelReporter, fn RunFunc) (*report.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(NewModel(items), tea.WithContext(ctx))

	// Forward progress events into the TUI program.
	go func() {
		for e := range reporter.Events() {
			program.Send(EventMsg{Event: e})
		}
	}()

	var (
		summary *report.Summary
		runErr  error
	)

	done := make(chan struct{})

	go func() {
		defer close(done)

		summary, runErr = fn(ctx)
		reporter.Close()
		program.Send(DoneMsg{Summary: summary, Err: runErr})
	}()

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		cancel()
		<-done

		return summary, err
	}

	// The user may have quit before the run finished; cancel and wait for
	// the runner to wind down so the summary read below is safe.
	cancel()
	<-done

	return summary, runErr
}
