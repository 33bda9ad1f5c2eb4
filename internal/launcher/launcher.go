// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package launcher starts wrapper scripts as detached child processes and
// returns handles that expose exit detection and forced termination. No
// output is streamed; the orchestrator learns outcomes through the marker
// side-channel, so child stdio is discarded.
package launcher

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/matt-FFFFFF/fanrun/internal/ctxlog"
)

const shell = "/bin/sh"

// ErrCouldNotStartProcess is returned when the process could not be started.
var ErrCouldNotStartProcess = errors.New("could not start process")

// Handle is a non-blocking view onto a running child process.
type Handle struct {
	cmd  *exec.Cmd
	done chan struct{}
}

// Start launches the wrapper script via the shell and returns immediately.
// A background goroutine reaps the process so that Exited never blocks.
func Start(ctx context.Context, script string) (*Handle, error) {
	cmd := exec.Command(shell, script)

	if err := cmd.Start(); err != nil {
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	ctxlog.Debug(ctx, "process started", "pid", cmd.Process.Pid, "script", script)

	h := &Handle{
		cmd:  cmd,
		done: make(chan struct{}),
	}

	go func() {
		_ = cmd.Wait()
		close(h.done)
	}()

	return h, nil
}

// PID returns the process identifier of the child.
func (h *Handle) PID() int {
	return h.cmd.Process.Pid
}

// Exited reports whether the child process has terminated.
func (h *Handle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// ExitCode returns the child's exit code. The boolean is false while the
// process is still running.
func (h *Handle) ExitCode() (int, bool) {
	if !h.Exited() {
		return 0, false
	}

	return h.cmd.ProcessState.ExitCode(), true
}

// Kill forcibly terminates the child process and waits for it to be reaped.
// It is a no-op if the process has already exited.
func (h *Handle) Kill(ctx context.Context) {
	if h.Exited() {
		return
	}

	if err := h.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		ctxlog.Error(ctx, "process kill error", "pid", h.cmd.Process.Pid, "error", err)
	}

	<-h.done

	ctxlog.Debug(ctx, "process killed", "pid", h.cmd.Process.Pid)
}
