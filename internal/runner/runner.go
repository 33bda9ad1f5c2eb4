// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/matt-FFFFFF/fanrun/internal/ctxlog"
	"github.com/matt-FFFFFF/fanrun/internal/launcher"
	"github.com/matt-FFFFFF/fanrun/internal/progress"
	"github.com/matt-FFFFFF/fanrun/internal/render"
	"github.com/matt-FFFFFF/fanrun/internal/report"
	"github.com/matt-FFFFFF/fanrun/internal/wrapper"
	"github.com/spf13/afero"
)

const (
	// DefaultRetries is the retry limit used when none is configured.
	DefaultRetries = 3
	// ParallelismEnvVar optionally supplies the default worker-slot count.
	ParallelismEnvVar = "FANRUN_PARALLELISM"

	fallbackParallelism = 4
	defaultPollInterval = 100 * time.Millisecond
	defaultWorkDirName  = "fanrun"
)

var (
	// ErrNoTemplate is returned when no command template is supplied.
	ErrNoTemplate = errors.New("no command template supplied")
	// ErrNoItems is returned when the item list is empty.
	ErrNoItems = errors.New("no items supplied")
)

// Options configures a Runner. Zero values fall back to defaults.
type Options struct {
	Template     string            // command template containing the placeholder
	Placeholder  string            // placeholder token, normalized before use
	Items        []string          // item identifiers, at least one required
	Retries      int               // per-item attempt limit inside the wrapper
	Parallelism  int               // worker-slot count, 0 means default
	WorkDir      string            // side-channel directory for scripts and markers
	FS           afero.Fs          // filesystem, defaults to the OS filesystem
	Reporter     progress.Reporter // progress sink, defaults to a no-op
	PollInterval time.Duration     // control loop poll interval
}

// Runner owns the FIFO queue of pending items and the bounded set of running
// jobs. All state is owned and mutated exclusively by the control goroutine
// inside Run; child processes communicate outcomes only through the marker
// side-channel.
type Runner struct {
	template string
	token    render.Token
	retries  int
	slots    int
	workDir  string
	fs       afero.Fs
	reporter progress.Reporter
	poll     time.Duration

	pending []string
	running map[string]*Job
	gen     *wrapper.Generator
	summary *report.Summary
}

// New validates the options and creates a Runner. Duplicate items are
// collapsed onto their first occurrence so that every identifier ends in
// exactly one terminal state.
func New(opts Options) (*Runner, error) {
	if opts.Template == "" {
		return nil, ErrNoTemplate
	}

	items := dedupe(opts.Items)
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	retries := opts.Retries
	if retries <= 0 {
		retries = DefaultRetries
	}

	slots := opts.Parallelism
	if slots <= 0 {
		slots = DefaultParallelism()
	}

	fs := opts.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = filepath.Join(os.TempDir(), defaultWorkDirName)
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = progress.NewNullReporter()
	}

	poll := opts.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}

	return &Runner{
		template: opts.Template,
		token:    render.NormalizeToken(opts.Placeholder),
		retries:  retries,
		slots:    slots,
		workDir:  workDir,
		fs:       fs,
		reporter: reporter,
		poll:     poll,
		pending:  items,
		running:  make(map[string]*Job),
		summary:  &report.Summary{Total: len(items)},
	}, nil
}

// Run drives the control loop until every item has reached a terminal state.
// It returns the run summary; the error is non-nil only for infrastructure
// failures or context cancellation, never for per-item command failures.
func (r *Runner) Run(ctx context.Context) (*report.Summary, error) {
	start := time.Now()

	if err := wrapper.Purge(r.fs, r.workDir); err != nil {
		return nil, err
	}

	r.gen = wrapper.NewGenerator(r.fs, r.workDir, r.retries)

	ctxlog.Debug(ctx, "run starting",
		"items", r.summary.Total,
		"slots", r.slots,
		"retries", r.retries,
		"workDir", r.workDir)

	for len(r.pending) > 0 || len(r.running) > 0 {
		if err := ctx.Err(); err != nil {
			r.abort(ctx)
			r.summary.Elapsed = time.Since(start)

			return r.summary, err
		}

		r.reconcile(ctx)
		r.admit(ctx)

		if len(r.pending) > 0 || len(r.running) > 0 {
			r.sleep(ctx)
		}
	}

	r.summary.Elapsed = time.Since(start)

	return r.summary, nil
}

// admit dequeues items into free worker slots: render the command, generate
// the wrapper, launch it and record the Job as running.
func (r *Runner) admit(ctx context.Context) {
	for len(r.running) < r.slots && len(r.pending) > 0 {
		item := r.pending[0]
		r.pending = r.pending[1:]

		job := &Job{
			Item:    item,
			Command: render.Command(r.template, r.token, item),
			State:   StatePending,
		}

		art, err := r.gen.Generate(item, job.Command)
		if err != nil {
			ctxlog.Error(ctx, "wrapper generation failed", "item", item, "error", err)
			r.recordFailure(job, -1, true)

			continue
		}

		job.Artifacts = art

		handle, err := launcher.Start(ctx, art.Script)
		if err != nil {
			ctxlog.Error(ctx, "launch failed", "item", item, "error", err)
			r.recordFailure(job, -1, true)

			continue
		}

		job.Handle = handle
		job.State = StateRunning
		r.running[item] = job

		r.reporter.Report(progress.Event{
			Item:      item,
			Type:      progress.EventInitiated,
			Message:   job.Command,
			Timestamp: time.Now(),
		})
	}
}

// sleep is the sole suspension point of the control loop.
func (r *Runner) sleep(ctx context.Context) {
	t := time.NewTimer(r.poll)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// abort kills any still-running processes after context cancellation.
// The already-recorded outcomes stand; unfinished items stay non-terminal.
func (r *Runner) abort(ctx context.Context) {
	for item, job := range r.running {
		ctxlog.Warn(ctx, "run cancelled, killing process", "item", item, "pid", job.Handle.PID())
		job.Handle.Kill(ctx)
	}
}

func (r *Runner) recordFailure(job *Job, exitCode int, abnormal bool) {
	job.State = StateFailed
	r.summary.Failed = append(r.summary.Failed, job.Item)
	r.reporter.Report(progress.Event{
		Item:      job.Item,
		Type:      progress.EventFailed,
		Timestamp: time.Now(),
		ExitCode:  exitCode,
		Abnormal:  abnormal,
	})
}

func (r *Runner) recordSuccess(job *Job) {
	job.State = StateSucceeded
	r.summary.Succeeded++
	r.reporter.Report(progress.Event{
		Item:      job.Item,
		Type:      progress.EventCompleted,
		Timestamp: time.Now(),
	})
}

// DefaultParallelism returns the worker-slot count used when none is
// configured: the FANRUN_PARALLELISM environment variable if set to a
// positive integer, then the number of processing cores, then an absolute
// fallback of 4.
func DefaultParallelism() int {
	if v := os.Getenv(ParallelismEnvVar); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}

	if n := runtime.NumCPU(); n > 0 {
		return n
	}

	return fallbackParallelism
}

// dedupe removes duplicate items, preserving order of first appearance.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))

	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}

		seen[item] = struct{}{}
		out = append(out, item)
	}

	return out
}
