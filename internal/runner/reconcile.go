// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"time"

	"github.com/matt-FFFFFF/fanrun/internal/ctxlog"
	"github.com/spf13/afero"
)

// markerRetryDelay is the pause before the single marker-removal retry.
const markerRetryDelay = 50 * time.Millisecond

// outcome classifies one poll of a running job.
type outcome int

const (
	outcomeRunning outcome = iota
	outcomeSucceeded
	outcomeFailed
	outcomeAbnormal
)

// reconcile polls every running job, removes those with a terminal outcome
// from the running set, reclaims their process handles and hands the outcome
// to the reporter. Each job is classified independently; an error in one
// item's handling never blocks another's progress.
func (r *Runner) reconcile(ctx context.Context) {
	for item, job := range r.running {
		oc := r.classify(ctx, job)
		if oc == outcomeRunning {
			continue
		}

		delete(r.running, item)

		// Reclaim a lingering handle; this never terminates a still-active
		// attempt because classification already observed a terminal outcome.
		job.Handle.Kill(ctx)

		exitCode, _ := job.Handle.ExitCode()

		switch oc {
		case outcomeSucceeded:
			r.recordSuccess(job)
		case outcomeFailed:
			r.recordFailure(job, exitCode, false)
		case outcomeAbnormal:
			ctxlog.Warn(ctx, "process terminated without writing a marker",
				"item", item, "exitCode", exitCode)
			r.recordFailure(job, exitCode, true)
		}
	}
}

// classify checks, in order: success marker, failure marker, process exit.
// Markers are consumed immediately when observed, before the item is
// reported.
func (r *Runner) classify(ctx context.Context, job *Job) outcome {
	if ok, _ := afero.Exists(r.fs, job.Artifacts.SuccessMarker); ok {
		r.removeMarker(ctx, job.Artifacts.SuccessMarker)

		return outcomeSucceeded
	}

	if ok, _ := afero.Exists(r.fs, job.Artifacts.FailureMarker); ok {
		r.removeMarker(ctx, job.Artifacts.FailureMarker)

		return outcomeFailed
	}

	if job.Handle.Exited() {
		return outcomeAbnormal
	}

	return outcomeRunning
}

// removeMarker consumes a just-observed marker. Removal is retried once
// after a short delay; a second failure is swallowed because the in-memory
// outcome is authoritative and is not revisited.
func (r *Runner) removeMarker(ctx context.Context, path string) {
	if err := r.fs.Remove(path); err == nil {
		return
	}

	time.Sleep(markerRetryDelay)

	if err := r.fs.Remove(path); err != nil {
		ctxlog.Debug(ctx, "marker removal failed, outcome already recorded",
			"path", path, "error", err)
	}
}
