// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"github.com/matt-FFFFFF/fanrun/internal/launcher"
	"github.com/matt-FFFFFF/fanrun/internal/wrapper"
)

// State is the lifecycle state of an item. Transitions are
// Pending -> Running -> {Succeeded, Failed}; terminal states are final.
type State int

const (
	// StatePending means the item is queued and has no worker slot yet.
	StatePending State = iota
	// StateRunning means the item occupies a worker slot.
	StateRunning
	// StateSucceeded means the item's command exited zero on some attempt.
	StateSucceeded
	// StateFailed means retries were exhausted or the process terminated
	// without producing a marker.
	StateFailed
)

// String implements the Stringer interface for State.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Job is the runtime unit for one item while it is active. A Job is owned
// exclusively by the Runner's control loop for its lifetime.
type Job struct {
	Item      string             // the item identifier
	Command   string             // the rendered command string
	Artifacts *wrapper.Artifacts // wrapper script and marker paths
	Handle    *launcher.Handle   // process handle, nil until launched
	State     State              // current lifecycle state
}
