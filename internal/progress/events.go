// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event represents a real-time update for one item's lifecycle.
// Events are emitted by the orchestrator on every transition to provide
// feedback for the console reporter, the TUI and tests.
type Event struct {
	Item      string    // the item identifier the event belongs to
	Type      EventType // what happened
	Message   string    // human-readable detail, e.g. the rendered command
	Timestamp time.Time // when the event occurred
	ExitCode  int       // process exit code, for terminal events
	Abnormal  bool      // true when the process exited without writing a marker
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventInitiated indicates an item has been admitted into a worker slot.
	EventInitiated EventType = iota
	// EventCompleted indicates the item reached the Succeeded state.
	EventCompleted
	// EventFailed indicates the item reached the Failed state.
	EventFailed
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventInitiated:
		return "initiated"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reporter is the interface for sending progress events. Implementations
// should be non-blocking and tolerate the receiver not listening.
type Reporter interface {
	// Report sends a progress event.
	Report(event Event)
	// Close signals that no more events will be sent and cleans up resources.
	Close()
}

// Listener receives progress events. Implementations should handle events
// quickly to avoid blocking the reporting goroutine.
type Listener interface {
	// OnEvent is called when a progress event is received.
	OnEvent(event Event)
}

// NullReporter is a no-op implementation of Reporter, used when progress
// reporting is not needed.
type NullReporter struct{}

// Report implements Reporter.Report by doing nothing.
func (nr *NullReporter) Report(_ Event) {}

// Close implements Reporter.Close by doing nothing.
func (nr *NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return &NullReporter{}
}
