// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner contains the orchestration engine: a single control
// goroutine drives a FIFO queue of pending items into a bounded set of
// worker slots, launching one wrapper process per item and learning of
// completion only by polling marker artifacts and process-exit state.
//
// Retries are embedded in the generated wrapper, not the control loop, so
// the loop stays O(1) per poll regardless of retry count and a crash
// mid-retry is indistinguishable from a clean failure.
package runner
