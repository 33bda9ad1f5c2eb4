// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress provides real-time progress reporting for item execution.
// The orchestrator emits one event per lifecycle transition; listeners such
// as the console reporter and the TUI consume them without coupling to the
// orchestrator's control loop.
package progress
