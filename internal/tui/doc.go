// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides an optional live terminal view of a run: one line per
// item with its lifecycle state, driven by progress events. It never touches
// orchestrator state directly.
package tui
