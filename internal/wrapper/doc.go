// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package wrapper generates the per-item retry wrapper scripts and marker
// artifacts used as the side-channel between the spawned processes and the
// orchestrator. Each wrapper is a standalone POSIX shell script that runs the
// rendered command, retries it on non-zero exit up to a configured limit, and
// signals its final outcome by creating a success or failure marker file.
package wrapper
