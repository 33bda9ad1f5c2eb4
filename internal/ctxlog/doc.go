// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-based logger that can be used to log
// messages with different log levels. It uses the slog package for structured
// logging. The log level is set based on an environment variable whose name
// is derived from the executable name, e.g. FANRUN_LOG_LEVEL.
package ctxlog
