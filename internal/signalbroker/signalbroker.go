// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker delivers OS termination signals to the run loop.
//
// A single interrupt is deliberately not fatal: wrapper processes may be
// mid-attempt and are given the chance to finish. The watchdog cancels the
// run context only when a second signal of the same type arrives.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/fanrun/internal/ctxlog"
)

// termSignals is the default set watched when the caller supplies none.
var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New registers the given signals (or the default termination set) and
// returns the channel they are delivered on. Pass the channel to Watch.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}
