// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/fanrun/internal/ctxlog"
)

// Watch consumes signals from sigCh until a signal type repeats, then closes
// the channel and cancels the run context. The first signal of each type is
// logged and otherwise ignored so that in-flight wrapper processes are not
// torn down by a single interrupt.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, repeat := seen[sig]; !repeat {
			seen[sig] = struct{}{}
			logSignal(ctx, sig, "received first signal of type, letting commands finish")

			continue
		}

		logSignal(ctx, sig, "received second signal of type, forcefully terminating")
		close(sigCh)
		cancel()

		return
	}
}

func logSignal(ctx context.Context, sig os.Signal, detail string) {
	ctxlog.Logger(ctx).Info("watchdog", "detail", detail, "signal", sig.String())
}
