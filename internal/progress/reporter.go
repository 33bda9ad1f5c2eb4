// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"sync"
)

// ChannelReporter implements Reporter using a buffered Go channel.
//
// It assumes a single producer: Report must not race Close from another
// goroutine, because cancel and channel close are not atomic with respect to
// a concurrent send. The orchestrator satisfies this by closing only after
// its run loop has returned; calling Report after Close has returned is safe
// and drops the event.
type ChannelReporter struct {
	ch     chan Event
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewChannelReporter creates a new ChannelReporter with the specified buffer
// size. A larger buffer reduces the chance of events being dropped when the
// listener is slow.
func NewChannelReporter(ctx context.Context, bufferSize int) *ChannelReporter {
	reporterCtx, cancel := context.WithCancel(ctx)

	return &ChannelReporter{
		ch:     make(chan Event, bufferSize),
		ctx:    reporterCtx,
		cancel: cancel,
	}
}

// Report implements Reporter.Report. It sends the event in a non-blocking
// manner; if the channel is full or the reporter closed, the event is dropped.
func (cr *ChannelReporter) Report(event Event) {
	select {
	case <-cr.ctx.Done():
		return
	default:
	}

	select {
	case cr.ch <- event:
	case <-cr.ctx.Done():
	default:
	}
}

// Close implements Reporter.Close. It cancels the context, closes the channel
// and waits for any listener goroutine to drain.
func (cr *ChannelReporter) Close() {
	cr.once.Do(func() {
		cr.cancel()
		close(cr.ch)
		cr.wg.Wait()
	})
}

// Listen starts a goroutine forwarding events to the provided listener until
// the reporter is closed. Close must be called to release the goroutine.
func (cr *ChannelReporter) Listen(listener Listener) {
	cr.wg.Add(1)

	go func() {
		defer cr.wg.Done()

		for {
			select {
			case event, ok := <-cr.ch:
				if !ok {
					return
				}

				listener.OnEvent(event)
			case <-cr.ctx.Done():
				// Drain buffered events so none are lost at shutdown.
				// Close closes the channel after cancelling, so this
				// terminates.
				for event := range cr.ch {
					listener.OnEvent(event)
				}

				return
			}
		}
	}()
}

// Events returns a read-only channel of progress events, for callers that
// want to handle events manually instead of using a listener.
func (cr *ChannelReporter) Events() <-chan Event {
	return cr.ch
}
