// Package engine unifies the three update channels — manual refresh, the
// polling timer, and push-event arrivals — behind one coalescing request
// queue with a single consumer loop.
package engine

import (
	"context"
	"log/slog"

	"orderboard/internal/core/ports"
)

// RefreshFunc executes one full refresh cycle for the given source. The
// engine is its only caller.
type RefreshFunc func(ctx context.Context, source ports.RefreshSource) error

// Engine implements ports.RefreshTrigger. Every trigger posts a "refresh
// wanted" signal into a capacity-one channel; one consumer goroutine drains
// it and runs refresh cycles strictly sequentially. Requests arriving while
// a cycle is in flight coalesce into at most one queued cycle: the signal
// already sitting in the channel covers them. There is no mid-flight
// cancellation; a superseding request simply queues behind the running
// cycle.
//
// A failed cycle is logged and surfaced as a transient notice; it never
// stops the loop, the polling timer, or the push connection.
type Engine struct {
	refresh  RefreshFunc
	notifier ports.Notifier
	logger   *slog.Logger

	trigger chan ports.RefreshSource
	done    chan struct{}
}

// NewEngine creates an engine around the given refresh function. Run must
// be called before triggers have any effect.
func NewEngine(refresh RefreshFunc, notifier ports.Notifier, logger *slog.Logger) *Engine {
	return &Engine{
		refresh:  refresh,
		notifier: notifier,
		logger:   logger.With("component", "refresh_engine"),
		trigger:  make(chan ports.RefreshSource, 1),
		done:     make(chan struct{}),
	}
}

// RequestRefresh posts a refresh signal. Non-blocking: when a signal is
// already pending the request merges into it, which is exactly the
// coalescing rule — the pending cycle will observe a snapshot at least as
// fresh as the one this caller wanted.
func (e *Engine) RequestRefresh(source ports.RefreshSource) {
	select {
	case e.trigger <- source:
	default:
	}
}

// Run drains the trigger channel until the context is cancelled. It is the
// single writer of the view store: refresh cycles never overlap and results
// apply in completion order.
func (e *Engine) Run(ctx context.Context) {
	defer close(e.done)

	for {
		select {
		case <-ctx.Done():
			return
		case source := <-e.trigger:
			if err := e.refresh(ctx, source); err != nil {
				if ctx.Err() != nil {
					return
				}
				e.logger.ErrorContext(ctx, "Refresh cycle failed", "source", source, "error", err)
				e.notifier.Notify(ports.Notice{
					Message: "Could not refresh orders; showing the last known state",
				})
			}
		}
	}
}

// Done is closed when Run has returned, for shutdown sequencing.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}
