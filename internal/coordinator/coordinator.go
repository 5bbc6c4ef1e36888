// Package coordinator turns N independently completing vendor
// sub-operations into exactly one terminal notification to the caller.
//
// Every Begin call allocates its own tracking set, so any number of room
// operations can be in flight concurrently without sharing state.
package coordinator

import (
	"log/slog"
	"sync"

	"github.com/dabloons/wattsd/internal/light"
)

// Coordinator creates per-operation completion trackers.
type Coordinator struct {
	logger *slog.Logger
}

// New creates a Coordinator.
func New(logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{logger: logger}
}

// Operation tracks the integrations still outstanding for one in-flight
// room-wide operation. It is safe for concurrent Report calls.
type Operation struct {
	logger *slog.Logger

	mu          sync.Mutex
	outstanding map[light.IntegrationType]struct{}
	firstErr    error
	finished    bool
	onDone      func(error)
}

// Begin starts tracking an operation over the given participants and
// returns its handle. onDone is invoked exactly once: when the last
// participant reports, or immediately (with success) if participants is
// empty. onDone runs on whichever goroutine delivers the final report.
func (c *Coordinator) Begin(participants []light.IntegrationType, onDone func(error)) *Operation {
	op := &Operation{
		logger:      c.logger,
		outstanding: make(map[light.IntegrationType]struct{}, len(participants)),
		onDone:      onDone,
	}
	for _, p := range participants {
		op.outstanding[p] = struct{}{}
	}

	if len(op.outstanding) == 0 {
		op.finished = true
		onDone(nil)
	}
	return op
}

// Report records the completion of one integration's sub-operation.
// Reporting an integration that is not outstanding, or reporting after the
// operation finished, is a no-op. The first failure reported becomes the
// aggregate result; later outcomes never overwrite it.
func (op *Operation) Report(integration light.IntegrationType, err error) {
	op.mu.Lock()
	if op.finished {
		op.mu.Unlock()
		return
	}
	if _, ok := op.outstanding[integration]; !ok {
		op.mu.Unlock()
		op.logger.Debug("completion report for integration not outstanding", "integration", integration)
		return
	}
	delete(op.outstanding, integration)

	if err != nil && op.firstErr == nil {
		op.firstErr = err
	}

	if len(op.outstanding) > 0 {
		op.mu.Unlock()
		return
	}

	op.finished = true
	onDone := op.onDone
	result := op.firstErr
	op.mu.Unlock()

	onDone(result)
}

// Outstanding returns the integrations that have not reported yet. Callers
// layering a deadline use this to synthesize failure reports on expiry so
// onDone still fires exactly once.
func (op *Operation) Outstanding() []light.IntegrationType {
	op.mu.Lock()
	defer op.mu.Unlock()

	out := make([]light.IntegrationType, 0, len(op.outstanding))
	for t := range op.outstanding {
		out = append(out, t)
	}
	return out
}

// Finished reports whether the operation has delivered its result.
func (op *Operation) Finished() bool {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.finished
}
