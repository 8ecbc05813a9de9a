package channeler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sourcegraph/conc"
)

// RelayState is the lifecycle of a Relay.
type RelayState int32

const (
	// RelayCreated means Start hasn't been called.
	RelayCreated RelayState = iota
	// RelayRunning means the worker is active.
	RelayRunning
	// RelayCancelled means cancellation was requested,
	// but the worker hasn't been joined.
	RelayCancelled
	// RelayStopped means the worker exited and was joined.
	RelayStopped
)

func (s RelayState) String() string {
	switch s {
	case RelayCreated:
		return "created"
	case RelayRunning:
		return "running"
	case RelayCancelled:
		return "cancelled"
	case RelayStopped:
		return "stopped"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Relay is a cancellable, awaitable concurrent worker.
type Relay interface {
	// Start launches the worker. Calls after the first do nothing.
	Start()
	// Cancel asks the worker to stop. It doesn't wait.
	Cancel()
	// Join waits for the worker to exit and returns its error.
	// Every call returns the same error.
	Join() error
	// State reports where the worker is in its lifecycle.
	State() RelayState
}

// worker implements Relay with a goroutine.
type worker struct {
	name   string
	run    func(context.Context) error
	ctx    context.Context
	cancel context.CancelFunc
	wg     conc.WaitGroup
	state  atomic.Int32

	startOnce sync.Once
	joinOnce  sync.Once
	err       error
}

var _ Relay = &worker{}

// newWorker returns a Relay running run. Cancelling parent
// cancels the worker too.
func newWorker(
	parent context.Context, name string, run func(context.Context) error) *worker {
	ctx, cancel := context.WithCancel(parent)
	return &worker{name: name, run: run, ctx: ctx, cancel: cancel}
}

func (w *worker) Start() {
	w.startOnce.Do(func() {
		w.state.Store(int32(RelayRunning))
		w.wg.Go(func() {
			w.err = w.run(w.ctx)
		})
	})
}

func (w *worker) Cancel() {
	w.state.CompareAndSwap(int32(RelayRunning), int32(RelayCancelled))
	w.cancel()
}

func (w *worker) Join() error {
	w.joinOnce.Do(func() {
		// A worker never started has nothing to wait for.
		w.startOnce.Do(func() {})
		if r := w.wg.WaitAndRecover(); r != nil {
			w.err = fmt.Errorf("%s relay panicked; %w", w.name, r.AsError())
		}
		w.cancel()
		w.state.Store(int32(RelayStopped))
	})
	return w.err
}

func (w *worker) State() RelayState {
	return RelayState(w.state.Load())
}
