package shbridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/monopole/shbridge/channeler"
	"github.com/monopole/shbridge/internal/logging"
)

var (
	// ErrChannelClosed is returned when sending input to an invocation
	// whose input is closed, or that has exited.
	ErrChannelClosed = errors.New("input channel closed")
	// ErrInputBackpressure is returned when the input buffer stays
	// full for longer than Parameters.InputSendTimeout.
	ErrInputBackpressure = errors.New("input buffer full; subprocess isn't reading")
)

// CommandSpec is an ordered sequence of shell statements.
type CommandSpec []string

// Invocation is the caller's handle on one run of a CommandSpec.
// All methods are safe for concurrent use, and none block
// except Wait.
type Invocation struct {
	id          string
	spec        CommandSpec
	log         *logging.Logger
	sendTimeout time.Duration
	abandon     context.CancelFunc

	// inMu serializes senders against CloseInput,
	// so stdIn is never sent on after it's closed.
	inMu     sync.Mutex
	inClosed bool
	stdIn    chan<- string
	// inStopped is closed when the input relay exits.
	inStopped <-chan struct{}

	draining  <-chan struct{}
	out       lineQueue
	errOut    lineQueue
	completed chan struct{}
	result    channeler.Result
}

// Submit starts running spec in a new shell and returns
// immediately. It fails with a *channeler.SpawnError
// if the shell cannot be started.
func Submit(p Parameters, spec CommandSpec) (*Invocation, error) {
	if len(spec) == 0 {
		return nil, &channeler.SpawnError{
			Path: p.Path, Err: fmt.Errorf("must specify at least one statement")}
	}
	if err := p.Validate(); err != nil {
		return nil, &channeler.SpawnError{Path: p.Path, Err: err}
	}
	inv := &Invocation{
		id:          uuid.NewString(),
		spec:        append(CommandSpec(nil), spec...),
		sendTimeout: p.InputSendTimeout,
		completed:   make(chan struct{}),
	}
	inv.log = logging.OrDefault(p.Logger).WithInvocation(inv.id)
	p.Logger = inv.log
	inv.log.Debug("submitting", "statements", len(inv.spec), "state", Spawning)

	ctx, cancel := context.WithCancel(context.Background())
	chs, err := channeler.Start(ctx, &p.Params, inv.spec...)
	if err != nil {
		cancel()
		return nil, err
	}
	inv.abandon = cancel
	inv.stdIn = chs.StdIn
	inv.inStopped = chs.InputStopped
	inv.draining = chs.Draining
	go inv.collect(chs)
	inv.log.Debug("submitted", "state", Running)
	return inv, nil
}

// collect is the single consumer of the output channels.
// It queues lines as fast as they arrive, so a slow caller
// never stalls the subprocess.
func (inv *Invocation) collect(chs *channeler.Channels) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		inv.errOut.pump(chs.StdErr)
	}()
	inv.out.pump(chs.StdOut)
	wg.Wait()
	inv.result = <-chs.Done
	inv.abandon()
	close(inv.completed)
	inv.log.Debug("collected", "state", Completed, "code", inv.result.Status.Code)
}

// ID uniquely identifies the invocation, e.g. in logs.
func (inv *Invocation) ID() string { return inv.id }

// Spec returns a copy of the statements being run.
func (inv *Invocation) Spec() CommandSpec {
	return append(CommandSpec(nil), inv.spec...)
}

// State reports the invocation's lifecycle state.
func (inv *Invocation) State() State {
	if isClosed(inv.completed) {
		return Completed
	}
	if isClosed(inv.draining) {
		return Draining
	}
	return Running
}

// PollOutput returns the stdout lines that arrived since the last
// call, in order. completed is true once the invocation has
// completed and every line has been returned.
func (inv *Invocation) PollOutput() (lines []channeler.Line, completed bool) {
	// Look first, so a true completed never precedes a late line.
	completed = isClosed(inv.completed)
	return inv.out.take(), completed
}

// PollErrOutput is like PollOutput, but for stderr.
func (inv *Invocation) PollErrOutput() []channeler.Line {
	return inv.errOut.take()
}

// SendInput queues one line for the subprocess' stdin.
// It returns ErrChannelClosed if the input was closed, the
// process has exited or stdin can no longer be written, and ErrInputBackpressure if the line
// couldn't be queued within Parameters.InputSendTimeout.
func (inv *Invocation) SendInput(text string) error {
	inv.inMu.Lock()
	defer inv.inMu.Unlock()
	if inv.inClosed || isClosed(inv.draining) || isClosed(inv.inStopped) {
		return ErrChannelClosed
	}
	select {
	case inv.stdIn <- text:
		return nil
	default:
	}
	if inv.sendTimeout < 0 {
		return ErrInputBackpressure
	}
	timer := time.NewTimer(inv.sendTimeout)
	defer timer.Stop()
	select {
	case inv.stdIn <- text:
		return nil
	case <-inv.draining:
		return ErrChannelClosed
	case <-inv.inStopped:
		return ErrChannelClosed
	case <-timer.C:
		inv.log.Warn("input backpressure", "waited", inv.sendTimeout)
		return ErrInputBackpressure
	}
}

// CloseInput sends EOF to the subprocess once all queued input
// is written. Calling it again does nothing.
func (inv *Invocation) CloseInput() {
	inv.inMu.Lock()
	defer inv.inMu.Unlock()
	if inv.inClosed {
		return
	}
	inv.inClosed = true
	close(inv.stdIn)
}

// Abandon gives up on the invocation without killing it: stdin gets
// EOF and output that hasn't been relayed yet is discarded.
// The invocation still completes.
func (inv *Invocation) Abandon() {
	inv.inMu.Lock()
	inv.inClosed = true
	inv.inMu.Unlock()
	inv.abandon()
}

// Wait blocks until the invocation completes or ctx is done.
// Output that arrives meanwhile stays available to PollOutput.
// A non-zero exit is reported in the status, not as an error;
// the error is a *channeler.ProcessWaitError or ctx's error.
func (inv *Invocation) Wait(ctx context.Context) (channeler.ExitStatus, error) {
	select {
	case <-inv.completed:
		return inv.result.Status, inv.result.Err
	case <-ctx.Done():
		return channeler.ExitStatus{Code: -1}, ctx.Err()
	}
}

// Result returns the final Result, and false if
// the invocation hasn't completed.
func (inv *Invocation) Result() (channeler.Result, bool) {
	if !isClosed(inv.completed) {
		return channeler.Result{}, false
	}
	return inv.result, true
}

// Completed is closed when the invocation completes.
func (inv *Invocation) Completed() <-chan struct{} {
	return inv.completed
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// lineQueue is an unbounded FIFO of lines with one producer.
type lineQueue struct {
	mu    sync.Mutex
	lines []channeler.Line
}

func (q *lineQueue) pump(ch <-chan channeler.Line) {
	for l := range ch {
		q.mu.Lock()
		q.lines = append(q.lines, l)
		q.mu.Unlock()
	}
}

func (q *lineQueue) take() []channeler.Line {
	q.mu.Lock()
	defer q.mu.Unlock()
	lines := q.lines
	q.lines = nil
	return lines
}
