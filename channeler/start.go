package channeler

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/monopole/shbridge/internal/logging"
)

// Start runs the given statements, joined with p.Separator,
// as one shell invocation, and returns all the channels needed
// to interact with it.
//
// Cancelling ctx abandons the invocation: stdin gets EOF and any
// further output is discarded, but the subprocess isn't killed;
// Done still reports how it ended.
func Start(ctx context.Context, p *Params, statements ...string) (*Channels, error) {
	if err := p.Validate(); err != nil {
		return nil, &SpawnError{Path: p.Path, Err: err}
	}
	log := p.logger()
	script := strings.Join(statements, p.Separator)
	log.Debug("spawning", "path", p.Path, "script", logging.Abbrev(script))
	sp, err := spawn(p, script)
	if err != nil {
		log.Error("spawn failed", "err", err)
		return nil, err
	}
	log.Info("spawned", "pid", sp.cmd.Process.Pid)

	// Make all the communication channels.
	chStdIn := make(chan string, p.BuffSizeIn)
	chStdOut := make(chan Line, p.BuffSizeOut)
	chStdErr := make(chan Line, p.BuffSizeErr)
	chDraining := make(chan struct{})
	chInputStopped := make(chan struct{})
	chDone := make(chan Result, 1)

	logOut := log.WithComponent("stdOut")
	outRelay := newWorker(ctx, "stdOut", func(ctx context.Context) error {
		return relayOutput(
			ctx, logOut, "stdOut", sp.stdOut, chStdOut, p.MaxLineBytes, p.StallWarning)
	})
	logErr := log.WithComponent("stdErr")
	errRelay := newWorker(ctx, "stdErr", func(ctx context.Context) error {
		return relayOutput(
			ctx, logErr, "stdErr", sp.stdErr, chStdErr, p.MaxLineBytes, p.StallWarning)
	})
	// The receive end of chStdIn moves into the input relay;
	// nothing else ever reads it.
	var inbound <-chan string = chStdIn
	logIn := log.WithComponent("stdIn")
	inRelay := newWorker(ctx, "stdIn", func(ctx context.Context) error {
		defer close(chInputStopped)
		return relayInput(ctx, logIn, inbound, sp.stdIn, p.CommandTerminator)
	})

	outRelay.Start()
	errRelay.Start()
	inRelay.Start()

	go coordinate(log, sp, outRelay, errRelay, inRelay, chDraining, chDone)

	return &Channels{
		StdIn:        chStdIn,
		StdOut:       chStdOut,
		StdErr:       chStdErr,
		InputStopped: chInputStopped,
		Draining:     chDraining,
		Done:         chDone,
	}, nil
}

// coordinate waits for the subprocess to end, then shuts down
// the input relay and reports the Result.
func coordinate(
	log *logging.Logger,
	sp *spawned,
	outRelay, errRelay, inRelay Relay,
	chDraining chan<- struct{},
	chDone chan<- Result,
) {
	defer close(chDone)
	var res Result

	// All reads from the pipes must finish before Wait,
	// which closes them.
	log.Debug("awaiting stdOut and stdErr relay exit")
	res.OutputErr = errors.Join(outRelay.Join(), errRelay.Join())
	if res.OutputErr != nil {
		log.Warn("output relay ended abnormally", "err", res.OutputErr)
	}
	res.Status, res.Err = waitFor(sp)
	if res.Err != nil {
		log.Error("wait failed", "err", res.Err)
	}
	log.Info("process ended",
		"code", res.Status.Code, "signaled", res.Status.Signaled,
		"runtime", res.Status.Runtime)

	close(chDraining)
	inRelay.Cancel()
	if err := inRelay.Join(); err != nil {
		// Most likely a write racing the exit; never a command failure.
		log.Warn("input relay ended abnormally", "err", err)
		res.InputErr = err
	}
	log.Debug("completed")
	chDone <- res
}

// waitFor calls Wait and interprets its error.
func waitFor(sp *spawned) (ExitStatus, error) {
	err := sp.cmd.Wait()
	status := ExitStatus{Code: 0, Runtime: time.Since(sp.started)}
	if err == nil {
		return status, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		status.Code = -1
		return status, &ProcessWaitError{Err: err}
	}
	status.Code = exitErr.ExitCode()
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		status.Signaled = true
	}
	return status, nil
}
