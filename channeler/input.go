package channeler

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/monopole/shbridge/internal/logging"
)

const newLineChar = '\n'

// terminate assures correct input line termination.
// The line will always end with newline, but before that there
// might also be something like a semicolon.
func terminate(line string, terminator byte) []byte {
	c := []byte(line)
	if len(c) > 0 && c[len(c)-1] == newLineChar {
		// Slice it off to avoid confusion; will replace it momentarily.
		c = c[:len(c)-1]
	}
	if len(c) == 0 {
		// Empty lines are empty lines; they answer prompts with nothing.
		return []byte{newLineChar}
	}
	if terminator > 0 && c[len(c)-1] != terminator {
		c = append(c, terminator)
	}
	// Always, always end with a newLine.
	return append(c, newLineChar)
}

// relayInput forwards lines from chStdIn to the subprocess' stdin.
// It's the only writer of stdIn, and it closes stdIn on the way out.
// It returns nil when chStdIn is closed or when ctx is cancelled,
// and an *IoError if a write fails.
func relayInput(
	ctx context.Context,
	log *logging.Logger,
	chStdIn <-chan string,
	stdIn io.WriteCloser,
	terminator byte,
) error {
	w := bufio.NewWriter(stdIn)
	count := 0
	log.Debug("starting scan to forward to subprocess")
	for {
		// Cancellation wins over a line that's already waiting.
		select {
		case <-ctx.Done():
			log.Debug("cancelled before receive", "forwarded", count)
			closeQuietly(log, stdIn)
			return nil
		default:
		}
		select {
		case <-ctx.Done():
			log.Debug("cancelled while awaiting input", "forwarded", count)
			closeQuietly(log, stdIn)
			return nil
		case line, stillOpen := <-chStdIn:
			if !stillOpen {
				log.Debug("detected external closure, sending EOF", "forwarded", count)
				if err := stdIn.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
					return &IoError{Op: "close", Err: err}
				}
				return nil
			}
			bytes := terminate(line, terminator)
			log.Debug("issuing", "line", logging.Abbrev(string(bytes)))
			// A line once started is always finished before
			// cancellation is looked at again.
			if _, err := w.Write(bytes); err != nil {
				log.Warn("unable to write stdIn", "err", err)
				closeQuietly(log, stdIn)
				return &IoError{Op: "write", Err: err}
			}
			if err := w.Flush(); err != nil {
				log.Warn("unable to flush stdIn", "err", err)
				closeQuietly(log, stdIn)
				return &IoError{Op: "flush", Err: err}
			}
			count++
		}
	}
}

// closeQuietly closes stdIn when the outcome no longer matters,
// e.g. after the subprocess exited and Wait already closed it.
func closeQuietly(log *logging.Logger, stdIn io.Closer) {
	if err := stdIn.Close(); err != nil {
		log.Debug("closing stdIn", "err", err)
	}
}
