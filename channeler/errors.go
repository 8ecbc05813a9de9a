package channeler

import (
	"errors"
	"fmt"
)

// SpawnError means the shell could not be started.
// No relays exist when this is returned.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("unable to spawn %q; %s", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// IoError means a write or flush to the child's stdin failed.
// It stops only the input relay.
type IoError struct {
	Op  string // "write", "flush" or "close"
	Err error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("stdIn %s failed; %s", e.Op, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// DecodeError flags one line of subprocess output that
// could not be decoded. Streaming continues past it.
type DecodeError struct {
	Stream string
	Num    int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s line #%d; %s", e.Stream, e.Num, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ProcessWaitError means waiting on the child failed for some reason
// other than a non-zero exit status.
type ProcessWaitError struct {
	Err error
}

func (e *ProcessWaitError) Error() string {
	return fmt.Sprintf("cmd.Wait returns: %s", e.Err)
}

func (e *ProcessWaitError) Unwrap() error { return e.Err }

var (
	// ErrInvalidUTF8 is the cause inside a DecodeError for a malformed line.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
	// ErrLineTooLong is the cause inside a DecodeError for an oversized line.
	ErrLineTooLong = errors.New("line exceeds maximum length")
)

func paramErr(format string, args ...any) error {
	return fmt.Errorf("channeler params; "+format, args...)
}

func paramErrCaused(err error, format string, args ...any) error {
	return fmt.Errorf("channeler params; "+format+"; %w", append(args, err)...)
}
