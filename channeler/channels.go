package channeler

import "time"

// Line is one line of subprocess output with NewLine removed.
type Line struct {
	// Num counts lines on the line's stream, starting at 1.
	Num int
	// Text is the line. If Err is set, invalid bytes
	// have been replaced with U+FFFD.
	Text string
	// Err, if not nil, is a *DecodeError flagging this line.
	Err error
}

// ExitStatus describes how the subprocess ended.
type ExitStatus struct {
	// Code is the exit code, or -1 if the process was
	// killed by a signal or never reported one.
	Code int
	// Signaled is true if a signal ended the process.
	Signaled bool
	// Runtime is the time between start and the end of Wait.
	Runtime time.Duration
}

// Success is true for a clean zero exit.
func (s ExitStatus) Success() bool {
	return s.Code == 0 && !s.Signaled
}

// Result is the final report of one command invocation.
type Result struct {
	Status ExitStatus
	// Err, if not nil, is a *ProcessWaitError.
	// It's the only way an invocation can fail after spawning.
	Err error
	// InputErr is whatever stopped the input relay abnormally,
	// usually an *IoError. Informational only.
	InputErr error
	// OutputErr is whatever stopped an output relay abnormally.
	// Informational only; all lines read before it were delivered.
	OutputErr error
}

// Channels holds a command's input and output channels.
type Channels struct {
	// StdIn accepts input lines. Each is sent to the subprocess
	// with a terminating NewLine added if one isn't present.
	// Close StdIn to send EOF to the subprocess.
	// Never close StdIn if you might still send on it.
	StdIn chan<- string
	// StdOut provides lines from stdout. It's closed
	// when stdout reaches EOF.
	StdOut <-chan Line
	// StdErr provides lines from stderr. It's closed
	// when stderr reaches EOF. Drain it, or the subprocess
	// may block once BuffSizeErr lines are pending.
	StdErr <-chan Line
	// InputStopped is closed once the input relay has exited,
	// whether from EOF, cancellation or a failed write.
	// Lines sent on StdIn after that are never delivered.
	InputStopped <-chan struct{}
	// Draining is closed once the process has exited
	// and the input relay is being shut down.
	Draining <-chan struct{}
	// Done receives exactly one Result and is then closed.
	// Receiving from it is the completion marker.
	Done <-chan Result
}
