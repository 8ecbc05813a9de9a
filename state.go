package shbridge

import "fmt"

// State is where an Invocation is in its lifecycle.
//
//	Spawning -> Running -> Draining -> Completed
//
// No state is skipped, and Completed is terminal.
type State int

const (
	// Spawning means Submit hasn't returned yet.
	Spawning State = iota
	// Running means the relays are active.
	Running
	// Draining means the process exited and the
	// input relay is being shut down.
	Draining
	// Completed means the Result is known.
	Completed
)

func (s State) String() string {
	switch s {
	case Spawning:
		return "spawning"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}
