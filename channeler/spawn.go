package channeler

import (
	"io"
	"os"
	"os/exec"
	"time"
)

// spawned is a running subprocess and its three pipes.
type spawned struct {
	cmd     *exec.Cmd
	started time.Time
	stdIn   io.WriteCloser
	stdOut  io.ReadCloser
	stdErr  io.ReadCloser
}

// spawn starts the shell with script as its final argument.
// It reads and writes nothing.
func spawn(p *Params, script string) (*spawned, error) {
	args := append(append([]string(nil), p.Args...), script)
	cmd := exec.Command(p.Path, args...)
	cmd.Dir = p.WorkingDir
	if len(p.Env) > 0 {
		cmd.Env = append(os.Environ(), p.Env...)
	}
	fail := func(err error) (*spawned, error) {
		return nil, &SpawnError{Path: p.Path, Err: err}
	}

	stdIn, err := cmd.StdinPipe()
	if err != nil {
		return fail(err)
	}
	stdOut, err := cmd.StdoutPipe()
	if err != nil {
		return fail(err)
	}
	stdErr, err := cmd.StderrPipe()
	if err != nil {
		return fail(err)
	}
	if err = cmd.Start(); err != nil {
		return fail(err)
	}
	return &spawned{
		cmd:     cmd,
		started: time.Now(),
		stdIn:   stdIn,
		stdOut:  stdOut,
		stdErr:  stdErr,
	}, nil
}
