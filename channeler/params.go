package channeler

import (
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/monopole/shbridge/internal/logging"
)

// Params captures all parameters to channeler.Start.
// It's a mix of subprocess parameters, like Path and Args,
// and orchestration parameters like buffer sizes.
type Params struct {
	// Path is either the absolute path to the shell, or a $PATH
	// relative command name.
	Path string

	// Args precede the script argument, e.g. {"-c"}.
	Args []string

	// Separator joins the statements of a command into one script.
	Separator string

	// WorkingDir is the working directory of the shell process.
	WorkingDir string

	// Env entries ("KEY=value") are added to the inherited environment.
	Env []string

	// CommandTerminator, if not 0, is appended to the end of every
	// input line before the newline.
	// Example: ';'
	CommandTerminator byte

	// BuffSizeIn is how many input lines can be queued before
	// a send has to wait.
	BuffSizeIn int

	// BuffSizeOut is how many lines of stdout can be queued before
	// back pressure is applied, forcing the shell to wait before
	// its output is consumed.
	BuffSizeOut int

	// BuffSizeErr is like BuffSizeOut, except for stderr.
	BuffSizeErr int

	// MaxLineBytes is the longest line accepted from the subprocess.
	MaxLineBytes int

	// StallWarning is how long a relay waits for its consumer before
	// logging a warning. The relay keeps waiting; nothing is dropped.
	StallWarning time.Duration

	// Logger receives relay and coordinator logging. Nil means
	// logging.Default().
	Logger *logging.Logger
}

const (
	defaultPath         = "/bin/sh"
	defaultSeparator    = "; "
	defaultBuffSizeIn   = 5
	defaultBuffSizeOut  = 10000
	defaultBuffSizeErr  = 100
	defaultMaxLineBytes = 1024 * 1024

	// make this value interesting so that it's easy to spot.
	defaultStallWarning = 7777 * time.Millisecond
)

// DefaultArgs are the shell arguments used when Args is empty.
var DefaultArgs = []string{"-c"}

func (p *Params) Validate() error {
	p.setDefaults()
	if err := p.validateWorkDir(); err != nil {
		return err
	}
	return p.validatePath()
}

func (p *Params) setDefaults() {
	if p.Path == "" {
		p.Path = defaultPath
	}
	if len(p.Args) == 0 {
		p.Args = append([]string(nil), DefaultArgs...)
	}
	if p.Separator == "" {
		p.Separator = defaultSeparator
	}
	if p.BuffSizeIn < 1 {
		p.BuffSizeIn = defaultBuffSizeIn
	}
	if p.BuffSizeOut < 1 {
		p.BuffSizeOut = defaultBuffSizeOut
	}
	if p.BuffSizeErr < 1 {
		p.BuffSizeErr = defaultBuffSizeErr
	}
	if p.MaxLineBytes < 1 {
		p.MaxLineBytes = defaultMaxLineBytes
	}
	if p.StallWarning == 0 {
		p.StallWarning = defaultStallWarning
	}
}

func (p *Params) validateWorkDir() (err error) {
	p.WorkingDir, err = filepath.Abs(p.WorkingDir)
	if err != nil {
		return paramErrCaused(err, "bad working dir path")
	}
	var info os.FileInfo
	info, err = os.Stat(p.WorkingDir)
	if err != nil {
		return paramErrCaused(err, "bad working dir stat")
	}
	if !info.IsDir() {
		return paramErr("%q is not a directory that exists", p.WorkingDir)
	}
	return nil
}

func (p *Params) validatePath() error {
	if _, err := exec.LookPath(p.Path); err != nil {
		return paramErrCaused(err, "path %q not available", p.Path)
	}
	return nil
}

func (p *Params) logger() *logging.Logger {
	return logging.OrDefault(p.Logger)
}
