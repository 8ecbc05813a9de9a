package shbridge

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/monopole/shbridge/channeler"
)

// Sink knows where an invocation's output should go.
// Each Write receives exactly one line, without its newline.
type Sink interface {
	Out() io.Writer
	Err() io.Writer
}

// DiscardSink discards everything.
type DiscardSink struct{}

func (DiscardSink) Out() io.Writer { return io.Discard }
func (DiscardSink) Err() io.Writer { return io.Discard }

// PassThruSink forwards lines, unlabelled, to one writer per stream.
type PassThruSink struct {
	wOut io.Writer
	wErr io.Writer
}

// NewPassThruSink returns a PassThruSink writing stdout lines
// to wOut and stderr lines to wErr. Nil writers mean the
// current process' stdout and stderr.
func NewPassThruSink(wOut, wErr io.Writer) *PassThruSink {
	if wOut == nil {
		wOut = os.Stdout
	}
	if wErr == nil {
		wErr = os.Stderr
	}
	return &PassThruSink{wOut: lineWriter{wOut}, wErr: lineWriter{wErr}}
}

func (s *PassThruSink) Out() io.Writer { return s.wOut }
func (s *PassThruSink) Err() io.Writer { return s.wErr }

// LabellingSink sends lines from both streams to one writer,
// adding a prefix to make a distinction.
type LabellingSink struct {
	wOut io.Writer
	wErr io.Writer
}

// NewLabellingSink returns a LabellingSink writing to w.
func NewLabellingSink(w io.Writer) *LabellingSink {
	var mu sync.Mutex
	return &LabellingSink{
		wOut: &labellingPrinter{w: w, mu: &mu, prefix: "out"},
		wErr: &labellingPrinter{w: w, mu: &mu, prefix: "err"},
	}
}

func (s *LabellingSink) Out() io.Writer { return s.wOut }
func (s *LabellingSink) Err() io.Writer { return s.wErr }

type labellingPrinter struct {
	w      io.Writer
	mu     *sync.Mutex
	prefix string
}

func (lp *labellingPrinter) Write(data []byte) (int, error) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.prefix == "" {
		_, err := fmt.Fprintln(lp.w, string(data))
		return len(data), err
	}
	_, err := fmt.Fprintf(lp.w, "%s: %s\n", lp.prefix, string(data))
	return len(data), err
}

type lineWriter struct{ w io.Writer }

func (lw lineWriter) Write(data []byte) (int, error) {
	_, err := fmt.Fprintln(lw.w, string(data))
	return len(data), err
}

// RecallSink remembers all the non-empty lines it sees.
type RecallSink struct {
	wOut LineAbsorber
	wErr LineAbsorber
}

func (s *RecallSink) Out() io.Writer    { return &s.wOut }
func (s *RecallSink) Err() io.Writer    { return &s.wErr }
func (s *RecallSink) Reset()            { s.wErr.Reset(); s.wOut.Reset() }
func (s *RecallSink) DataOut() []string { return s.wOut.Lines() }
func (s *RecallSink) DataErr() []string { return s.wErr.Lines() }

// LineAbsorber remembers all the non-empty lines it sees.
type LineAbsorber struct {
	mu   sync.Mutex
	data []string
}

func (ab *LineAbsorber) Reset() {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	ab.data = nil
}

func (ab *LineAbsorber) Lines() []string {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return append([]string(nil), ab.data...)
}

func (ab *LineAbsorber) Write(data []byte) (int, error) {
	if len(data) > 0 {
		ab.mu.Lock()
		ab.data = append(ab.data, string(data))
		ab.mu.Unlock()
	}
	return len(data), nil
}

// DefaultPollInterval matches the refresh rate of the interactive UI.
const DefaultPollInterval = 100 * time.Millisecond

// Stream polls inv every interval, writing its output to sink,
// until inv completes or ctx is done. It returns what Wait returns.
// Lines that failed to decode are written with their replacement text.
func Stream(
	ctx context.Context, inv *Invocation, sink Sink, interval time.Duration,
) (channeler.ExitStatus, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		lines, completed := inv.PollOutput()
		if err := writeLines(sink.Out(), lines); err != nil {
			return channeler.ExitStatus{Code: -1}, err
		}
		if err := writeLines(sink.Err(), inv.PollErrOutput()); err != nil {
			return channeler.ExitStatus{Code: -1}, err
		}
		if completed {
			// Stderr may have trailing lines queued after stdout closed.
			if err := writeLines(sink.Err(), inv.PollErrOutput()); err != nil {
				return channeler.ExitStatus{Code: -1}, err
			}
			return inv.Wait(ctx)
		}
		select {
		case <-ctx.Done():
			return channeler.ExitStatus{Code: -1}, ctx.Err()
		case <-ticker.C:
		case <-inv.Completed():
		}
	}
}

func writeLines(w io.Writer, lines []channeler.Line) error {
	for _, l := range lines {
		if _, err := w.Write([]byte(l.Text)); err != nil {
			return err
		}
	}
	return nil
}
