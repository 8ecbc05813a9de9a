package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/monopole/shbridge"
	"github.com/monopole/shbridge/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (a *app) newRunCmd() *cobra.Command {
	var (
		itemName string
		plain    bool
	)
	c := &cobra.Command{
		Use:   "run [--item NAME | -- STATEMENT...]",
		Short: "Run statements without the menu",
		Long: `Run shell statements, or a configured item, without the menu.

Stdin is forwarded to the statements. Each output line is labelled
with the stream it came from, unless --plain is given; then stdout
and stderr lines go unlabelled to stdout and stderr.
The exit code is the statements' exit code.

  shbridge run -- 'echo Name?' 'read n' 'echo hi $n'
  shbridge run --item Greet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := a.resolveSpec(itemName, args)
			if err != nil {
				return err
			}
			sink := newSink(cmd.OutOrStdout())
			if plain {
				sink = shbridge.NewPassThruSink(cmd.OutOrStdout(), cmd.ErrOrStderr())
			}
			return a.run(cmd, spec, sink)
		},
	}
	c.Flags().StringVarP(&itemName, "item", "i", "", "name of a configured item to run")
	c.Flags().BoolVarP(&plain, "plain", "p", false, "don't label output lines")
	return c
}

func (a *app) resolveSpec(itemName string, args []string) (shbridge.CommandSpec, error) {
	if itemName != "" {
		if len(args) > 0 {
			return nil, errors.New("specify either --item or statements, not both")
		}
		it, ok := a.cfg.FindItem(itemName)
		if !ok {
			return nil, fmt.Errorf("no item named %q", itemName)
		}
		return it.Statements, nil
	}
	if len(args) == 0 {
		return nil, errors.New("nothing to run; give statements or --item")
	}
	return args, nil
}

func (a *app) run(cmd *cobra.Command, spec shbridge.CommandSpec, sink shbridge.Sink) error {
	inv, err := shbridge.Submit(a.cfg.Parameters(a.log), spec)
	if err != nil {
		return err
	}
	go forwardInput(a.log, cmd.InOrStdin(), inv)
	status, err := shbridge.Stream(
		cmd.Context(), inv, sink, a.cfg.UI.PollInterval())
	if err != nil {
		return err
	}
	if !status.Success() {
		return &ExitCodeError{Code: status.Code}
	}
	return nil
}

// forwardInput sends each line of r to inv, then closes inv's input.
func forwardInput(log *logging.Logger, r io.Reader, inv *shbridge.Invocation) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !sendPatiently(inv, scanner.Text()) {
			log.Debug("subprocess stopped taking input")
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warn("reading stdin", "error", err)
	}
	inv.CloseInput()
}

// sendPatiently retries through backpressure, and
// reports false once inv takes no more input.
func sendPatiently(inv *shbridge.Invocation, line string) bool {
	for {
		err := inv.SendInput(line)
		if err == nil {
			return true
		}
		if !errors.Is(err, shbridge.ErrInputBackpressure) {
			return false
		}
		select {
		case <-inv.Completed():
			return false
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// newSink labels lines, in color if w is a terminal.
func newSink(w io.Writer) shbridge.Sink {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &styledSink{
			out: &styledLabeller{w: w, label: lipgloss.NewStyle().
				Foreground(lipgloss.Color("10")).Render("out")},
			err: &styledLabeller{w: w, label: lipgloss.NewStyle().
				Foreground(lipgloss.Color("9")).Render("err")},
		}
	}
	return shbridge.NewLabellingSink(w)
}

type styledSink struct {
	out io.Writer
	err io.Writer
}

func (s *styledSink) Out() io.Writer { return s.out }
func (s *styledSink) Err() io.Writer { return s.err }

type styledLabeller struct {
	w     io.Writer
	label string
}

func (sl *styledLabeller) Write(data []byte) (int, error) {
	_, err := fmt.Fprintf(sl.w, "%s: %s\n", sl.label, data)
	return len(data), err
}
