package shbridge_test

import (
	"context"
	"testing"
	"time"

	. "github.com/monopole/shbridge"
	"github.com/monopole/shbridge/channeler"
	"github.com/stretchr/testify/require"
)

const (
	theShell    = "/bin/sh"
	timeOutLong = 5 * time.Second
	// timeOutShort is a "short" timeout, for happy cases.
	timeOutShort = 800 * time.Millisecond
	timeOutTiny  = 30 * time.Millisecond
)

func shParams() Parameters {
	return Parameters{Params: channeler.Params{Path: theShell}}
}

func submit(t *testing.T, p Parameters, stmts ...string) *Invocation {
	t.Helper()
	inv, err := Submit(p, stmts)
	require.NoError(t, err)
	return inv
}

// pollAll polls like a UI would until the invocation completes.
func pollAll(t *testing.T, inv *Invocation) (texts []string) {
	t.Helper()
	deadline := time.Now().Add(timeOutLong)
	for {
		lines, completed := inv.PollOutput()
		for _, l := range lines {
			texts = append(texts, l.Text)
		}
		if completed {
			return texts
		}
		require.True(t, time.Now().Before(deadline), "never completed")
		time.Sleep(timeOutTiny)
	}
}

func waitLong(t *testing.T, inv *Invocation) channeler.ExitStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeOutLong)
	defer cancel()
	status, err := inv.Wait(ctx)
	require.NoError(t, err)
	return status
}

func assertNoErr(err error) {
	if err != nil {
		panic("example failure: unexpected err: " + err.Error())
	}
}
