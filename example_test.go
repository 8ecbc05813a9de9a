package shbridge_test

import (
	"context"
	"fmt"
	"os"

	. "github.com/monopole/shbridge"
	"github.com/monopole/shbridge/channeler"
)

// An example using /bin/sh, a shell that's available on most platforms.
func Example_binSh() {
	inv, err := Submit(Parameters{
		Params: channeler.Params{Path: "/bin/sh"},
	}, CommandSpec{"echo alpha", "echo beta", "exit 3"})
	assertNoErr(err)
	status, err := Stream(
		context.Background(), inv, NewLabellingSink(os.Stdout), timeOutTiny)
	assertNoErr(err)
	fmt.Println("exit", status.Code)

	// Output:
	// out: alpha
	// out: beta
	// exit 3
}

// A subprocess that asks a question and waits for the answer.
func Example_interactive() {
	inv, err := Submit(Parameters{}, CommandSpec{
		"echo 'who goes there?'",
		"read name",
		"echo hello $name",
	})
	assertNoErr(err)
	var sink RecallSink
	assertNoErr(inv.SendInput("Dorothy"))
	_, err = Stream(context.Background(), inv, &sink, timeOutTiny)
	assertNoErr(err)
	for _, l := range sink.DataOut() {
		fmt.Println(l)
	}

	// Output:
	// who goes there?
	// hello Dorothy
}

// Input sent after the subprocess exits is refused.
func Example_inputAfterCompletion() {
	inv, err := Submit(Parameters{}, CommandSpec{"true"})
	assertNoErr(err)
	_, err = inv.Wait(context.Background())
	assertNoErr(err)
	fmt.Println(inv.State())
	fmt.Println(inv.SendInput("anybody?"))

	// Output:
	// completed
	// input channel closed
}
