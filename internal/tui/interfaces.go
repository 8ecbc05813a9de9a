package tui

import (
	"github.com/monopole/shbridge"
	"github.com/monopole/shbridge/channeler"
	"github.com/monopole/shbridge/internal/config"
)

//go:generate mockgen -source=interfaces.go -destination=mocks_test.go -package=tui

// Launcher starts a Session for a menu item.
type Launcher interface {
	Launch(item config.Item) (Session, error)
}

// Session is what the UI needs from a running item.
// *shbridge.Invocation is a Session.
type Session interface {
	ID() string
	PollOutput() ([]channeler.Line, bool)
	PollErrOutput() []channeler.Line
	SendInput(text string) error
	CloseInput()
	Abandon()
	Result() (channeler.Result, bool)
}

// ShellLauncher runs items with shbridge.Submit.
type ShellLauncher struct {
	Params shbridge.Parameters
}

// Launch submits the item's statements.
func (l *ShellLauncher) Launch(item config.Item) (Session, error) {
	inv, err := shbridge.Submit(l.Params, item.Statements)
	if err != nil {
		return nil, err
	}
	return inv, nil
}
