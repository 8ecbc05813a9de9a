package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/monopole/shbridge/internal/config"
)

// tickMsg is sent periodically to collect output from the running session.
type tickMsg time.Time

// itemsChangedMsg replaces the menu, e.g. after the config file changed.
type itemsChangedMsg struct {
	items []config.Item
}

// ItemsChanged returns a message that replaces the menu items.
// Send it with tea.Program.Send.
func ItemsChanged(items []config.Item) tea.Msg {
	return itemsChangedMsg{items: items}
}

// tick returns a command that sends a tickMsg after d.
func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
