package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/monopole/shbridge/internal/config"
	"github.com/monopole/shbridge/internal/logging"
)

type screen int

const (
	screenList screen = iota
	screenRun
)

// finishedMarker is appended to the output when a session completes.
const finishedMarker = "cmd finished"

const (
	headerHeight = 1
	// Input box with border, plus the status and help lines.
	footerHeight = 5
)

// Options tune the Model.
type Options struct {
	// PollInterval is how often output is collected.
	PollInterval time.Duration
	// MaxOutputLines is how many lines of output are kept.
	MaxOutputLines int
	Logger         *logging.Logger
}

func (o *Options) setDefaults() {
	if o.PollInterval <= 0 {
		o.PollInterval = 100 * time.Millisecond
	}
	if o.MaxOutputLines <= 0 {
		o.MaxOutputLines = 1000
	}
}

type listItem struct{ item config.Item }

func (li listItem) Title() string { return li.item.Name }
func (li listItem) Description() string {
	if li.item.Description != "" {
		return li.item.Description
	}
	return strings.Join(li.item.Statements, "; ")
}
func (li listItem) FilterValue() string { return li.item.Name }

func toListItems(items []config.Item) []list.Item {
	result := make([]list.Item, len(items))
	for i, it := range items {
		result[i] = listItem{item: it}
	}
	return result
}

// Model is the Bubbletea model for the launcher.
// It shows a menu of items; picking one runs it and shows
// its output, with a text input wired to its stdin.
type Model struct {
	launcher Launcher
	opts     Options
	log      *logging.Logger

	screen  screen
	list    list.Model
	output  viewport.Model
	input   textinput.Model
	session Session
	item    config.Item
	lines   []string
	done    bool
	status  string
	err     error

	width    int
	height   int
	quitting bool
}

// New creates a Model offering the given items.
func New(launcher Launcher, items []config.Item, opts Options) Model {
	opts.setDefaults()
	l := list.New(toListItems(items), list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select an item"
	l.SetShowHelp(false)
	// Only ctrl+q quits.
	l.KeyMap.Quit.SetEnabled(false)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "input for the running command"
	ti.CharLimit = 4096

	return Model{
		launcher: launcher,
		opts:     opts,
		log:      logging.OrDefault(opts.Logger).WithComponent("tui"),
		list:     l,
		output:   viewport.New(0, 0),
		input:    ti,
	}
}

// Init starts the poll loop.
func (m Model) Init() tea.Cmd {
	return tick(m.opts.PollInterval)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.poll()
		return m, tick(m.opts.PollInterval)

	case itemsChangedMsg:
		m.log.Info("menu reloaded", "items", len(msg.items))
		return m, m.list.SetItems(toListItems(msg.items))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+q", "ctrl+c":
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	}
	if m.screen == screenList {
		return m.handleListKey(msg)
	}
	return m.handleRunKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" && m.list.FilterState() != list.Filtering {
		if li, ok := m.list.SelectedItem().(listItem); ok {
			return m.launch(li.item)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleRunKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.abandon()
		m.session = nil
		m.screen = screenList
		m.input.Blur()
		return m, nil
	case "enter":
		if m.done {
			return m, nil
		}
		text := m.input.Value()
		m.input.Reset()
		if err := m.session.SendInput(text); err != nil {
			m.err = err
			m.log.Warn("send failed", "error", err)
		} else {
			m.err = nil
		}
		return m, nil
	case "ctrl+d":
		if !m.done {
			m.session.CloseInput()
			m.status = "input closed"
		}
		return m, nil
	case "ctrl+s":
		if m.input.EchoMode == textinput.EchoPassword {
			m.input.EchoMode = textinput.EchoNormal
		} else {
			m.input.EchoMode = textinput.EchoPassword
		}
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) launch(item config.Item) (tea.Model, tea.Cmd) {
	session, err := m.launcher.Launch(item)
	if err != nil {
		m.err = err
		m.log.Error("launch failed", "item", item.Name, "error", err)
		return m, nil
	}
	m.log.Info("launched", "item", item.Name, "invocation_id", session.ID())
	m.screen = screenRun
	m.session = session
	m.item = item
	m.lines = nil
	m.done = false
	m.status = "running"
	m.err = nil
	m.input.Reset()
	m.input.EchoMode = textinput.EchoNormal
	if item.SecretInput {
		m.input.EchoMode = textinput.EchoPassword
	}
	m.output.SetContent("")
	return m, m.input.Focus()
}

// abandon gives up on a session that hasn't finished.
func (m *Model) abandon() {
	if m.session != nil && !m.done {
		m.log.Info("abandoning", "invocation_id", m.session.ID())
		m.session.Abandon()
	}
}

// poll moves whatever the session produced into the output pane.
func (m *Model) poll() {
	if m.session == nil || m.done {
		return
	}
	lines, completed := m.session.PollOutput()
	for _, l := range lines {
		m.lines = append(m.lines, l.Text)
	}
	errLines := m.session.PollErrOutput()
	for _, l := range errLines {
		m.lines = append(m.lines, stdErrStyle.Render(l.Text))
	}
	if completed {
		m.done = true
		m.status = "finished"
		if res, ok := m.session.Result(); ok {
			m.status = fmt.Sprintf("finished, exit %d", res.Status.Code)
			if res.Err != nil {
				m.err = res.Err
			}
		}
		m.lines = append(m.lines, markerStyle.Render(finishedMarker))
		m.input.Blur()
	}
	if extra := len(m.lines) - m.opts.MaxOutputLines; extra > 0 {
		m.lines = m.lines[extra:]
	}
	if len(lines)+len(errLines) > 0 || completed {
		m.output.SetContent(strings.Join(m.lines, "\n"))
		m.output.GotoBottom()
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.list.SetSize(width, max(height-headerHeight-1, 0))
	m.output.Width = width
	m.output.Height = max(height-headerHeight-footerHeight, 0)
	m.input.Width = max(width-6, 0)
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("shbridge"))
	b.WriteString("\n")
	if m.screen == screenList {
		b.WriteString(m.list.View())
		b.WriteString("\n")
		b.WriteString(m.errLine())
		return b.String()
	}
	b.WriteString(m.output.View())
	b.WriteString("\n")
	b.WriteString(inputBoxStyle.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statusStyle.Render(m.item.Name+": "+m.status), " ", m.errLine()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		"enter send • ctrl+d close input • ctrl+s hide input • esc back • ctrl+q quit"))
	return b.String()
}

func (m Model) errLine() string {
	if m.err == nil {
		return ""
	}
	return errorStyle.Render(m.err.Error())
}

// Lines returns the output shown so far.
func (m Model) Lines() []string {
	return append([]string(nil), m.lines...)
}
