package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Commands is the part of a session the UI drives.
type Commands interface {
	Select(answerIndex int) error
	Submit()
	Restart() error
}

// Model renders a quiz session using Bubble Tea.
type Model struct {
	state    State
	events   <-chan Event
	commands Commands
	noColor  bool
}

// NewModel constructs a model that reads events and sends key presses to commands.
func NewModel(events <-chan Event, commands Commands, noColor bool) Model {
	return Model{events: events, commands: commands, noColor: noColor}
}

// State returns the current view state.
func (m Model) State() State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case EventMsg:
		m.state = Reduce(m.state, typed.Event)
		return m, waitForEvent(m.events)
	}
	return m, nil
}

func (m Model) View() string {
	return render(m.state, m.noColor)
}

// handleKey calls into the session on the update loop, so key presses reach it
// in the order they were typed. Session notifications come back as events; the
// controller never blocks on them.
func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := key.String()
	if s == "q" || s == "ctrl+c" {
		return m, tea.Quit
	}
	if m.commands == nil {
		return m, nil
	}

	var err error
	switch {
	case s == "enter":
		if !m.state.Finished {
			m.commands.Submit()
		}
	case s == "r":
		if m.state.Finished {
			err = m.commands.Restart()
		}
	case len(s) == 1 && s[0] >= '1' && s[0] <= '9':
		err = m.commands.Select(int(s[0] - '1'))
	}
	if err != nil {
		m.state.Err = err.Error()
	}
	return m, nil
}

// EventMsg wraps a session event for Bubble Tea.
type EventMsg struct {
	Event Event
}

// waitForEvent blocks until a session event is available.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}
