package tui

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"trivia-quiz-service/internal/domain"
)

type fakeCommands struct {
	selected  []int
	submits   int
	restarts  int
	selectErr error
}

func (f *fakeCommands) Select(i int) error {
	f.selected = append(f.selected, i)
	return f.selectErr
}

func (f *fakeCommands) Submit() { f.submits++ }

func (f *fakeCommands) Restart() error {
	f.restarts++
	return nil
}

func TestKeysRunCommands(t *testing.T) {
	cmds := &fakeCommands{}
	m := NewModel(nil, cmds, true)
	m = deliver(t, m, questionEvent(1, false, 0))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	if len(cmds.selected) != 1 || cmds.selected[0] != 1 {
		t.Fatalf("expected key 2 to select index 1, got %v", cmds.selected)
	}
	if cmds.submits != 1 {
		t.Fatalf("expected one submit, got %d", cmds.submits)
	}
	if cmds.restarts != 0 {
		t.Fatalf("restart must wait for the final screen")
	}

	m = deliver(t, m, Event{Kind: EventResolution, Resolution: domain.Resolution{Type: domain.ResolutionFinished}})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmds.restarts != 1 || cmds.submits != 1 {
		t.Fatalf("expected restart only on final screen, got restarts=%d submits=%d", cmds.restarts, cmds.submits)
	}
}

// orderedCommands records the order in which commands reach the session.
type orderedCommands struct {
	mu        sync.Mutex
	calls     []string
	submitted chan struct{}
}

func (o *orderedCommands) Select(i int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, "select")
	return nil
}

func (o *orderedCommands) Submit() {
	o.mu.Lock()
	o.calls = append(o.calls, "submit")
	o.mu.Unlock()
	close(o.submitted)
}

func (o *orderedCommands) Restart() error { return nil }

func TestProgramDeliversKeysInOrder(t *testing.T) {
	cmds := &orderedCommands{submitted: make(chan struct{})}
	p := tea.NewProgram(NewModel(nil, cmds, true),
		tea.WithInput(strings.NewReader("1\r")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)
	done := make(chan error, 1)
	go func() {
		_, err := p.Run()
		done <- err
	}()

	select {
	case <-cmds.submitted:
	case <-time.After(5 * time.Second):
		p.Kill()
		t.Fatalf("submit never reached the session")
	}
	p.Quit()
	if err := <-done; err != nil {
		t.Fatalf("program: %v", err)
	}

	cmds.mu.Lock()
	defer cmds.mu.Unlock()
	if len(cmds.calls) != 2 || cmds.calls[0] != "select" || cmds.calls[1] != "submit" {
		t.Fatalf("expected select then submit, got %v", cmds.calls)
	}
}

func TestSelectErrorIsShown(t *testing.T) {
	cmds := &fakeCommands{selectErr: domain.ErrAnswerOutOfRange}
	m := NewModel(nil, cmds, true)
	m = deliver(t, m, questionEvent(1, false, 0))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})
	if m.State().Err != domain.ErrAnswerOutOfRange.Error() {
		t.Fatalf("expected error in state, got %q", m.State().Err)
	}
}

func TestQuitKeys(t *testing.T) {
	m := NewModel(nil, &fakeCommands{}, true)
	for _, key := range []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'q'}}, {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected quit message for %q", key.String())
		}
	}
}

func TestEventsChannelFeedsModel(t *testing.T) {
	ctrl := NewController(nil)
	ctrl.OnSessionStarted(domain.SessionStarted{PoolSize: 2})
	ctrl.OnScoreChanged(5)
	ctrl.Close()

	m := NewModel(ctrl.events, nil, true)
	for i := 0; i < 2; i++ {
		msg := m.Init()()
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	if m.State().PoolSize != 2 || m.State().Score != 5 {
		t.Fatalf("unexpected state %+v", m.State())
	}
	if _, ok := m.Init()().(tea.QuitMsg); !ok {
		t.Fatalf("closed stream should quit")
	}
}

func deliver(t *testing.T, m Model, ev Event) Model {
	t.Helper()
	next, _ := m.Update(EventMsg{Event: ev})
	return next.(Model)
}

// press applies the key and runs the resulting command synchronously.
func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(key)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	if msg := cmd(); msg != nil {
		next, _ = m.Update(msg)
		m = next.(Model)
	}
	return m
}
