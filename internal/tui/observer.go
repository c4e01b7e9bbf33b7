package tui

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/domain"
)

const eventBuffer = 256

// Controller forwards session notifications to the UI and implements app.Observer.
type Controller struct {
	events    chan Event
	logger    *zap.Logger
	closeOnce sync.Once
}

func NewController(logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{events: make(chan Event, eventBuffer), logger: logger}
}

// Options configures the terminal program.
type Options struct {
	Input   io.Reader
	Output  io.Writer
	NoColor bool
}

// Run shows the UI until the player quits.
func (c *Controller) Run(commands Commands, opts Options) error {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	progOpts := []tea.ProgramOption{tea.WithOutput(opts.Output), tea.WithAltScreen()}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	_, err := tea.NewProgram(NewModel(c.events, commands, opts.NoColor), progOpts...).Run()
	return err
}

// Close ends the event stream, which also quits a running UI. The observed
// session must be closed first.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

func (c *Controller) OnSessionStarted(ev domain.SessionStarted) {
	c.send(Event{Kind: EventSessionStarted, Started: ev})
}

func (c *Controller) OnQuestionDisplayed(ev domain.QuestionDisplayed) {
	c.send(Event{Kind: EventQuestion, Question: ev})
}

func (c *Controller) OnSelectionChanged(selection []int) {
	c.send(Event{Kind: EventSelection, Selection: selection})
}

func (c *Controller) OnTimerTick(remaining int) {
	c.send(Event{Kind: EventTimer, Remaining: remaining})
}

func (c *Controller) OnScoreChanged(total int) {
	c.send(Event{Kind: EventScore, Score: total})
}

func (c *Controller) OnResolution(res domain.Resolution) {
	c.send(Event{Kind: EventResolution, Resolution: res})
}

// send enqueues an event without blocking the session. A full buffer drops the event.
func (c *Controller) send(event Event) {
	select {
	case c.events <- event:
	default:
		c.logger.Warn("ui event dropped", zap.Stringer("kind", event.Kind), zap.Int("buffered", len(c.events)))
	}
}
