package tui

import "trivia-quiz-service/internal/domain"

// EventKind labels a session notification forwarded to the UI.
type EventKind int

const (
	EventSessionStarted EventKind = iota
	EventQuestion
	EventSelection
	EventTimer
	EventScore
	EventResolution
)

func (k EventKind) String() string {
	switch k {
	case EventSessionStarted:
		return "session_started"
	case EventQuestion:
		return "question"
	case EventSelection:
		return "selection"
	case EventTimer:
		return "timer"
	case EventScore:
		return "score"
	case EventResolution:
		return "resolution"
	default:
		return "unknown"
	}
}

// Event is one session notification.
type Event struct {
	Kind       EventKind
	Started    domain.SessionStarted
	Question   domain.QuestionDisplayed
	Selection  []int
	Remaining  int
	Score      int
	Resolution domain.Resolution
}
