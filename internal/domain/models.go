package domain

import (
	"context"
	"fmt"
	"strings"
)

// DefaultScoreValue is applied to questions that do not set a score value.
const DefaultScoreValue = 10

// SelectionMode controls how many answers a question accepts.
type SelectionMode int

const (
	// SelectionMultiple accepts any number of answers; picking an answer twice removes it.
	SelectionMultiple SelectionMode = iota
	// SelectionSingle accepts exactly one answer; a new pick replaces the old one.
	SelectionSingle
)

func (m SelectionMode) String() string {
	if m == SelectionSingle {
		return "single"
	}
	return "multiple"
}

// MarshalText encodes the mode as "single" or "multiple".
func (m SelectionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts "single", "multiple" and "multi"; empty means multiple.
func (m *SelectionMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "multiple", "multi":
		*m = SelectionMultiple
	case "single":
		*m = SelectionSingle
	default:
		return fmt.Errorf("%w: unknown selection mode %q", ErrInvalidQuestion, string(text))
	}
	return nil
}

// Answer is one choice of a question.
type Answer struct {
	Text      string `json:"text" yaml:"text"`
	IsCorrect bool   `json:"correct" yaml:"correct"`
}

// Question is an immutable quiz item. Answer indices are the identity used for scoring.
type Question struct {
	Prompt        string        `json:"prompt" yaml:"prompt"`
	Answers       []Answer      `json:"answers" yaml:"answers"`
	SelectionMode SelectionMode `json:"mode" yaml:"mode"`
	UseTimer      bool          `json:"useTimer" yaml:"use_timer"`
	TimerSeconds  int           `json:"timerSeconds" yaml:"timer_seconds"`
	ScoreValue    int           `json:"scoreValue" yaml:"score_value"`
}

// CorrectIndices returns the indices of every correct answer in order.
func (q Question) CorrectIndices() []int {
	out := make([]int, 0, len(q.Answers))
	for i, a := range q.Answers {
		if a.IsCorrect {
			out = append(out, i)
		}
	}
	return out
}

// Validate checks the structural rules every loaded question must satisfy.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if len(q.Answers) == 0 {
		return fmt.Errorf("%w: %q has no answers", ErrInvalidQuestion, q.Prompt)
	}
	if q.TimerSeconds < 0 {
		return fmt.Errorf("%w: %q has a negative timer", ErrInvalidQuestion, q.Prompt)
	}
	if q.ScoreValue <= 0 {
		return fmt.Errorf("%w: %q has a non-positive score value", ErrInvalidQuestion, q.Prompt)
	}
	return nil
}

// Pack is a named, ordered pool of questions.
type Pack struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Normalize fills defaults left out by pack authors.
func (p *Pack) Normalize() {
	for i := range p.Questions {
		if p.Questions[i].ScoreValue == 0 {
			p.Questions[i].ScoreValue = DefaultScoreValue
		}
	}
}

// Validate checks every question in the pack.
func (p Pack) Validate() error {
	for i, q := range p.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// QuestionSource supplies the ordered question pool for a session.
type QuestionSource interface {
	LoadAll(ctx context.Context) ([]Question, error)
}

// HighScoreStore persists a single best score.
type HighScoreStore interface {
	Get(ctx context.Context) (int, error)
	Set(ctx context.Context, score int) error
}

// ResolutionType is the feedback shown after a question is submitted.
type ResolutionType int

const (
	ResolutionCorrect ResolutionType = iota
	ResolutionIncorrect
	ResolutionFinished
)

func (t ResolutionType) String() string {
	switch t {
	case ResolutionCorrect:
		return "correct"
	case ResolutionIncorrect:
		return "incorrect"
	case ResolutionFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// MarshalText lets resolution types travel as strings.
func (t ResolutionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// QuestionDisplayed announces a newly active question.
type QuestionDisplayed struct {
	SessionID string
	Index     int // pool index
	Position  int // 1-based position in the session
	Total     int
	Question  Question
}

// Resolution describes the outcome of one submitted question.
type Resolution struct {
	SessionID     string
	Type          ResolutionType
	QuestionIndex int
	Correct       bool
	Forced        bool // submitted by countdown expiry
	ScoreDelta    int  // unsigned score value of the question
	Score         int
	HighScore     int
	NewHighScore  bool
}

// SessionStarted is emitted once per session start or restart.
type SessionStarted struct {
	SessionID        string
	PoolSize         int
	StartupHighScore int
}
