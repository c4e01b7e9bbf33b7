package app

import (
	"sort"

	"trivia-quiz-service/internal/domain"
)

// Tracker holds the answers picked for the active question.
type Tracker struct {
	mode   domain.SelectionMode
	picked map[int]struct{}
}

// NewTracker returns an empty tracker in multiple-selection mode.
func NewTracker() *Tracker {
	return &Tracker{picked: make(map[int]struct{})}
}

// Reset empties the selection and switches to the mode of the next question.
func (t *Tracker) Reset(mode domain.SelectionMode) {
	t.mode = mode
	t.picked = make(map[int]struct{})
}

// Select applies one pick. Single mode replaces the selection, multiple mode toggles.
func (t *Tracker) Select(index int) {
	if t.mode == domain.SelectionSingle {
		t.picked = map[int]struct{}{index: {}}
		return
	}
	if _, ok := t.picked[index]; ok {
		delete(t.picked, index)
		return
	}
	t.picked[index] = struct{}{}
}

// Selection returns the picked indices in ascending order.
func (t *Tracker) Selection() []int {
	out := make([]int, 0, len(t.picked))
	for i := range t.picked {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Len reports how many answers are picked.
func (t *Tracker) Len() int {
	return len(t.picked)
}
