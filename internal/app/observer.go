package app

import (
	"sync"

	"trivia-quiz-service/internal/domain"
)

// Observer receives one-way session notifications. Calls are made while the
// session handles an event, so implementations must not block for long and must
// not call back into the session on the same goroutine.
type Observer interface {
	OnSessionStarted(ev domain.SessionStarted)
	OnQuestionDisplayed(ev domain.QuestionDisplayed)
	OnSelectionChanged(selection []int)
	OnTimerTick(remaining int)
	OnScoreChanged(total int)
	OnResolution(res domain.Resolution)
}

// ObserverFuncs adapts optional callbacks to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	SessionStarted    func(domain.SessionStarted)
	QuestionDisplayed func(domain.QuestionDisplayed)
	SelectionChanged  func([]int)
	TimerTick         func(int)
	ScoreChanged      func(int)
	Resolution        func(domain.Resolution)
}

func (f ObserverFuncs) OnSessionStarted(ev domain.SessionStarted) {
	if f.SessionStarted != nil {
		f.SessionStarted(ev)
	}
}

func (f ObserverFuncs) OnQuestionDisplayed(ev domain.QuestionDisplayed) {
	if f.QuestionDisplayed != nil {
		f.QuestionDisplayed(ev)
	}
}

func (f ObserverFuncs) OnSelectionChanged(selection []int) {
	if f.SelectionChanged != nil {
		f.SelectionChanged(selection)
	}
}

func (f ObserverFuncs) OnTimerTick(remaining int) {
	if f.TimerTick != nil {
		f.TimerTick(remaining)
	}
}

func (f ObserverFuncs) OnScoreChanged(total int) {
	if f.ScoreChanged != nil {
		f.ScoreChanged(total)
	}
}

func (f ObserverFuncs) OnResolution(res domain.Resolution) {
	if f.Resolution != nil {
		f.Resolution(res)
	}
}

// Hub fans notifications out to registered observers in registration order.
// Notifying an empty hub is a no-op.
type Hub struct {
	mu        sync.RWMutex
	nextID    uint64
	observers []registered
}

type registered struct {
	id       uint64
	observer Observer
}

// Add registers o and returns a function that removes it. Removing twice is safe.
func (h *Hub) Add(o Observer) (remove func()) {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.observers = append(h.observers, registered{id: id, observer: o})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

// Len reports how many observers are registered.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, r := range h.observers {
		if r.id == id {
			h.observers = append(h.observers[:i:i], h.observers[i+1:]...)
			return
		}
	}
}

func (h *Hub) snapshot() []Observer {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Observer, len(h.observers))
	for i, r := range h.observers {
		out[i] = r.observer
	}
	return out
}

func (h *Hub) OnSessionStarted(ev domain.SessionStarted) {
	for _, o := range h.snapshot() {
		o.OnSessionStarted(ev)
	}
}

func (h *Hub) OnQuestionDisplayed(ev domain.QuestionDisplayed) {
	for _, o := range h.snapshot() {
		o.OnQuestionDisplayed(ev)
	}
}

func (h *Hub) OnSelectionChanged(selection []int) {
	for _, o := range h.snapshot() {
		o.OnSelectionChanged(append([]int(nil), selection...))
	}
}

func (h *Hub) OnTimerTick(remaining int) {
	for _, o := range h.snapshot() {
		o.OnTimerTick(remaining)
	}
}

func (h *Hub) OnScoreChanged(total int) {
	for _, o := range h.snapshot() {
		o.OnScoreChanged(total)
	}
}

func (h *Hub) OnResolution(res domain.Resolution) {
	for _, o := range h.snapshot() {
		o.OnResolution(res)
	}
}
