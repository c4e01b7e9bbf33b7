package app

import (
	"testing"

	"trivia-quiz-service/internal/domain"
)

func TestHubDispatchOrderAndRemoval(t *testing.T) {
	var hub Hub
	var calls []string

	removeA := hub.Add(ObserverFuncs{ScoreChanged: func(int) { calls = append(calls, "a") }})
	hub.Add(ObserverFuncs{ScoreChanged: func(int) { calls = append(calls, "b") }})
	hub.OnScoreChanged(1)

	removeA()
	removeA()
	hub.OnScoreChanged(2)

	if got := len(calls); got != 3 || calls[0] != "a" || calls[1] != "b" || calls[2] != "b" {
		t.Fatalf("unexpected dispatch %v", calls)
	}
	if hub.Len() != 1 {
		t.Fatalf("expected 1 observer, got %d", hub.Len())
	}
}

func TestHubCopiesSelection(t *testing.T) {
	var hub Hub
	var first, second []int
	hub.Add(ObserverFuncs{SelectionChanged: func(sel []int) { first = sel; sel[0] = 99 }})
	hub.Add(ObserverFuncs{SelectionChanged: func(sel []int) { second = sel }})

	hub.OnSelectionChanged([]int{1, 2})
	if first[0] != 99 || second[0] != 1 {
		t.Fatalf("observers share the selection slice: %v %v", first, second)
	}
}

func TestObserverFuncsSkipNil(t *testing.T) {
	var f ObserverFuncs
	f.OnSessionStarted(domain.SessionStarted{})
	f.OnQuestionDisplayed(domain.QuestionDisplayed{})
	f.OnSelectionChanged(nil)
	f.OnTimerTick(1)
	f.OnScoreChanged(1)
	f.OnResolution(domain.Resolution{})
}
