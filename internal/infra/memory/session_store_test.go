package memory

import (
	"context"
	"testing"

	"trivia-quiz-service/internal/app"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	session := app.NewSession(samplePack().Questions, app.SessionOptions{ID: "s1"})
	store.Save(session)
	if got, ok := store.Get("s1"); !ok || got != session {
		t.Fatalf("expected session present")
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session removed")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestHighScoreBookDefaultsToZero(t *testing.T) {
	ctx := context.Background()
	book := NewHighScoreBook()

	got, err := book.Get(ctx, "p1")
	if err != nil || got != 0 {
		t.Fatalf("expected 0, got %d (%v)", got, err)
	}
	if err := book.Set(ctx, "p1", 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := book.Get(ctx, "p1"); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
}

func TestHighScoreBookKeepsHighest(t *testing.T) {
	ctx := context.Background()
	book := NewHighScoreBook()

	if err := book.Set(ctx, "p1", 50); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := book.Set(ctx, "p1", 30); err != nil {
		t.Fatalf("set lower: %v", err)
	}
	if got, _ := book.Get(ctx, "p1"); got != 50 {
		t.Fatalf("lower score replaced the high score, got %d", got)
	}
}
