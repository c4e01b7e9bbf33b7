package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"trivia-quiz-service/internal/app"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute, nil)
	session := app.NewSession(nil, app.SessionOptions{ID: "s-1"})

	store.Save(session)
	if !mr.Exists("quiz:session:s-1") {
		t.Fatalf("expected redis key to be set")
	}
	if got, ok := store.Get("s-1"); !ok || got != session {
		t.Fatalf("expected stored session")
	}

	store.Delete("s-1")
	if mr.Exists("quiz:session:s-1") {
		t.Fatalf("expected redis key to be removed")
	}
	if _, ok := store.Get("s-1"); ok {
		t.Fatalf("expected session to be gone")
	}
}

func TestSessionStoreLogsRedisFailures(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := newClient(mr)
	mr.Close()

	core, logs := observer.New(zap.WarnLevel)
	store := NewSessionStore(client, time.Minute, zap.New(core))
	session := app.NewSession(nil, app.SessionOptions{ID: "s-2"})

	store.Save(session)
	if _, ok := store.Get("s-2"); !ok {
		t.Fatalf("expected session kept locally despite redis failure")
	}
	store.Delete("s-2")

	if n := logs.FilterMessage("mark session alive").Len(); n != 1 {
		t.Fatalf("expected save failure to be logged, got %v", logs.All())
	}
	if n := logs.FilterMessage("clear session marker").Len(); n != 1 {
		t.Fatalf("expected delete failure to be logged, got %v", logs.All())
	}
}

func TestHighScoreBook(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	book := NewHighScoreBook(newClient(mr))

	score, err := book.Get(ctx, "alice")
	if err != nil || score != 0 {
		t.Fatalf("expected 0 for unknown player, got %d, %v", score, err)
	}
	if err := book.Set(ctx, "alice", 42); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := mr.Get("quiz:highscore:alice"); got != "42" {
		t.Fatalf("expected raw value 42, got %q", got)
	}
	if score, _ := book.Get(ctx, "alice"); score != 42 {
		t.Fatalf("expected 42, got %d", score)
	}
	if err := book.Set(ctx, "alice", 7); err != nil {
		t.Fatalf("lower set: %v", err)
	}
	if got, _ := mr.Get("quiz:highscore:alice"); got != "42" {
		t.Fatalf("lower score replaced the high score, got %q", got)
	}

	mr.Set("quiz:highscore:bob", "many")
	if _, err := book.Get(ctx, "bob"); err == nil {
		t.Fatalf("expected error for corrupt value")
	}
}
