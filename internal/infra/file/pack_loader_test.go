package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"trivia-quiz-service/internal/domain"
)

const validPack = `
title: Science
questions:
  - prompt: Boiling point of water at sea level?
    mode: single
    use_timer: true
    timer_seconds: 8
    answers:
      - text: 90 C
      - text: 100 C
        correct: true
  - prompt: Noble gases?
    score_value: 25
    answers:
      - text: Neon
        correct: true
      - text: Iron
      - text: Argon
        correct: true
`

func TestLoadPackFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "science.yaml"), validPack)

	pack, err := NewPackLoader(dir).LoadPack(context.Background(), "science")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if pack.ID != "science" || pack.Title != "Science" || len(pack.Questions) != 2 {
		t.Fatalf("unexpected pack %+v", pack)
	}
	first, second := pack.Questions[0], pack.Questions[1]
	if first.SelectionMode != domain.SelectionSingle || !first.UseTimer || first.TimerSeconds != 8 {
		t.Fatalf("unexpected first question %+v", first)
	}
	if first.ScoreValue != domain.DefaultScoreValue {
		t.Fatalf("expected default score value, got %d", first.ScoreValue)
	}
	if second.SelectionMode != domain.SelectionMultiple || second.ScoreValue != 25 {
		t.Fatalf("unexpected second question %+v", second)
	}
	if got := second.CorrectIndices(); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("unexpected correct indices %v", got)
	}
}

func TestLoadPackNotFound(t *testing.T) {
	loader := NewPackLoader(t.TempDir())
	for _, id := range []string{"absent", "../etc/passwd", ""} {
		if _, err := loader.LoadPack(context.Background(), id); !errors.Is(err, domain.ErrPackNotFound) {
			t.Fatalf("%q: expected pack not found, got %v", id, err)
		}
	}
}

func TestParseRejectsInvalidContent(t *testing.T) {
	cases := map[string]string{
		"not yaml":       "questions: [",
		"empty document": "",
		"no answers": `
questions:
  - prompt: Lonely
    answers: []
`,
		"unknown mode": `
questions:
  - prompt: Pick
    mode: some
    answers: [{text: a, correct: true}]
`,
		"negative timer": `
questions:
  - prompt: Hurry
    use_timer: true
    timer_seconds: -1
    answers: [{text: a, correct: true}]
`,
		"unknown field": `
questions:
  - prompt: Typo
    anwsers: [{text: a}]
    answers: [{text: a}]
`,
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw)); !errors.Is(err, domain.ErrInvalidQuestion) {
			t.Fatalf("%s: expected invalid question, got %v", name, err)
		}
	}
}

func TestBundledPackIsValid(t *testing.T) {
	pack, err := LoadFile(filepath.Join("..", "..", "..", "packs", "general.yaml"))
	if err != nil {
		t.Fatalf("load bundled pack: %v", err)
	}
	if pack.ID != "general" || len(pack.Questions) == 0 {
		t.Fatalf("unexpected bundled pack %+v", pack)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
