package cli

import "trivia-quiz-service/internal/domain"

// samplePacks is the built-in pack used when no pack directory or database is configured.
func samplePacks() map[string]domain.Pack {
	return map[string]domain.Pack{
		"general": {
			ID:    "general",
			Title: "General knowledge",
			Questions: []domain.Question{
				{
					Prompt: "What is 2 + 2?",
					Answers: []domain.Answer{
						{Text: "3"},
						{Text: "4", IsCorrect: true},
						{Text: "5"},
					},
					SelectionMode: domain.SelectionSingle,
					ScoreValue:    10,
				},
				{
					Prompt: "Which of these are prime numbers?",
					Answers: []domain.Answer{
						{Text: "2", IsCorrect: true},
						{Text: "9"},
						{Text: "11", IsCorrect: true},
						{Text: "15"},
					},
					SelectionMode: domain.SelectionMultiple,
					ScoreValue:    20,
				},
				{
					Prompt: "What is the capital of France?",
					Answers: []domain.Answer{
						{Text: "Paris", IsCorrect: true},
						{Text: "Lyon"},
						{Text: "Marseille"},
					},
					SelectionMode: domain.SelectionSingle,
					UseTimer:      true,
					TimerSeconds:  10,
					ScoreValue:    10,
				},
			},
		},
	}
}
