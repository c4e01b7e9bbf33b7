package app

import "testing"

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name    string
		correct []int
		picked  []int
		want    bool
	}{
		{"same order", []int{0, 2}, []int{0, 2}, true},
		{"any order", []int{0, 2}, []int{2, 0}, true},
		{"subset", []int{0, 2}, []int{0}, false},
		{"superset", []int{0, 2}, []int{0, 1, 2}, false},
		{"empty pick", []int{0, 2}, nil, false},
		{"both empty", nil, nil, true},
		{"wrong single", []int{1}, []int{0}, false},
		{"duplicate pick", []int{1}, []int{1, 1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(tc.correct, tc.picked); got != tc.want {
				t.Fatalf("Evaluate(%v, %v) = %v, want %v", tc.correct, tc.picked, got, tc.want)
			}
		})
	}
}

func TestScoreboardApply(t *testing.T) {
	var s Scoreboard
	if got := s.Apply(true, 10); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := s.Apply(false, 5); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := s.Apply(false, 20); got != -15 {
		t.Fatalf("totals are not clamped: expected -15, got %d", got)
	}
}
