package app

// Evaluate reports whether picked is exactly the correct set. Duplicates are ignored.
func Evaluate(correct, picked []int) bool {
	want := make(map[int]struct{}, len(correct))
	for _, i := range correct {
		want[i] = struct{}{}
	}
	got := make(map[int]struct{}, len(picked))
	for _, i := range picked {
		if _, ok := want[i]; !ok {
			return false
		}
		got[i] = struct{}{}
	}
	return len(got) == len(want)
}

// Scoreboard is the running total of a session.
type Scoreboard struct {
	total int
}

// Apply adds value for a correct answer and subtracts it otherwise. Totals may go negative.
func (s *Scoreboard) Apply(correct bool, value int) int {
	if correct {
		s.total += value
	} else {
		s.total -= value
	}
	return s.total
}

// Total returns the running total.
func (s *Scoreboard) Total() int {
	return s.total
}
