package app

import "math/rand"

// noQuestion marks the current pointer before the first and after the last question.
const noQuestion = -1

// Sequencer draws pool indices in random order without repeating finished questions.
type Sequencer struct {
	size     int
	rnd      *rand.Rand
	finished map[int]struct{}
	previous int
}

// NewSequencer creates a sequencer over a pool of size questions.
func NewSequencer(size int, rnd *rand.Rand) *Sequencer {
	return &Sequencer{
		size:     size,
		rnd:      rnd,
		finished: make(map[int]struct{}, size),
		previous: noQuestion,
	}
}

// Next returns a uniformly random index that is neither finished nor the previous draw.
// Callers must not call Next once IsSessionFinished reports true.
func (s *Sequencer) Next() int {
	candidates := make([]int, 0, s.size-len(s.finished))
	for i := 0; i < s.size; i++ {
		if _, done := s.finished[i]; done || i == s.previous {
			continue
		}
		candidates = append(candidates, i)
	}
	if len(candidates) == 0 {
		// Only the unfinished previous draw is left; repeating it is the sole way forward.
		candidates = append(candidates, s.previous)
	}
	next := candidates[s.rnd.Intn(len(candidates))]
	s.previous = next
	return next
}

// MarkFinished records index as presented and scored.
func (s *Sequencer) MarkFinished(index int) {
	s.finished[index] = struct{}{}
}

// FinishedCount is the size of the finished record.
func (s *Sequencer) FinishedCount() int {
	return len(s.finished)
}

// IsFinished reports whether index was already scored.
func (s *Sequencer) IsFinished(index int) bool {
	_, ok := s.finished[index]
	return ok
}

// IsSessionFinished reports whether every pool index has been scored.
func (s *Sequencer) IsSessionFinished() bool {
	return len(s.finished) >= s.size
}
