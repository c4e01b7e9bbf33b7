package tui

import "trivia-quiz-service/internal/domain"

// State is everything the view needs.
type State struct {
	PoolSize         int
	StartupHighScore int

	Position     int
	Total        int
	Prompt       string
	Answers      []string
	Mode         domain.SelectionMode
	Selection    map[int]bool
	UseTimer     bool
	TimerSeconds int
	Remaining    int

	Score      int
	Resolution *domain.Resolution
	Finished   bool
	HighScore  int
	NewHigh    bool
	Err        string
}

// Reduce applies one event to the state.
func Reduce(state State, ev Event) State {
	switch ev.Kind {
	case EventSessionStarted:
		state = State{
			PoolSize:         ev.Started.PoolSize,
			StartupHighScore: ev.Started.StartupHighScore,
			HighScore:        ev.Started.StartupHighScore,
		}
	case EventQuestion:
		q := ev.Question.Question
		answers := make([]string, len(q.Answers))
		for i, a := range q.Answers {
			answers[i] = a.Text
		}
		state.Position = ev.Question.Position
		state.Total = ev.Question.Total
		state.Prompt = q.Prompt
		state.Answers = answers
		state.Mode = q.SelectionMode
		state.Selection = map[int]bool{}
		state.UseTimer = q.UseTimer
		state.TimerSeconds = q.TimerSeconds
		state.Remaining = q.TimerSeconds
		state.Resolution = nil
		state.Err = ""
	case EventSelection:
		state.Selection = make(map[int]bool, len(ev.Selection))
		for _, i := range ev.Selection {
			state.Selection[i] = true
		}
		state.Err = ""
	case EventTimer:
		state.Remaining = ev.Remaining
	case EventScore:
		state.Score = ev.Score
	case EventResolution:
		res := ev.Resolution
		state.Resolution = &res
		if res.Type == domain.ResolutionFinished {
			state.Finished = true
			state.HighScore = res.HighScore
			state.NewHigh = res.NewHighScore
		}
	}
	return state
}
