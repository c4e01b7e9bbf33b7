package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"trivia-quiz-service/internal/clock"
	"trivia-quiz-service/internal/domain"
)

const (
	// DefaultResolutionDelay is how long a correct/incorrect resolution stays up before the next question.
	DefaultResolutionDelay = 2 * time.Second
	// DefaultTickInterval is the length of one countdown second.
	DefaultTickInterval = time.Second

	defaultStoreTimeout = 3 * time.Second
)

// Phase is the orchestrator state.
type Phase int

const (
	PhaseAwaitingQuestion Phase = iota
	PhaseQuestionActive
	PhaseResolving
	PhaseFinished
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingQuestion:
		return "awaiting_question"
	case PhaseQuestionActive:
		return "question_active"
	case PhaseResolving:
		return "resolving"
	case PhaseFinished:
		return "finished"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// SessionOptions configures a Session. Zero values select defaults.
type SessionOptions struct {
	ID              string
	Clock           clock.Clock
	Rand            *rand.Rand
	HighScores      domain.HighScoreStore
	Logger          *zap.Logger
	ResolutionDelay time.Duration
	TickInterval    time.Duration
	StoreTimeout    time.Duration
}

// Session runs one quiz play-through over a fixed question pool. Every event
// (selection, submit, countdown tick, resolution delay) is handled under mu, one at a time.
type Session struct {
	id              string
	questions       []domain.Question
	clock           clock.Clock
	rnd             *rand.Rand
	highScores      domain.HighScoreStore
	logger          *zap.Logger
	resolutionDelay time.Duration
	storeTimeout    time.Duration
	observers       Hub

	mu               sync.Mutex
	phase            Phase
	lifecycle        uint64 // bumped for every displayed question, restart and close
	sequencer        *Sequencer
	tracker          *Tracker
	score            Scoreboard
	countdown        *Countdown
	advance          clock.Timer
	current          int
	startupHighScore int
	highScore        int
	last             *domain.Resolution
}

// NewSession creates a session over questions. The slice is not copied and must not be mutated.
func NewSession(questions []domain.Question, opts SessionOptions) *Session {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ResolutionDelay <= 0 {
		opts.ResolutionDelay = DefaultResolutionDelay
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = defaultStoreTimeout
	}
	return &Session{
		id:              opts.ID,
		questions:       questions,
		clock:           opts.Clock,
		rnd:             opts.Rand,
		highScores:      opts.HighScores,
		logger:          opts.Logger.With(zap.String("session_id", opts.ID)),
		resolutionDelay: opts.ResolutionDelay,
		storeTimeout:    opts.StoreTimeout,
		phase:           PhaseAwaitingQuestion,
		sequencer:       NewSequencer(len(questions), opts.Rand),
		tracker:         NewTracker(),
		countdown:       NewCountdown(opts.Clock, opts.TickInterval),
		current:         noQuestion,
	}
}

// ID returns the identifier given at construction.
func (s *Session) ID() string {
	return s.id
}

// Observe registers o for notifications and returns its removal function.
func (s *Session) Observe(o Observer) (remove func()) {
	return s.observers.Add(o)
}

// Start displays the first question. It fails with domain.ErrEmptyPool when there
// are no questions and is a no-op once the session is under way.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseAwaitingQuestion {
		return nil
	}
	if len(s.questions) == 0 {
		return domain.ErrEmptyPool
	}
	s.beginLocked()
	return nil
}

// Restart discards all session state and starts over with a fresh sequence and a zero score.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseClosed {
		return nil
	}
	if len(s.questions) == 0 {
		return domain.ErrEmptyPool
	}
	s.stopTimersLocked()
	s.lifecycle++
	s.logger.Debug("session restarted")
	s.beginLocked()
	return nil
}

// Select picks answerIndex for the active question. Outside an active question it is ignored.
func (s *Session) Select(answerIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseQuestionActive {
		return nil
	}
	if answerIndex < 0 || answerIndex >= len(s.questions[s.current].Answers) {
		return domain.ErrAnswerOutOfRange
	}
	s.tracker.Select(answerIndex)
	s.observers.OnSelectionChanged(s.tracker.Selection())
	return nil
}

// Submit resolves the active question with the current selection. Outside an active question it is ignored.
func (s *Session) Submit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseQuestionActive {
		return
	}
	s.resolveLocked(false)
}

// Close stops all timers. Later events are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseClosed {
		return
	}
	s.stopTimersLocked()
	s.lifecycle++
	s.phase = PhaseClosed
}

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	ID               string             `json:"id"`
	Phase            Phase              `json:"phase"`
	CurrentIndex     int                `json:"currentIndex"`
	PoolSize         int                `json:"poolSize"`
	FinishedCount    int                `json:"finishedCount"`
	Score            int                `json:"score"`
	Selection        []int              `json:"selection"`
	StartupHighScore int                `json:"startupHighScore"`
	HighScore        int                `json:"highScore"`
	Countdown        CountdownState     `json:"-"`
	Remaining        int                `json:"remaining"`
	LastResolution   *domain.Resolution `json:"lastResolution,omitempty"`
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:               s.id,
		Phase:            s.phase,
		CurrentIndex:     s.current,
		PoolSize:         len(s.questions),
		FinishedCount:    s.sequencer.FinishedCount(),
		Score:            s.score.Total(),
		Selection:        s.tracker.Selection(),
		StartupHighScore: s.startupHighScore,
		HighScore:        s.highScore,
		Countdown:        s.countdown.State(),
		Remaining:        s.countdown.Remaining(),
	}
	if s.last != nil {
		res := *s.last
		snap.LastResolution = &res
	}
	return snap
}

func (s *Session) beginLocked() {
	s.sequencer = NewSequencer(len(s.questions), s.rnd)
	s.score = Scoreboard{}
	s.current = noQuestion
	s.last = nil
	s.startupHighScore = s.loadHighScore()
	s.highScore = s.startupHighScore

	s.observers.OnSessionStarted(domain.SessionStarted{
		SessionID:        s.id,
		PoolSize:         len(s.questions),
		StartupHighScore: s.startupHighScore,
	})
	s.observers.OnScoreChanged(0)
	s.displayLocked()
}

func (s *Session) displayLocked() {
	s.lifecycle++
	life := s.lifecycle

	index := s.sequencer.Next()
	q := s.questions[index]
	s.current = index
	s.tracker.Reset(q.SelectionMode)
	s.phase = PhaseQuestionActive

	s.logger.Debug("question displayed", zap.Int("index", index), zap.Int("finished", s.sequencer.FinishedCount()))
	s.observers.OnQuestionDisplayed(domain.QuestionDisplayed{
		SessionID: s.id,
		Index:     index,
		Position:  s.sequencer.FinishedCount() + 1,
		Total:     len(s.questions),
		Question:  q,
	})

	if q.UseTimer {
		s.countdown.Start(q.TimerSeconds,
			func(remaining int) { s.onTick(life, remaining) },
			func() { s.onExpire(life) },
		)
		s.observers.OnTimerTick(q.TimerSeconds)
	}
}

func (s *Session) onTick(life uint64, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if life != s.lifecycle || s.phase != PhaseQuestionActive {
		return
	}
	s.observers.OnTimerTick(remaining)
}

func (s *Session) onExpire(life uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if life != s.lifecycle || s.phase != PhaseQuestionActive {
		return
	}
	s.resolveLocked(true)
}

func (s *Session) onAdvance(life uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if life != s.lifecycle || s.phase != PhaseResolving {
		return
	}
	s.advance = nil
	s.displayLocked()
}

func (s *Session) resolveLocked(forced bool) {
	s.countdown.Cancel()

	index := s.current
	q := s.questions[index]
	correct := Evaluate(q.CorrectIndices(), s.tracker.Selection())
	s.sequencer.MarkFinished(index)
	total := s.score.Apply(correct, q.ScoreValue)
	s.observers.OnScoreChanged(total)

	res := domain.Resolution{
		SessionID:     s.id,
		QuestionIndex: index,
		Correct:       correct,
		Forced:        forced,
		ScoreDelta:    q.ScoreValue,
		Score:         total,
	}

	if s.sequencer.IsSessionFinished() {
		s.phase = PhaseFinished
		s.current = noQuestion
		s.persistHighScore(total)
		res.Type = domain.ResolutionFinished
		res.HighScore = s.highScore
		res.NewHighScore = s.highScore > s.startupHighScore
		s.logger.Info("session finished", zap.Int("score", total), zap.Int("high_score", s.highScore))
	} else {
		s.phase = PhaseResolving
		res.Type = domain.ResolutionIncorrect
		if correct {
			res.Type = domain.ResolutionCorrect
		}
		res.HighScore = s.highScore
		life := s.lifecycle
		s.advance = s.clock.AfterFunc(s.resolutionDelay, func() { s.onAdvance(life) })
	}

	s.last = &res
	s.observers.OnResolution(res)
}

func (s *Session) loadHighScore() int {
	if s.highScores == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.storeTimeout)
	defer cancel()
	score, err := s.highScores.Get(ctx)
	if err != nil {
		s.logger.Warn("read high score", zap.Error(err))
		return 0
	}
	return score
}

func (s *Session) persistHighScore(total int) {
	if total <= s.startupHighScore {
		return
	}
	s.highScore = total
	if s.highScores == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.storeTimeout)
	defer cancel()
	if err := s.highScores.Set(ctx, total); err != nil {
		s.logger.Error("write high score", zap.Int("score", total), zap.Error(err))
	}
}

func (s *Session) stopTimersLocked() {
	s.countdown.Cancel()
	if s.advance != nil {
		s.advance.Stop()
		s.advance = nil
	}
}
