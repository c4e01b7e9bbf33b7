package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/clock"
	"trivia-quiz-service/internal/domain"
)

// SessionRepository abstracts where running sessions are kept (in-memory, Redis, etc).
type SessionRepository interface {
	Save(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// PackRepository loads question packs (from cache/backing store).
type PackRepository interface {
	GetPack(ctx context.Context, packID string) (domain.Pack, error)
}

// HighScoreBook keeps one best score per player.
type HighScoreBook interface {
	Get(ctx context.Context, playerID string) (int, error)
	Set(ctx context.Context, playerID string, score int) error
}

// ServiceOptions configures sessions created by QuizService.
type ServiceOptions struct {
	Clock           clock.Clock
	Logger          *zap.Logger
	ResolutionDelay time.Duration
	TickInterval    time.Duration
}

// QuizService hosts independent single-player sessions.
type QuizService struct {
	sessions SessionRepository
	packs    PackRepository
	scores   HighScoreBook
	opts     ServiceOptions
	newID    func() string
}

func NewQuizService(sessions SessionRepository, packs PackRepository, scores HighScoreBook, opts ServiceOptions) *QuizService {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &QuizService{
		sessions: sessions,
		packs:    packs,
		scores:   scores,
		opts:     opts,
		newID:    uuid.NewString,
	}
}

// Start loads the pack, creates a session for the player and displays its first question.
// The observer, if any, is attached before the first notification.
func (s *QuizService) Start(ctx context.Context, packID, playerID string, observer Observer) (*Session, error) {
	pack, err := s.packs.GetPack(ctx, packID)
	if err != nil {
		return nil, fmt.Errorf("load pack %q: %w", packID, err)
	}
	if len(pack.Questions) == 0 {
		return nil, domain.ErrEmptyPool
	}

	id := s.newID()
	session := NewSession(pack.Questions, SessionOptions{
		ID:              id,
		Clock:           s.opts.Clock,
		HighScores:      PlayerHighScore(s.scores, playerID),
		Logger:          s.opts.Logger.With(zap.String("player_id", playerID), zap.String("pack_id", packID)),
		ResolutionDelay: s.opts.ResolutionDelay,
		TickInterval:    s.opts.TickInterval,
	})
	if observer != nil {
		session.Observe(observer)
	}
	if err := session.Start(); err != nil {
		return nil, err
	}
	s.sessions.Save(session)
	return session, nil
}

// Get returns a running session.
func (s *QuizService) Get(_ context.Context, sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// End closes the session and forgets it.
func (s *QuizService) End(_ context.Context, sessionID string) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	session.Close()
	s.sessions.Delete(sessionID)
}

// HighScore returns the stored best score of a player.
func (s *QuizService) HighScore(ctx context.Context, playerID string) (int, error) {
	if s.scores == nil {
		return 0, nil
	}
	return s.scores.Get(ctx, playerID)
}

// PackSource adapts a pack repository to domain.QuestionSource.
type PackSource struct {
	Packs  PackRepository
	PackID string
}

func (p PackSource) LoadAll(ctx context.Context) ([]domain.Question, error) {
	pack, err := p.Packs.GetPack(ctx, p.PackID)
	if err != nil {
		return nil, err
	}
	return pack.Questions, nil
}

// PlayerHighScore narrows a book to the single-value store a session reads and writes.
// A nil book yields a nil store.
func PlayerHighScore(book HighScoreBook, playerID string) domain.HighScoreStore {
	if book == nil {
		return nil
	}
	return playerHighScore{book: book, playerID: playerID}
}

type playerHighScore struct {
	book     HighScoreBook
	playerID string
}

func (p playerHighScore) Get(ctx context.Context) (int, error) {
	return p.book.Get(ctx, p.playerID)
}

func (p playerHighScore) Set(ctx context.Context, score int) error {
	return p.book.Set(ctx, p.playerID, score)
}
