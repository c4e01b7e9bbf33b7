package feedback

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"trivia-quiz-service/internal/domain"
)

// Player plays a named sound.
type Player interface {
	Play(name string) error
}

// CueSet names the sound played for each session event. Empty names are silent.
type CueSet struct {
	StartupTrack string
	Timer        string
	Correct      string
	Incorrect    string
}

// Cues plays sounds in response to session notifications. It implements app.Observer.
type Cues struct {
	player  Player
	library map[string]struct{}
	cues    CueSet
	logger  *zap.Logger
}

// NewCues builds a cue observer. Only sounds listed in library can be played.
func NewCues(player Player, library []string, cues CueSet, logger *zap.Logger) *Cues {
	if logger == nil {
		logger = zap.NewNop()
	}
	lib := make(map[string]struct{}, len(library))
	for _, name := range library {
		lib[name] = struct{}{}
	}
	return &Cues{player: player, library: lib, cues: cues, logger: logger}
}

func (c *Cues) OnSessionStarted(domain.SessionStarted) {
	c.play(c.cues.StartupTrack)
}

func (c *Cues) OnQuestionDisplayed(domain.QuestionDisplayed) {}

func (c *Cues) OnSelectionChanged([]int) {}

func (c *Cues) OnTimerTick(int) {
	c.play(c.cues.Timer)
}

func (c *Cues) OnScoreChanged(int) {}

func (c *Cues) OnResolution(res domain.Resolution) {
	if res.Correct {
		c.play(c.cues.Correct)
		return
	}
	c.play(c.cues.Incorrect)
}

func (c *Cues) play(name string) {
	if name == "" || c.player == nil {
		return
	}
	if _, ok := c.library[name]; !ok {
		c.logger.Warn("sound not found", zap.String("sound", name))
		return
	}
	if err := c.player.Play(name); err != nil {
		c.logger.Warn("play sound", zap.String("sound", name), zap.Error(err))
	}
}

// BellPlayer rings the terminal bell for every sound.
type BellPlayer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBellPlayer(w io.Writer) *BellPlayer {
	return &BellPlayer{w: w}
}

func (p *BellPlayer) Play(string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := io.WriteString(p.w, "\a")
	return err
}
