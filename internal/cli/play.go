package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/config"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/feedback"
	"trivia-quiz-service/internal/infra/file"
	"trivia-quiz-service/internal/infra/memory"
	"trivia-quiz-service/internal/infra/sqlite"
	"trivia-quiz-service/internal/logger"
	"trivia-quiz-service/internal/tui"
)

const (
	defaultPackID     = "general"
	defaultPlayerID   = "local"
	defaultSQLitePath = "trivia-highscores.db"
)

type playOptions struct {
	packID   string
	packFile string
	player   string
	noColor  bool
	logFile  string
}

// NewPlayCmd runs a session in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	opts := playOptions{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, *configPath, opts)
		},
	}
	cmd.Flags().StringVar(&opts.packID, "pack", "", "pack id (default from config, then general)")
	cmd.Flags().StringVar(&opts.packFile, "file", "", "play a single pack file")
	cmd.Flags().StringVar(&opts.player, "player", defaultPlayerID, "player whose high score is tracked")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colors")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	return cmd
}

func runPlay(cmd *cobra.Command, configPath string, opts playOptions) error {
	ctx := cmd.Context()
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if opts.logFile != "" {
		if log, err = logger.NewFile(opts.logFile); err != nil {
			return err
		}
	}
	defer log.Sync()

	packID := firstNonEmpty(opts.packID, cfg.Quiz.Pack, defaultPackID)
	var loader memory.PackLoader = memory.NewStaticPackLoader(samplePacks())
	switch {
	case opts.packFile != "":
		pack, err := file.LoadFile(opts.packFile)
		if err != nil {
			return err
		}
		packID = pack.ID
		loader = memory.NewStaticPackLoader(map[string]domain.Pack{pack.ID: pack})
	case cfg.Quiz.PackDir != "":
		loader = file.NewPackLoader(cfg.Quiz.PackDir)
	}
	source := app.PackSource{Packs: memory.NewPackRepository(loader, time.Hour), PackID: packID}
	questions, err := source.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load pack %q: %w", packID, err)
	}

	book, err := sqlite.Open(firstNonEmpty(cfg.SQLite.Path, defaultSQLitePath))
	if err != nil {
		return err
	}
	defer book.Close()

	session := app.NewSession(questions, app.SessionOptions{
		ID:              "local",
		HighScores:      app.PlayerHighScore(book, opts.player),
		Logger:          log.With(zap.String("pack_id", packID)),
		ResolutionDelay: config.TTLDuration(cfg.Quiz.ResolutionDelay, app.DefaultResolutionDelay),
		TickInterval:    config.TTLDuration(cfg.Quiz.Tick, app.DefaultTickInterval),
	})
	ui := tui.NewController(log)
	session.Observe(ui)
	if cfg.Feedback.Enabled {
		session.Observe(feedback.NewCues(feedback.NewBellPlayer(os.Stderr), cfg.Feedback.Sounds, cueSet(cfg.Feedback), log))
	}
	if err := session.Start(); err != nil {
		return err
	}

	runErr := ui.Run(session, tui.Options{
		Input:   cmd.InOrStdin(),
		Output:  cmd.OutOrStdout(),
		NoColor: opts.noColor || !isTerminal(cmd.OutOrStdout()),
	})
	session.Close()
	ui.Close()
	return runErr
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

func defaultIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func cueSet(cfg config.Feedback) feedback.CueSet {
	return feedback.CueSet{
		StartupTrack: cfg.StartupTrack,
		Timer:        cfg.Cues["timer"],
		Correct:      cfg.Cues["correct"],
		Incorrect:    cfg.Cues["incorrect"],
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
