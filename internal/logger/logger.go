package logger

import (
	"go.uber.org/zap"

	"trivia-quiz-service/internal/config"
)

// New builds the process logger. "production" selects JSON output at info level.
func New(cfg config.Config) (*zap.Logger, error) {
	if cfg.Log.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}

// NewFile builds a development logger that writes to path instead of the terminal.
func NewFile(path string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
