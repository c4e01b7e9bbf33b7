package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"trivia-quiz-service/internal/config"
)

func TestNewByEnv(t *testing.T) {
	var cfg config.Config
	dev, err := New(cfg)
	if err != nil {
		t.Fatalf("development logger: %v", err)
	}
	if !dev.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug output outside production")
	}

	cfg.Log.Env = "production"
	prod, err := New(cfg)
	if err != nil {
		t.Fatalf("production logger: %v", err)
	}
	if prod.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug disabled in production")
	}
}

func TestNewFileWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "play.log")
	log, err := NewFile(path)
	if err != nil {
		t.Fatalf("file logger: %v", err)
	}
	log.Info("hello")
	_ = log.Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected entry in log file, got %q", data)
	}
}
