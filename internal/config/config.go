package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		TTL             string `yaml:"ttl"`
		Pack            string `yaml:"pack"`
		PackDir         string `yaml:"pack_dir"`
		ResolutionDelay string `yaml:"resolution_delay"`
		Tick            string `yaml:"tick"`
	} `yaml:"quiz"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Log struct {
		Env string `yaml:"env"`
	} `yaml:"log"`
	Feedback Feedback `yaml:"feedback"`
}

// Feedback maps session events to named sounds.
type Feedback struct {
	Enabled      bool              `yaml:"enabled"`
	StartupTrack string            `yaml:"startup_track"`
	Sounds       []string          `yaml:"sounds"`
	Cues         map[string]string `yaml:"cues"` // timer, correct, incorrect
}

// Load reads YAML config from path. Environment variables override the file.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields a Config built from
// the environment alone.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Config{}
		applyEnv(&cfg)
		return cfg, nil
	}
	return cfg, err
}

func applyEnv(cfg *Config) {
	cfg.Redis.Addr = getenvDefault("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getenvDefault("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Postgres.URL = getenvDefault("POSTGRES_URL", cfg.Postgres.URL)
	cfg.Quiz.Pack = getenvDefault("QUIZ_PACK", cfg.Quiz.Pack)
	cfg.Quiz.PackDir = getenvDefault("QUIZ_PACK_DIR", cfg.Quiz.PackDir)
	cfg.SQLite.Path = getenvDefault("SQLITE_PATH", cfg.SQLite.Path)
	cfg.Log.Env = getenvDefault("LOG_ENV", cfg.Log.Env)
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
