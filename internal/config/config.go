// Package config loads planningp settings from an optional YAML file, an
// optional .env file and PLANNINGP_* environment variables. Environment
// variables win over the file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jjimmyk/planningp/internal/domain"
	"github.com/joho/godotenv"
)

const (
	IDStrategyUUID     = "uuid"
	IDStrategySequence = "sequence"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

type Config struct {
	DBPath          string `yaml:"db_path" env:"PLANNINGP_DB"`
	LogLevel        string `yaml:"log_level" env:"PLANNINGP_LOG_LEVEL" env-default:"warn"`
	LogFormat       string `yaml:"log_format" env:"PLANNINGP_LOG_FORMAT" env-default:"text"`
	LogUseCases     bool   `yaml:"log_use_cases" env:"PLANNINGP_LOG_USE_CASES" env-default:"false"`
	IDStrategy      string `yaml:"id_strategy" env:"PLANNINGP_ID_STRATEGY" env-default:"uuid"`
	MetricsTextfile string `yaml:"metrics_textfile" env:"PLANNINGP_METRICS_TEXTFILE"`
	Period          string `yaml:"period" env:"PLANNINGP_PERIOD"`
}

// DefaultPath is ~/.planningp/config.yaml, or "" when there is no home
// directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".planningp", "config.yaml")
}

func defaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".planningp", "planningp.db"), nil
}

// Load reads envFiles (".env" when none are given) into the process
// environment without overriding variables already set, then the YAML file
// at path, then the environment. Missing files are skipped.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
	}

	var cfg Config
	if path != "" && fileExists(path) {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if cfg.DBPath == "" {
		p, err := defaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// Validate normalises case and rejects unknown enum values.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.IDStrategy = strings.ToLower(strings.TrimSpace(c.IDStrategy))

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("log_format %q: must be text or json", c.LogFormat)
	}
	switch c.IDStrategy {
	case IDStrategyUUID, IDStrategySequence:
	default:
		return fmt.Errorf("id_strategy %q: must be uuid or sequence", c.IDStrategy)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log_level %q: must be debug, info, warn or error", s)
}

// SlogLevel returns the configured level. Validate must have passed.
func (c *Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// NewLogger builds the process logger writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// IDGenerator returns the generator named by IDStrategy. Sequence ids get a
// per-process prefix so runs against the same database never collide.
func (c *Config) IDGenerator() domain.IDGenerator {
	if c.IDStrategy == IDStrategySequence {
		return domain.NewSequenceGenerator(uuid.NewString()[:8])
	}
	return domain.UUIDGenerator{}
}
