package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr       string // TEASALOON_ADDR, default ":8080"
	DBPath     string // TEASALOON_DB, default "teasaloon.db"; postgres:// URLs select PostgreSQL
	FixtureDir string // TEASALOON_FIXTURES, optional; embedded fixtures when empty
	AuthToken  string // TEASALOON_AUTH_TOKEN, optional
	LogLevel   string // TEASALOON_LOG_LEVEL, default "info"
	LogFormat  string // TEASALOON_LOG_FORMAT, default "text"
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Addr:       envOr("TEASALOON_ADDR", ":8080"),
		DBPath:     envOr("TEASALOON_DB", "teasaloon.db"),
		FixtureDir: os.Getenv("TEASALOON_FIXTURES"),
		AuthToken:  os.Getenv("TEASALOON_AUTH_TOKEN"),
		LogLevel:   envOr("TEASALOON_LOG_LEVEL", "info"),
		LogFormat:  envOr("TEASALOON_LOG_FORMAT", "text"),
	}
}

// Logger builds a logger writing to w at the configured level and format.
func (c Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
