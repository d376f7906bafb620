package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johnwards/teasaloon/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TEASALOON_ADDR", "TEASALOON_DB", "TEASALOON_FIXTURES",
		"TEASALOON_AUTH_TOKEN", "TEASALOON_LOG_LEVEL", "TEASALOON_LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := config.Load()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.DBPath != "teasaloon.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "teasaloon.db")
	}
	if cfg.FixtureDir != "" {
		t.Errorf("FixtureDir = %q, want empty", cfg.FixtureDir)
	}
	if cfg.AuthToken != "" {
		t.Errorf("AuthToken = %q, want empty", cfg.AuthToken)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TEASALOON_ADDR", ":9090")
	t.Setenv("TEASALOON_DB", "/tmp/test.db")
	t.Setenv("TEASALOON_FIXTURES", "/srv/fixtures")
	t.Setenv("TEASALOON_AUTH_TOKEN", "secret-token")
	t.Setenv("TEASALOON_LOG_LEVEL", "debug")
	t.Setenv("TEASALOON_LOG_FORMAT", "json")

	cfg := config.Load()

	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":9090")
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/test.db")
	}
	if cfg.FixtureDir != "/srv/fixtures" {
		t.Errorf("FixtureDir = %q, want %q", cfg.FixtureDir, "/srv/fixtures")
	}
	if cfg.AuthToken != "secret-token" {
		t.Errorf("AuthToken = %q, want %q", cfg.AuthToken, "secret-token")
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("log = %q/%q, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEASALOON_ADDR", ":7000")
	// t.Setenv restores the original value; unset so godotenv may fill it.
	if err := os.Unsetenv("TEASALOON_DB"); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	content := "TEASALOON_ADDR=:6000\nTEASALOON_DB=from-dotenv.db\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	if err := config.LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}

	cfg := config.Load()
	if cfg.Addr != ":7000" {
		t.Errorf("Addr = %q, want existing env to win", cfg.Addr)
	}
	if cfg.DBPath != "from-dotenv.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "from-dotenv.db")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := config.Config{LogLevel: "warn", LogFormat: "json"}.Logger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "table", "teas")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "shown" || entry["table"] != "teas" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := config.Config{LogLevel: "loud"}.Logger(&buf)

	logger.Debug("hidden")
	logger.Info("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
