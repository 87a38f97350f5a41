package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

var envVars = []string{
	"ROADMAP_PORT", "ROADMAP_METRICS_PORT", "ROADMAP_ADMIN_TOKEN", "ROADMAP_RATE_LIMIT",
	"ROADMAP_DATABASE_URL", "ROADMAP_HISTORY_PATH", "ROADMAP_HERMES_URL",
	"ROADMAP_DIRECTORY_URL", "ROADMAP_DIRECTORY_TOKEN", "ROADMAP_SEED",
	"ROADMAP_TRACING_ENABLED", "ROADMAP_TRACING_OUTPUT", "ROADMAP_LOG_LEVEL", "ROADMAP_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RateLimit != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.Server.RateLimit)
	}
	if cfg.Database.URL != "" || cfg.History.Path != "" {
		t.Error("expected no persistent history by default")
	}
	if cfg.Hermes.URL != "" {
		t.Errorf("expected hermes disabled by default, got %s", cfg.Hermes.URL)
	}
	if cfg.Allocation.Seed != 0 {
		t.Errorf("expected clock seeding by default, got seed %d", cfg.Allocation.Seed)
	}
	if cfg.Tracing.Enabled {
		t.Error("expected tracing disabled by default")
	}
	if cfg.Tracing.Output != "stdout" {
		t.Errorf("expected tracing output 'stdout', got '%s'", cfg.Tracing.Output)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "roadmap.yaml")
	yamlData := `
server:
  port: 9100
  admin_token: file-token
history:
  path: /var/lib/roadmap/history.db
directory:
  url: http://people:8080
allocation:
  seed: 42
logging:
  level: debug
  format: text
`
	if err := os.WriteFile(path, []byte(yamlData), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port to survive, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "file-token" {
		t.Errorf("expected admin token from file, got '%s'", cfg.Server.AdminToken)
	}
	if cfg.History.Path != "/var/lib/roadmap/history.db" {
		t.Errorf("expected history path, got '%s'", cfg.History.Path)
	}
	if cfg.Directory.URL != "http://people:8080" {
		t.Errorf("expected directory URL, got '%s'", cfg.Directory.URL)
	}
	if cfg.Allocation.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Allocation.Seed)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ROADMAP_PORT", "9000")
	t.Setenv("ROADMAP_METRICS_PORT", "9001")
	t.Setenv("ROADMAP_ADMIN_TOKEN", "secret-token")
	t.Setenv("ROADMAP_RATE_LIMIT", "10")
	t.Setenv("ROADMAP_DATABASE_URL", "postgres://localhost/roadmap_test")
	t.Setenv("ROADMAP_HISTORY_PATH", "/tmp/history.db")
	t.Setenv("ROADMAP_HERMES_URL", "nats://nats:4222")
	t.Setenv("ROADMAP_DIRECTORY_URL", "http://people:8080")
	t.Setenv("ROADMAP_DIRECTORY_TOKEN", "people-secret")
	t.Setenv("ROADMAP_SEED", "7")
	t.Setenv("ROADMAP_TRACING_ENABLED", "true")
	t.Setenv("ROADMAP_TRACING_OUTPUT", "/tmp/trace.json")
	t.Setenv("ROADMAP_LOG_LEVEL", "warn")
	t.Setenv("ROADMAP_LOG_FORMAT", "text")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token 'secret-token', got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Server.RateLimit != 10 {
		t.Errorf("expected rate limit 10, got %d", cfg.Server.RateLimit)
	}
	if cfg.Database.URL != "postgres://localhost/roadmap_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.History.Path != "/tmp/history.db" {
		t.Errorf("expected history path, got '%s'", cfg.History.Path)
	}
	if cfg.Hermes.URL != "nats://nats:4222" {
		t.Errorf("expected hermes URL, got '%s'", cfg.Hermes.URL)
	}
	if cfg.Directory.URL != "http://people:8080" || cfg.Directory.Token != "people-secret" {
		t.Errorf("expected directory settings, got %+v", cfg.Directory)
	}
	if cfg.Allocation.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Allocation.Seed)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.Output != "/tmp/trace.json" {
		t.Errorf("expected tracing settings, got %+v", cfg.Tracing)
	}
	if cfg.LogLevel() != slog.LevelWarn {
		t.Errorf("expected warn level, got %v", cfg.LogLevel())
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected log format 'text', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROADMAP_PORT", "not-a-port")
	t.Setenv("ROADMAP_SEED", "x")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8700 {
		t.Errorf("expected default port on malformed env, got %d", cfg.Server.Port)
	}
	if cfg.Allocation.Seed != 0 {
		t.Errorf("expected default seed on malformed env, got %d", cfg.Allocation.Seed)
	}
}
