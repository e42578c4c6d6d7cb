package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate, got: %v", err)
	}
	if cfg.Monitor.TickInterval != 30*time.Second {
		t.Errorf("tick_interval = %v, want 30s", cfg.Monitor.TickInterval)
	}
	if cfg.Monitor.ScoreWindow != 50 {
		t.Errorf("score_window = %d, want 50", cfg.Monitor.ScoreWindow)
	}
	if cfg.Database.RetentionDays != 90 {
		t.Errorf("retention_days = %d, want 90", cfg.Database.RetentionDays)
	}
	if cfg.EmailEnabled() || cfg.SMSEnabled() {
		t.Error("no alert transport should be enabled by default")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/test.db
monitor:
  tick_interval: 15s
  probe_timeout: 5s
alerts:
  email:
    host: smtp.example.com
    from: alerts@example.com
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.Monitor.TickInterval != 15*time.Second {
		t.Errorf("tick_interval = %v, want 15s", cfg.Monitor.TickInterval)
	}
	// Unset fields keep their defaults.
	if cfg.Monitor.ScoreWindow != 50 {
		t.Errorf("score_window = %d, want default 50", cfg.Monitor.ScoreWindow)
	}
	if !cfg.EmailEnabled() {
		t.Error("email should be enabled with a host set")
	}
	if cfg.SMSEnabled() {
		t.Error("sms should stay disabled without an api key")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging.format = %q", cfg.Logging.Format)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_SMTP_PASSWORD", "hunter2")
	path := writeConfig(t, `
alerts:
  email:
    host: smtp.example.com
    password: ${TEST_SMTP_PASSWORD}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Alerts.Email.Password != "hunter2" {
		t.Errorf("password = %q, want expanded env value", cfg.Alerts.Email.Password)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "monitor: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errSub string
	}{
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"zero read conns", func(c *Config) { c.Database.MaxReadConns = 0 }, "max_read_conns"},
		{"zero retention", func(c *Config) { c.Database.RetentionDays = 0 }, "retention_days"},
		{"sub-second tick", func(c *Config) { c.Monitor.TickInterval = 500 * time.Millisecond }, "tick_interval"},
		{"zero probe timeout", func(c *Config) { c.Monitor.ProbeTimeout = 0 }, "probe_timeout"},
		{"negative slop", func(c *Config) { c.Monitor.DueSlop = -time.Second }, "due_slop"},
		{"zero score window", func(c *Config) { c.Monitor.ScoreWindow = 0 }, "score_window"},
		{"zero concurrency", func(c *Config) { c.Monitor.MaxConcurrent = 0 }, "max_concurrent"},
		{"zero probe rate", func(c *Config) { c.Monitor.ProbeRatePerSec = 0 }, "probe_rate_per_sec"},
		{"zero probe burst", func(c *Config) { c.Monitor.ProbeBurst = 0 }, "probe_burst"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.errSub)
			}
			if !strings.Contains(err.Error(), tt.errSub) {
				t.Fatalf("error %q does not contain %q", err.Error(), tt.errSub)
			}
		})
	}
}
