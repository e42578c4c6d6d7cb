package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"sitewatch/internal/notifier"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type DatabaseConfig struct {
	Path            string        `yaml:"path"`
	MaxReadConns    int           `yaml:"max_read_conns"`
	RetentionDays   int           `yaml:"retention_days"`
	RetentionPeriod time.Duration `yaml:"retention_period"`
}

type MonitorConfig struct {
	TickInterval        time.Duration `yaml:"tick_interval"`
	ProbeTimeout        time.Duration `yaml:"probe_timeout"`
	DueSlop             time.Duration `yaml:"due_slop"`
	ScoreWindow         int           `yaml:"score_window"`
	MaxConcurrent       int           `yaml:"max_concurrent"`
	ProbeRatePerSec     float64       `yaml:"probe_rate_per_sec"`
	ProbeBurst          int           `yaml:"probe_burst"`
	AllowPrivateTargets bool          `yaml:"allow_private_targets"`
}

type AlertsConfig struct {
	Email notifier.EmailConfig `yaml:"email"`
	SMS   notifier.SMSConfig   `yaml:"sms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

func Defaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:            "sitewatch.db",
			MaxReadConns:    4,
			RetentionDays:   90,
			RetentionPeriod: 1 * time.Hour,
		},
		Monitor: MonitorConfig{
			TickInterval:    30 * time.Second,
			ProbeTimeout:    10 * time.Second,
			DueSlop:         1 * time.Second,
			ScoreWindow:     50,
			MaxConcurrent:   10,
			ProbeRatePerSec: 20,
			ProbeBurst:      40,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML config at path on top of Defaults. Environment
// variables in the file are expanded before parsing.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateMonitor(); err != nil {
		return err
	}
	return validateLogLevel(c.Logging.Level)
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.MaxReadConns <= 0 {
		return fmt.Errorf("database.max_read_conns must be positive")
	}
	if c.Database.RetentionDays <= 0 {
		return fmt.Errorf("database.retention_days must be positive")
	}
	return nil
}

func (c *Config) validateMonitor() error {
	if c.Monitor.TickInterval < time.Second {
		return fmt.Errorf("monitor.tick_interval must be at least 1s")
	}
	if c.Monitor.ProbeTimeout <= 0 {
		return fmt.Errorf("monitor.probe_timeout must be positive")
	}
	if c.Monitor.DueSlop < 0 {
		return fmt.Errorf("monitor.due_slop must be non-negative")
	}
	if c.Monitor.ScoreWindow <= 0 {
		return fmt.Errorf("monitor.score_window must be positive")
	}
	if c.Monitor.MaxConcurrent <= 0 {
		return fmt.Errorf("monitor.max_concurrent must be positive")
	}
	if c.Monitor.ProbeRatePerSec <= 0 {
		return fmt.Errorf("monitor.probe_rate_per_sec must be positive")
	}
	if c.Monitor.ProbeBurst <= 0 {
		return fmt.Errorf("monitor.probe_burst must be positive")
	}
	return nil
}

func validateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
}

// EmailEnabled reports whether an SMTP host is configured.
func (c *Config) EmailEnabled() bool {
	return c.Alerts.Email.Host != ""
}

// SMSEnabled reports whether a Brevo API key is configured.
func (c *Config) SMSEnabled() bool {
	return c.Alerts.SMS.APIKey != ""
}
