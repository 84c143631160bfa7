// Package worker provides the infrastructure for the background sweep
// worker: configuration, Prometheus metrics, and the health check server.
package worker

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"noticeboard/internal/pkg/config"

	"gopkg.in/yaml.v3"
)

// WorkerConfig holds the configuration for the sweep worker.
//
// Configuration sources, in increasing precedence:
//  1. Defaults (DefaultConfig)
//  2. Optional YAML file named by WORKER_CONFIG_FILE
//  3. Environment variables
//
// Loading is fail-open: invalid values fall back to defaults with a
// warning, so a bad deployment config degrades to known-good behavior
// instead of keeping scheduled announcements stuck.
type WorkerConfig struct {
	// CronSchedule is the five-field cron expression for sweep runs.
	// Default: "* * * * *" (every minute).
	CronSchedule string `yaml:"cron_schedule"`

	// Timezone is the IANA timezone for cron scheduling.
	// Default: "UTC".
	Timezone string `yaml:"timezone"`

	// SweepInterval is the minimum time between sweeps enforced by the
	// throttle guard. Default: 60s.
	SweepInterval time.Duration `yaml:"sweep_interval"`

	// SweepTimeout is the maximum duration of a single sweep before its
	// context is cancelled. Default: 5 minutes.
	SweepTimeout time.Duration `yaml:"sweep_timeout"`

	// HealthPort is the port for the health check HTTP server.
	// Default: 9091.
	HealthPort int `yaml:"health_port"`

	// MetricsPort is the port for the Prometheus metrics HTTP server.
	// Default: 9092.
	MetricsPort int `yaml:"metrics_port"`
}

// DefaultConfig returns a WorkerConfig with production-ready defaults.
// The every-minute schedule combined with the 60s throttle guard gives
// scheduled announcements at most ~2 minutes of publication latency.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:  "* * * * *",
		Timezone:      "UTC",
		SweepInterval: 60 * time.Second,
		SweepTimeout:  5 * time.Minute,
		HealthPort:    9091,
		MetricsPort:   9092,
	}
}

// Validate checks the configuration values, aggregating all failures.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.SweepInterval); err != nil {
		errs = append(errs, fmt.Errorf("sweep interval: %w", err))
	}
	if err := config.ValidateDuration(c.SweepTimeout, time.Second, time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("sweep timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := config.ValidateIntRange(c.MetricsPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// applyFile overlays values from a YAML config file onto cfg. A missing
// file is not an error; a malformed one is reported so the caller can warn
// and continue with the pre-file values.
func (c *WorkerConfig) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// LoadConfigFromEnv loads worker configuration with validation and
// automatic fallback to defaults on failure. It never returns an error;
// the returned configuration is always valid.
//
// Environment variables:
//   - WORKER_CONFIG_FILE: optional YAML file applied before env vars
//   - SWEEP_CRON_SCHEDULE: cron expression (default "* * * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default "UTC")
//   - SWEEP_INTERVAL: duration string, e.g. "60s"
//   - SWEEP_TIMEOUT: duration string, e.g. "5m"
//   - WORKER_HEALTH_PORT: integer 1024-65535 (default 9091)
//   - WORKER_METRICS_PORT: integer 1024-65535 (default 9092)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	if path := os.Getenv("WORKER_CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			fallbackApplied = true
			metrics.RecordValidationError("config_file")
			metrics.RecordFallback("config_file", "default")
			logger.Warn("Configuration file ignored",
				slog.String("path", path),
				slog.Any("error", err))
			cfg = DefaultConfig()
		}
	}

	warnFallback := func(field, envKey string, warnings []string) {
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field, "default")
		for _, warning := range warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("env_key", envKey),
				slog.String("warning", warning))
		}
	}

	result := config.LoadEnvWithFallback("SWEEP_CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	if result.FallbackApplied {
		warnFallback("cron_schedule", "SWEEP_CRON_SCHEDULE", result.Warnings)
	}

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		warnFallback("timezone", "WORKER_TIMEZONE", result.Warnings)
	}

	result = config.LoadEnvDuration("SWEEP_INTERVAL", cfg.SweepInterval, config.ValidatePositiveDuration)
	cfg.SweepInterval = result.Value.(time.Duration)
	if result.FallbackApplied {
		warnFallback("sweep_interval", "SWEEP_INTERVAL", result.Warnings)
	}

	result = config.LoadEnvDuration("SWEEP_TIMEOUT", cfg.SweepTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, time.Second, time.Hour)
	})
	cfg.SweepTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		warnFallback("sweep_timeout", "SWEEP_TIMEOUT", result.Warnings)
	}

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		warnFallback("health_port", "WORKER_HEALTH_PORT", result.Warnings)
	}

	result = config.LoadEnvInt("WORKER_METRICS_PORT", cfg.MetricsPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.MetricsPort = result.Value.(int)
	if result.FallbackApplied {
		warnFallback("metrics_port", "WORKER_METRICS_PORT", result.Warnings)
	}

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
