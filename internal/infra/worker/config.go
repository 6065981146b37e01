// Package worker hosts the scheduled SLA sweeper: cron scheduling, health
// endpoints and job metrics.
package worker

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"copydesk/pkg/config"
)

// Config controls the sweeper schedule and its health server.
type Config struct {
	// CronSchedule is a 5-field cron expression for sweep runs.
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	Timezone string

	// SweepTimeout bounds a single sweep run.
	SweepTimeout time.Duration

	// HealthPort is the port for the liveness/readiness endpoints.
	HealthPort int
}

// DefaultConfig returns the production defaults: an hourly sweep, which is
// frequent enough that a 120 hour review window never slips by more than an
// hour.
func DefaultConfig() Config {
	return Config{
		CronSchedule: "0 * * * *",
		Timezone:     "UTC",
		SweepTimeout: 10 * time.Minute,
		HealthPort:   9091,
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.CronSchedule); err != nil {
		return fmt.Errorf("cron schedule: %w", err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if c.SweepTimeout <= 0 {
		return fmt.Errorf("sweep timeout must be positive, got %v", c.SweepTimeout)
	}
	if c.HealthPort < 1024 || c.HealthPort > 65535 {
		return fmt.Errorf("health port must be in [1024, 65535], got %d", c.HealthPort)
	}
	return nil
}

// LoadConfig reads worker settings from the environment, falling back to
// defaults on invalid values so a bad deploy config degrades instead of
// crashing the sweeper.
//
// Environment variables:
//   - SWEEP_CRON_SCHEDULE: cron expression (default: "0 * * * *")
//   - WORKER_TIMEZONE: IANA timezone (default: "UTC")
//   - SWEEP_TIMEOUT: per-run deadline (default: 10m)
//   - WORKER_HEALTH_PORT: health server port (default: 9091)
func LoadConfig() Config {
	defaults := DefaultConfig()
	cfg := Config{
		CronSchedule: config.GetEnvString("SWEEP_CRON_SCHEDULE", defaults.CronSchedule),
		Timezone:     config.GetEnvString("WORKER_TIMEZONE", defaults.Timezone),
		SweepTimeout: config.GetEnvDuration("SWEEP_TIMEOUT", defaults.SweepTimeout),
		HealthPort:   config.GetEnvInt("WORKER_HEALTH_PORT", defaults.HealthPort),
	}
	if err := cfg.Validate(); err != nil {
		return defaults
	}
	return cfg
}
