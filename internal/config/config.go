/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/friendsincode/verdandi_time/internal/models"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	Timezone    string // IANA zone name used for day bucketing and report rendering
	WindowDays  int    // default analysis window length when no explicit window is given

	// Day window defaults, overridable per weekday class by a schedule document
	DayStartHour  int
	DayEndHour    int
	MinGapMinutes int
	SkipWeekends  bool

	// Default document paths; command flags take precedence
	EventsPath   string
	SchedulePath string
	GoalsPath    string
	RulesPath    string

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("VERDANDI_ENV", "development"),
		Timezone:    getEnv("VERDANDI_TIMEZONE", "UTC"),
		WindowDays:  getEnvInt("VERDANDI_WINDOW_DAYS", 7),

		DayStartHour:  getEnvInt("VERDANDI_DAY_START_HOUR", 8),
		DayEndHour:    getEnvInt("VERDANDI_DAY_END_HOUR", 22),
		MinGapMinutes: getEnvInt("VERDANDI_MIN_GAP_MINUTES", 30),
		SkipWeekends:  getEnvBool("VERDANDI_SKIP_WEEKENDS", false),

		EventsPath:   getEnv("VERDANDI_EVENTS_PATH", ""),
		SchedulePath: getEnv("VERDANDI_SCHEDULE_PATH", ""),
		GoalsPath:    getEnv("VERDANDI_GOALS_PATH", ""),
		RulesPath:    getEnv("VERDANDI_RULES_PATH", ""),

		// Tracing configuration
		TracingEnabled:    getEnvBool("VERDANDI_TRACING_ENABLED", false),
		OTLPEndpoint:      getEnv("VERDANDI_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate: getEnvFloat("VERDANDI_TRACING_SAMPLE_RATE", 1.0),
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("VERDANDI_TIMEZONE %q is not a valid IANA zone: %w", cfg.Timezone, err)
	}

	if cfg.WindowDays <= 0 {
		return nil, fmt.Errorf("VERDANDI_WINDOW_DAYS must be positive, got %d", cfg.WindowDays)
	}

	if cfg.DayStartHour < 0 || cfg.DayEndHour > 24 || cfg.DayEndHour <= cfg.DayStartHour {
		return nil, fmt.Errorf("day window %d..%d is not a valid hour range", cfg.DayStartHour, cfg.DayEndHour)
	}

	if cfg.MinGapMinutes < 0 {
		return nil, fmt.Errorf("VERDANDI_MIN_GAP_MINUTES must not be negative, got %d", cfg.MinGapMinutes)
	}

	return cfg, nil
}

// Location resolves the configured timezone. Load already validated it,
// so failures here only happen on a hand-built Config and fall back to
// UTC.
func (c *Config) Location() *time.Location {
	if c == nil {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Waking returns the configured default day window.
func (c *Config) Waking() models.HourRange {
	return models.HourRange{StartHour: c.DayStartHour, EndHour: c.DayEndHour}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(strings.TrimSpace(val))
		if val == "true" || val == "1" || val == "yes" {
			return true
		}
		if val == "false" || val == "0" || val == "no" {
			return false
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}
