package utils

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	logLevel slog.Level

	timezone string
	location *time.Location

	prodID string
}

// Read the config from the environment. Every variable is optional; invalid
// values are collected into the returned error.
func NewConfig() (*Config, error) {
	var errs []error

	c := &Config{
		logLevel: func() slog.Level {
			level, err := LogLevelFromEnv()
			if err != nil {
				errs = append(errs, err)
			}
			slog.Debug("env", "ICSGEN_LOG_LEVEL", level)
			return level
		}(),

		prodID: func() string {
			prodID := strings.TrimSpace(os.Getenv("ICSGEN_PRODID"))
			slog.Debug("env", "ICSGEN_PRODID", prodID)
			return prodID
		}(),
	}

	c.timezone, c.location = func() (string, *time.Location) {
		timezoneStr := strings.TrimSpace(os.Getenv("ICSGEN_TIMEZONE"))
		if timezoneStr == "" {
			slog.Debug("ICSGEN_TIMEZONE is not set, dates are resolved in UTC")
			return "", time.UTC
		}
		loc, err := time.LoadLocation(timezoneStr)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid ICSGEN_TIMEZONE %q: %w", timezoneStr, err))
			return "", time.UTC
		}
		slog.Debug("env", "ICSGEN_TIMEZONE", timezoneStr)
		return timezoneStr, loc
	}()

	return c, errors.Join(errs...)
}

// Read ICSGEN_LOG_LEVEL on its own, so the logger can be configured before
// the rest of the config logs anything. Unset or invalid means info.
func LogLevelFromEnv() (slog.Level, error) {
	logLevel := strings.TrimSpace(os.Getenv("ICSGEN_LOG_LEVEL"))
	if logLevel == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid ICSGEN_LOG_LEVEL: %w", err)
	}
	return level, nil
}

// Get ICSGEN_LOG_LEVEL env, default to info
func (c *Config) GetLogLevel() slog.Level {
	return c.logLevel
}

// Get ICSGEN_TIMEZONE env, empty when unset
func (c *Config) GetTimezone() string {
	return c.timezone
}

// Get the location of ICSGEN_TIMEZONE, UTC when unset
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get ICSGEN_PRODID env, empty when unset
func (c *Config) GetProdID() string {
	return c.prodID
}

// Override the timezone, e.g. from a command line flag. An empty timezone
// keeps the current one.
func (c *Config) SetTimezone(timezone string) error {
	if timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	c.timezone = timezone
	c.location = loc
	return nil
}
