package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/kbart/internal/kbart"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConversion(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if _, ok := logLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("%w: logging.level %q is not one of debug, info, warn, error", ErrInvalid, c.Logging.Level)
	}
	return nil
}

func (c *Config) validateConversion() error {
	if c.Conversion.Workers < 1 {
		return fmt.Errorf("%w: conversion.workers must be at least 1", ErrInvalid)
	}
	if c.Conversion.MaxYearGap < 1 {
		return fmt.Errorf("%w: conversion.max_year_gap must be at least 1", ErrInvalid)
	}
	return nil
}

func (c *Config) validateExport() error {
	if _, err := kbart.LookupStyle(c.Export.Style); err != nil {
		return fmt.Errorf("%w: export.style: %w", ErrInvalid, err)
	}
	if _, err := kbart.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("%w: export.format: %w", ErrInvalid, err)
	}
	if _, err := kbart.ResolveFields(c.Export.Fields); err != nil {
		return fmt.Errorf("%w: export.fields: %w", ErrInvalid, err)
	}
	return nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	return logLevels[c.Logging.Level]
}
