// ============================================================================
// grocer - Catalog and shopping list toolkit
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating foundation loggers from config
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	mdwlog "github.com/msto63/grocer/foundation/core/log"
	"github.com/msto63/grocer/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name, shown in text output
	Name string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format
	Format string // "json" or "text" (default: text)

	// Output writer (default: stderr, stdout carries reports)
	Output io.Writer

	// Correlation ID attached to every entry (optional)
	CorrelationID string
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "warn",
		Format: "text",
	}
}

// FromConfig builds a LoggerConfig from the [general] section
func FromConfig(name string, cfg *config.Config) LoggerConfig {
	lc := DefaultLoggerConfig(name)
	if cfg != nil {
		lc.Level = cfg.General.LogLevel
		lc.Format = cfg.General.LogFormat
	}
	return lc
}

// NewLogger creates a new foundation logger
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mdwlog.FormatText
	}

	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:  parseLevel(cfg.Level),
		Format: format,
		Output: output,
		Name:   cfg.Name,
	})

	if cfg.CorrelationID != "" {
		logger = logger.WithCorrelationID(cfg.CorrelationID)
	}
	return logger
}

// parseLevel converts a string level to mdwlog.Level, defaulting to warn
func parseLevel(level string) mdwlog.Level {
	l, err := mdwlog.ParseLevel(level)
	if err != nil {
		return mdwlog.LevelWarn
	}
	return l
}
