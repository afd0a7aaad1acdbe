// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide zerolog logger.
//
// The TUI owns stdout and stderr, so all log output goes to a file under
// the config directory. Components take a zerolog.Logger scoped with a
// "component" field rather than using the global logger directly.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup initializes the global logger writing to the given file path at the
// given level. It returns a closer for the log file.
//
// Passing an empty path sends logs to io.Discard, which keeps tests and
// one-shot CLI commands quiet.
func Setup(path, level string) (io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(ParseLevel(level))

	if path == "" {
		log.Logger = zerolog.New(io.Discard)
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// 0600: log lines may carry chat member names
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.Logger = zerolog.New(file).With().Timestamp().Logger()
	return file, nil
}

// ParseLevel maps a config level string to a zerolog level. Unknown values
// fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component returns a logger scoped to one named component.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
