// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"  debug  ", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseLevel(tc.input); got != tc.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestSetup_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "chitter.log")

	closer, err := Setup(path, "debug")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	logger := Component("test")
	logger.Info().Str("k", "v").Msg("hello")

	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"component":"test"`) {
		t.Errorf("log line missing component field: %s", data)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log line missing message: %s", data)
	}
}

func TestSetup_EmptyPathDiscards(t *testing.T) {
	closer, err := Setup("", "info")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer closer.Close()

	// Must not panic or write anywhere.
	logger := Component("quiet")
	logger.Info().Msg("dropped")
}

func TestSetup_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chitter.log")

	closer, err := Setup(path, "info")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer closer.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("permissions = %o, want 0600", info.Mode().Perm())
	}
}
