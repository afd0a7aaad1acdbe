// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for chitter TUI.
package components

import (
	"testing"
)

// =============================================================================
// HELPER FUNCTION TESTS
// =============================================================================

func TestToStr(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0"},
		{1, "1"},
		{9, "9"},
		{10, "10"},
		{123, "123"},
		{1000, "1000"},
		{-1, "-1"},
		{-123, "-123"},
		{-9223372036854775808, "-9223372036854775808"}, // MinInt64 special case
	}

	for _, tc := range tests {
		got := toStr(tc.input)
		if got != tc.want {
			t.Errorf("toStr(%d) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFmtNumber(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0"},
		{1, "1"},
		{999, "999"},
		{1000, "1,000"},
		{1234, "1,234"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-1000, "-1,000"},
		{-9223372036854775808, "-9,223,372,036,854,775,808"}, // MinInt64
	}

	for _, tc := range tests {
		got := fmtNumber(tc.input)
		if got != tc.want {
			t.Errorf("fmtNumber(%d) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"longer than the limit", 10, "longer ..."},
		{"abc", 2, "ab"},
		{"anything", 0, ""},
		{"", 5, ""},
	}

	for _, tc := range tests {
		got := truncate(tc.input, tc.max)
		if got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.input, tc.max, got, tc.want)
		}
	}
}
