// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for chitter TUI.
package components

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// toStr converts an integer to a string without using fmt package.
func toStr(n int) string {
	if n == 0 {
		return "0"
	}

	if n == -9223372036854775808 { // math.MinInt64
		return "-9223372036854775808"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	if negative {
		return "-" + string(digits)
	}
	return string(digits)
}

// fmtNumber formats a number with thousand separators.
func fmtNumber(n int) string {
	// Handle math.MinInt64 specially since -math.MinInt64 overflows
	if n == -9223372036854775808 {
		return "-9,223,372,036,854,775,808"
	}

	// Handle negative numbers by processing absolute value and prepending -
	if n < 0 {
		return "-" + fmtNumber(-n)
	}

	if n < 1000 {
		return toStr(n)
	}

	// Build from right to left
	s := toStr(n)
	result := ""
	count := 0

	for i := len(s) - 1; i >= 0; i-- {
		if count > 0 && count%3 == 0 {
			result = "," + result
		}
		result = string(s[i]) + result
		count++
	}

	return result
}

// truncate shortens a string to max runes, appending "..." when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
