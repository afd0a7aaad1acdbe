// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the chitter-tui application.
package util

import "strconv"

// IntToString converts an int to string.
func IntToString(i int) string {
	return strconv.Itoa(i)
}

// FloatToString converts a float64 to string with 2 decimal places.
// Scores from the analysis service are fractional (0-10 scale).
func FloatToString(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// FloatToStringPrec converts a float64 to string with specified decimal precision.
func FloatToStringPrec(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// ScoreToString renders an analysis score with one decimal, the precision
// shown on ranking rows and detail cards.
func ScoreToString(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
