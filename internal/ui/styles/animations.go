// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for chitter TUI.
package styles

import (
	"strings"
	"time"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// LineSpinner - Simple line rotation
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// DotsSpinner - Classic three-dot animation, used on processing badges
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// BrewSpinner - Pulsing cup, used while an upload is being digested
var BrewSpinner = SpinnerConfig{
	Frames: []string{"( )", "(.)", "(o)", "(O)", "(o)", "(.)"},
	FPS:    8,
}

// PhaseSpinner - Progress dots for the submission phases
var PhaseSpinner = SpinnerConfig{
	Frames: []string{"[    ]", "[=   ]", "[==  ]", "[=== ]", "[====]", "[ ===]", "[  ==]", "[   =]"},
	FPS:    4,
}

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	return time.Second / time.Duration(s.FPS)
}

// Frame returns the frame for a tick counter, wrapping around.
func (s SpinnerConfig) Frame(tick int) string {
	if len(s.Frames) == 0 {
		return ""
	}
	if tick < 0 {
		tick = -tick
	}
	return s.Frames[tick%len(s.Frames)]
}

// =============================================================================
// PROGRESS INDICATORS
// =============================================================================

// ProgressBar characters for the submission progress display.
var (
	ProgressFull    = "#"
	ProgressEmpty   = "-"
	ProgressPartial = []string{".", ":", "+", "#", "#", "#", "#"}
)

// RenderProgressBar creates a progress bar string.
// width: total width of the bar in characters
// percent: 0-100 percentage complete
func RenderProgressBar(width int, percent float64) string {
	// Handle invalid width
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filledWidth := float64(width) * percent / 100
	fullBlocks := int(filledWidth)
	partialIndex := int((filledWidth - float64(fullBlocks)) * float64(len(ProgressPartial)))

	// PERFORMANCE: strings.Builder avoids quadratic allocations
	var sb strings.Builder
	sb.Grow(width)

	for i := 0; i < fullBlocks && i < width; i++ {
		sb.WriteString(ProgressFull)
	}

	if fullBlocks < width && partialIndex > 0 {
		sb.WriteString(ProgressPartial[partialIndex-1])
		fullBlocks++
	}

	for i := fullBlocks; i < width; i++ {
		sb.WriteString(ProgressEmpty)
	}

	return sb.String()
}

// RenderPhaseDots renders a per-phase progress row, one marker per phase.
// Completed phases render as filled, the current phase as active, the rest
// as empty.
func RenderPhaseDots(total, current int) string {
	if total <= 0 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < total; i++ {
		if i > 0 {
			sb.WriteString(TreeChars.Dash)
		}
		switch {
		case i < current:
			sb.WriteString("(#)")
		case i == current:
			sb.WriteString("(o)")
		default:
			sb.WriteString("( )")
		}
	}
	return sb.String()
}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// AnimationStatusIndicators for various states (ASCII-only for compatibility)
// Note: StatusIndicators in colors.go provides the primary shape indicators
var AnimationStatusIndicators = struct {
	Success   string
	Error     string
	Loading   string
	Connected string
	Offline   string
}{
	Success:   "[OK]",
	Error:     "[X]",
	Loading:   "[.]",
	Connected: "(+)",
	Offline:   "(-)",
}

// =============================================================================
// TREE CONNECTORS
// =============================================================================

// TreeChars for rendering tree structures (like topic breakdowns)
var TreeChars = struct {
	Pipe   string
	Tee    string
	Corner string
	Dash   string
}{
	Pipe:   "|",
	Tee:    "+",
	Corner: "`",
	Dash:   "-",
}

// RenderTreeLine creates a tree line prefix.
// isLast: true if this is the last item in the list
func RenderTreeLine(isLast bool) string {
	if isLast {
		return TreeChars.Corner + TreeChars.Dash + " "
	}
	return TreeChars.Tee + TreeChars.Dash + " "
}
