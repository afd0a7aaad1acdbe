// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared lipgloss styles for CLI command output.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// init configures lipgloss color profile based on terminal capabilities.
// USABILITY: respects NO_COLOR, FORCE_COLOR, and TTY detection
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES FOR ALL CLI COMMANDS
// =============================================================================

var (
	// TitleStyle is used for command titles and headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C8A27C")). // coffee
			MarginBottom(1)

	// LabelStyle is used for field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(18)

	// ValueStyle is used for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// SuccessStyle marks things that are working.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6EE7B7")) // mint

	// WarnStyle marks things that need attention.
	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FDBA74")) // peach

	// ErrorStyle marks failures.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FDA4AF")) // rose
)

// RenderSeparator renders a horizontal rule sized to the terminal.
func RenderSeparator(width ...int) string {
	w := GetTerminalWidth()
	if len(width) > 0 && width[0] > 0 {
		w = width[0]
	}
	if w > 72 {
		w = 72
	}
	return LabelStyle.Width(0).Render(strings.Repeat("-", w))
}

// renderField renders one "label: value" row.
func renderField(label, value string) string {
	return LabelStyle.Render(label) + " " + ValueStyle.Render(value)
}
