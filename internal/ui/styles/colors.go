// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for chitter TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Coffee - Primary accent, headers, selections
var Coffee = lipgloss.AdaptiveColor{Light: "#6F4E37", Dark: "#C8A27C"}

// CoffeeDeep - Darker coffee for backgrounds
var CoffeeDeep = lipgloss.AdaptiveColor{Light: "#4B3621", Dark: "#3A2D1F"}

// Lavender - Secondary accent, chaos boards, highlights
var Lavender = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#C4B5FD"}

// LavenderDeep - Darker lavender for backgrounds
var LavenderDeep = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#4C1D95"}

// Mint - Success states, completed analyses, comedy boards
var Mint = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#6EE7B7"}

// MintDeep - Darker mint for backgrounds
var MintDeep = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#064E3B"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, red flags, delete confirmations
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FDA4AF"}

// RoseDeep - Darker rose for backgrounds
var RoseDeep = lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#881337"}

// Peach - Warnings, pending analyses, cringe boards
var Peach = lipgloss.AdaptiveColor{Light: "#EA580C", Dark: "#FDBA74"}

// PeachDeep - Darker peach for backgrounds
var PeachDeep = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#7C2D12"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFF8F0", Dark: "#1C1814"}

// SurfaceDim - Slightly darker/lighter surface for headers/footers
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F7EFE5", Dark: "#16120E"}

// SurfaceBright - Slightly lighter/darker surface for highlights
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#FFFDF9", Dark: "#2A241D"}

// Overlay - Borders, separators, subtle backgrounds
var Overlay = lipgloss.AdaptiveColor{Light: "#E8DDD0", Dark: "#3A322A"}

// OverlayDim - Dimmer overlay for less prominent elements
var OverlayDim = lipgloss.AdaptiveColor{Light: "#D6C9B8", Dark: "#4A4036"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#3A2D1F", Dark: "#EDE4D8"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B5D4B", Dark: "#B8AB99"}

// TextMuted - Hints, timestamps, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9C8E7A", Dark: "#7A6F60"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFF8F0", Dark: "#1C1814"}

// =============================================================================
// BOARD ACCENTS
// =============================================================================
// One accent per leaderboard so the detail view reads at a glance.

var BoardChaos = Lavender
var BoardComedy = Mint
var BoardTopics = Coffee
var BoardCringe = Peach

// =============================================================================
// ANALYSIS STATE COLORS
// =============================================================================

// StatusCompleted - analysis done, results available
var StatusCompleted = Mint

// StatusPending - waiting in the analysis queue
var StatusPending = Peach

// StatusProcessing - analysis running right now
var StatusProcessing = Lavender

// StatusFailed - analysis gave up
var StatusFailed = Rose

// =============================================================================
// SPECIAL EFFECTS
// =============================================================================

// Focus ring color
var FocusRing = Lavender

// Selection highlight
var SelectionBg = lipgloss.AdaptiveColor{Light: "#EDE0FE", Dark: "#3B2D5C"}

// =============================================================================
// ACCESSIBILITY: Shapes and high contrast for colorblind users
// =============================================================================

// StatusIndicatorSet contains text/shape indicators for status states.
// These symbols provide visual cues beyond color for colorblind accessibility.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
	Pending string
	Active  string
}

// StatusIndicators provides accessible shape/text indicators alongside colors.
// ACCESSIBILITY: ASCII-only indicators for maximum compatibility and colorblind users.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
	Pending: "[ ]",
	Active:  "[*]",
}

// High contrast pairs, distinct even for red-green colorblind users.
var SuccessHighContrast = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#22C55E"}
var ErrorHighContrast = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
var WarningHighContrast = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}
var InfoHighContrast = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}

// =============================================================================
// ACCESSIBILITY: Helper functions for rendering accessible status messages
// =============================================================================

// RenderSuccess renders a success message with checkmark indicator and high contrast green.
// ACCESSIBILITY: Includes shape indicator for colorblind users.
func RenderSuccess(message string) string {
	style := lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)
	return style.Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with X mark indicator and high contrast red.
// ACCESSIBILITY: Includes shape indicator for colorblind users.
func RenderError(message string) string {
	style := lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)
	return style.Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a warning message with warning triangle and high contrast amber.
// ACCESSIBILITY: Includes shape indicator for colorblind users.
func RenderWarning(message string) string {
	style := lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)
	return style.Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders an info message with info circle and high contrast blue.
// ACCESSIBILITY: Includes shape indicator for colorblind users.
func RenderInfo(message string) string {
	style := lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true)
	return style.Render(StatusIndicators.Info + " " + message)
}
