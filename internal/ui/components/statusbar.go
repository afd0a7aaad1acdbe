// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for chitter TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/chitter-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Conn represents the data source the dashboard is showing.
type Conn int

const (
	ConnLive    Conn = iota // Live subscription delivering pushes
	ConnCached              // Showing the local snapshot, reconnecting
	ConnOffline             // No subscription and no cached snapshot
)

// String returns the display string for the connection state
func (c Conn) String() string {
	switch c {
	case ConnLive:
		return "LIVE"
	case ConnCached:
		return "CACHED"
	case ConnOffline:
		return "OFFLINE"
	default:
		return "UNKNOWN"
	}
}

// Icon returns an icon for the connection state
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (c Conn) Icon() string {
	switch c {
	case ConnLive:
		return styles.AnimationStatusIndicators.Connected
	case ConnCached:
		return styles.AnimationStatusIndicators.Loading
	case ConnOffline:
		return styles.AnimationStatusIndicators.Offline
	default:
		return "?"
	}
}

// StatusBar represents the bottom status bar
type StatusBar struct {
	Conn          Conn   // Data source indicator
	Email         string // Signed-in account
	TotalChats    int    // Chats in the current snapshot
	Processing    int    // Chats still being analyzed
	UniqueMembers int    // Distinct members across chats
	Message       string // Transient status text (e.g. "Copied link")
	Width         int    // Available width
	ShowShortcuts bool   // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Conn:          ConnOffline,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetConn updates the connection state
func (s *StatusBar) SetConn(conn Conn) {
	s.Conn = conn
}

// SetEmail updates the signed-in account display
func (s *StatusBar) SetEmail(email string) {
	s.Email = email
}

// SetStats updates the snapshot statistics
func (s *StatusBar) SetStats(total, processing, members int) {
	s.TotalChats = total
	s.Processing = processing
	s.UniqueMembers = members
}

// SetMessage sets a transient status message
func (s *StatusBar) SetMessage(msg string) {
	s.Message = msg
}

// View renders the status bar
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals
// Format: [(+)] 12 chats  message
func (s *StatusBar) viewNarrow() string {
	connStyle := s.getConnStyle()
	connBadge := "[" + connStyle.Render(s.Conn.Icon()) + "]"

	countStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	counts := countStyle.Render(toStr(s.TotalChats) + " chats")

	parts := []string{connBadge, counts}
	if s.Message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
		parts = append(parts, msgStyle.Render(truncate(s.Message, s.Width-20)))
	}

	result := strings.Join(parts, " ")

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewWide renders a full status bar
// Format: (+) LIVE | dana@example.com | 12 chats | 2 brewing | 9 members ... ^n new ^e export q quit
func (s *StatusBar) viewWide() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	leftParts := []string{}

	// Connection state
	connStyle := s.getConnStyle()
	leftParts = append(leftParts, connStyle.Render(s.Conn.Icon()+" "+s.Conn.String()))

	// Account
	if s.Email != "" {
		emailStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		leftParts = append(leftParts, emailStyle.Render(truncate(s.Email, 30)))
	}

	// Snapshot stats
	statStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	leftParts = append(leftParts, statStyle.Render(fmtNumber(s.TotalChats)+" chats"))
	if s.Processing > 0 {
		brewStyle := lipgloss.NewStyle().Foreground(styles.Peach)
		leftParts = append(leftParts, brewStyle.Render(toStr(s.Processing)+" brewing"))
	}
	if s.UniqueMembers > 0 {
		leftParts = append(leftParts, statStyle.Render(fmtNumber(s.UniqueMembers)+" members"))
	}

	// Transient message
	if s.Message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(styles.Mint).Italic(true)
		leftParts = append(leftParts, msgStyle.Render(s.Message))
	}

	leftSection := strings.Join(leftParts, separator)

	// Right section: shortcuts
	rightSection := ""
	if s.ShowShortcuts {
		rightSection = s.renderShortcuts()
	}

	// Calculate spacing
	leftWidth := lipgloss.Width(leftSection)
	rightWidth := lipgloss.Width(rightSection)
	spacing := s.Width - leftWidth - rightWidth - 2
	if spacing < 1 {
		spacing = 1
	}

	result := leftSection + strings.Repeat(" ", spacing) + rightSection

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// renderShortcuts renders keyboard shortcut hints
func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Coffee).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	shortcuts := []string{
		keyStyle.Render("n") + descStyle.Render(" new"),
		keyStyle.Render("/") + descStyle.Render(" search"),
		keyStyle.Render("q") + descStyle.Render(" quit"),
	}

	return strings.Join(shortcuts, " ")
}

// getConnStyle returns the style for the current connection state
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users
func (s *StatusBar) getConnStyle() lipgloss.Style {
	switch s.Conn {
	case ConnLive:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case ConnCached:
		return lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
	case ConnOffline:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
