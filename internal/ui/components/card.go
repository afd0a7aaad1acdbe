// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for chitter TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/chitter-tui/internal/model"
	"github.com/morganforge/chitter-tui/internal/ui/styles"
	"github.com/morganforge/chitter-tui/internal/util"
)

// =============================================================================
// CHAT CARD COMPONENT - One mirrored record on the dashboard
// =============================================================================

// Card renders a single chat record as a bordered card.
type Card struct {
	theme *styles.Theme
}

// NewCard creates a card renderer.
func NewCard(theme *styles.Theme) *Card {
	return &Card{theme: theme}
}

// Render renders one record. selected draws the focus border,
// spinnerFrame animates the processing badge ("" when idle).
func (c *Card) Render(rec *model.ChatRecord, selected bool, width int, spinnerFrame string) string {
	if rec == nil {
		return ""
	}
	if width < 30 {
		width = 30
	}
	innerWidth := width - 6

	// Title row: conversation type + platform
	title := c.theme.CardTitle.Render(util.TruncateWidth(rec.Title(), innerWidth-14))
	platform := c.theme.CardPlatform.Render(platformLabel(rec.Platform))
	titleRow := title + "  " + platform

	// Members row
	members := strings.Join(rec.Members, ", ")
	if members == "" {
		members = "no members listed"
	}
	memberRow := c.theme.CardMembers.Render(util.TruncateWidth(members, innerWidth))

	// Meta row: badge + message count + created date
	metaParts := []string{c.renderBadge(rec, spinnerFrame)}
	if rec.MessageCount > 0 {
		metaParts = append(metaParts, fmtNumber(rec.MessageCount)+" messages")
	}
	if !rec.CreatedAt.IsZero() {
		metaParts = append(metaParts, rec.CreatedAt.Format("Jan 2, 2006"))
	}
	metaRow := c.theme.CardMeta.Render(strings.Join(metaParts, "  "))

	content := lipgloss.JoinVertical(lipgloss.Left, titleRow, memberRow, metaRow)

	box := c.theme.Card
	if selected {
		box = c.theme.CardSelected
	}
	return box.Width(width - 2).Render(content)
}

// renderBadge renders the analysis status badge for a record.
func (c *Card) renderBadge(rec *model.ChatRecord, spinnerFrame string) string {
	status := analysisStatus(rec)
	badge, indicator := c.theme.BadgeFor(status)

	label := status
	if status == "processing" && spinnerFrame != "" {
		indicator = spinnerFrame
		label = "brewing"
	}
	return badge.Render(indicator + " " + label)
}

// analysisStatus collapses a record's blocks into the badge status.
// A record is processing while any block still runs, failed only when the
// member analysis itself failed, and completed once member analysis is done.
func analysisStatus(rec *model.ChatRecord) string {
	if rec.Status == model.ChatProcessing {
		return "processing"
	}
	switch rec.Analysis.Status() {
	case model.BlockCompleted:
		return "completed"
	case model.BlockFailed:
		return "failed"
	case model.BlockProcessing:
		return "processing"
	default:
		return "pending"
	}
}

// platformLabel maps wire platform values to display labels.
func platformLabel(platform string) string {
	switch strings.ToLower(platform) {
	case "whatsapp":
		return "WhatsApp"
	case "messenger":
		return "Messenger"
	case "discord":
		return "Discord"
	case "telegram":
		return "Telegram"
	case "":
		return "Unknown"
	default:
		return platform
	}
}
