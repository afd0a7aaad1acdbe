// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for chitter TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/chitter-tui/internal/ui/styles"
	"github.com/morganforge/chitter-tui/internal/util"
)

// =============================================================================
// CONFIRM DIALOG - Delete confirmation overlay
// =============================================================================

// Confirm is a two-button yes/no dialog.
type Confirm struct {
	Title    string
	Detail   string
	YesLabel string
	NoLabel  string
	yes      bool
	theme    *styles.Theme
}

// NewConfirm creates a confirm dialog defaulting to "No".
// SECURITY: destructive actions never default to the confirming button.
func NewConfirm(theme *styles.Theme, title, detail string) *Confirm {
	return &Confirm{
		Title:    title,
		Detail:   detail,
		YesLabel: "Delete",
		NoLabel:  "Keep",
		yes:      false,
		theme:    theme,
	}
}

// Toggle flips the selected button.
func (c *Confirm) Toggle() {
	c.yes = !c.yes
}

// Confirmed reports whether the destructive button is selected.
func (c *Confirm) Confirmed() bool {
	return c.yes
}

// View renders the dialog box.
func (c *Confirm) View(width int) string {
	if width < 30 {
		width = 30
	}
	innerWidth := width - 8

	title := c.theme.ConfirmTitle.Render(styles.StatusIndicators.Warning + " " + c.Title)
	detail := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(util.TruncateWidth(c.Detail, innerWidth))

	yesStyle := c.theme.ConfirmButton
	noStyle := c.theme.ConfirmButtonActive
	if c.yes {
		yesStyle = c.theme.ConfirmButtonActive
		noStyle = c.theme.ConfirmButton
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		yesStyle.Render(c.YesLabel),
		noStyle.Render(c.NoLabel),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, title, detail, "", buttons)
	return c.theme.ConfirmBox.Render(content)
}
