// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for chitter TUI.
package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/chitter-tui/internal/ui/styles"
	"github.com/morganforge/chitter-tui/internal/util"
	"github.com/morganforge/chitter-tui/internal/wizard"
)

// =============================================================================
// EXPORT PREVIEW COMPONENT - Attached chat file preview in the wizard
// =============================================================================

// maxPreviewLines bounds how much of an export file we render.
// Export files run to megabytes; the preview exists to confirm the right
// file was picked, not to read the chat.
const maxPreviewLines = 12

// Preview renders the head of an attached export file.
type Preview struct {
	theme *styles.Theme
}

// NewPreview creates a preview renderer.
func NewPreview(theme *styles.Theme) *Preview {
	return &Preview{theme: theme}
}

// Render renders the first lines of an attached file inside a box.
// WhatsApp-style message headers get their sender names highlighted;
// JSON exports get syntax highlighting through chroma.
func (p *Preview) Render(file wizard.SourceFile, width int) string {
	if file.Name == "" {
		return p.theme.PreviewBox.Width(width - 2).Render(
			p.theme.WizardHint.Render("No file attached yet"))
	}

	head := headLines(string(file.Contents), maxPreviewLines)

	var body string
	if strings.HasSuffix(strings.ToLower(file.Name), ".json") {
		body = highlightJSON(head)
	} else {
		body = wizard.HighlightHeaders(head, func(sender string) string {
			return p.theme.PreviewSender.Render(sender)
		})
	}

	// Clamp line width so the box survives narrow terminals.
	innerWidth := width - 6
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = util.TruncateWidth(line, innerWidth)
	}

	title := p.theme.WizardSubtitle.Render(file.Name)
	content := title + "\n" + strings.Join(lines, "\n")

	return p.theme.PreviewBox.Width(width - 2).Render(content)
}

// headLines returns the first n lines of text.
func headLines(text string, n int) string {
	lines := strings.SplitN(text, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightJSON applies JSON syntax highlighting using the chroma library.
// This provides ANSI-safe highlighting for terminal output.
func highlightJSON(code string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var sb strings.Builder
	if err := formatter.Format(&sb, style, iterator); err != nil {
		return code
	}
	return sb.String()
}

// =============================================================================
// SENDER LEGEND - Detected senders with their mapped member names
// =============================================================================

// RenderSenderLegend lists senders found in the export alongside the member
// each one maps to, for the name mapping step.
func (p *Preview) RenderSenderLegend(contents string, mapping map[string]string, width int) string {
	senders := wizard.SendersIn(contents)
	if len(senders) == 0 {
		return p.theme.WizardHint.Render("No senders detected in this file")
	}

	arrow := p.theme.MappingArrow.Render(" " + styles.TreeChars.Dash + "> ")

	rows := make([]string, 0, len(senders))
	for _, sender := range senders {
		mapped := wizard.MappedSender(sender, mapping)
		row := p.theme.MemberChip.Render(util.TruncateWidth(sender, 24))
		if mapped != sender {
			row += arrow + p.theme.MemberChipSel.Render(util.TruncateWidth(mapped, 24))
		}
		rows = append(rows, row)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
