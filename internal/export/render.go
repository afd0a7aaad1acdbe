// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/morganforge/chitter-tui/internal/model"
)

// =============================================================================
// TERMINAL RENDERING
// =============================================================================

// RenderTerminal renders a record's wrapped summary for display in the
// terminal, styled for the given theme.
func RenderTerminal(rec *model.ChatRecord, opts *Options, width int) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if width <= 0 {
		width = 80
	}

	markdown, err := NewMarkdownExporter(opts).Export(rec)
	if err != nil {
		return "", err
	}

	style := "dark"
	if opts.Theme == "light" {
		style = "light"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}

	out, err := renderer.Render(string(markdown))
	if err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return out, nil
}
