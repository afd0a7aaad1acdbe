// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for chitter TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/chitter-tui/internal/mirror"
	"github.com/morganforge/chitter-tui/internal/ui/styles"
)

// =============================================================================
// FILTER BAR COMPONENT - Search box plus platform/type cycles
// =============================================================================

// FilterBar holds the dashboard's search input and the two filter cycles.
type FilterBar struct {
	search    textinput.Model
	platforms []string
	types     []string
	platIdx   int
	typeIdx   int
	theme     *styles.Theme
	width     int
}

// NewFilterBar creates a filter bar with both cycles on "all".
func NewFilterBar(theme *styles.Theme) *FilterBar {
	ti := textinput.New()
	ti.Placeholder = "search chats or members"
	ti.CharLimit = 80
	ti.Prompt = "/ "

	return &FilterBar{
		search:    ti,
		platforms: mirror.FilterPlatforms(),
		types:     mirror.FilterTypes(),
		theme:     theme,
		width:     80,
	}
}

// SetWidth updates the bar width.
func (f *FilterBar) SetWidth(width int) {
	f.width = width
	inputWidth := width - 40
	if inputWidth < 16 {
		inputWidth = 16
	}
	f.search.Width = inputWidth
}

// Focus puts the search box into typing mode.
func (f *FilterBar) Focus() tea.Cmd {
	return f.search.Focus()
}

// Blur leaves typing mode, keeping the entered text.
func (f *FilterBar) Blur() {
	f.search.Blur()
}

// Focused reports whether the search box is capturing keystrokes.
func (f *FilterBar) Focused() bool {
	return f.search.Focused()
}

// ClearSearch resets the search text.
func (f *FilterBar) ClearSearch() {
	f.search.SetValue("")
}

// CyclePlatform advances the platform filter to its next value, wrapping.
func (f *FilterBar) CyclePlatform() {
	f.platIdx = (f.platIdx + 1) % len(f.platforms)
}

// CycleType advances the conversation type filter, wrapping.
func (f *FilterBar) CycleType() {
	f.typeIdx = (f.typeIdx + 1) % len(f.types)
}

// Filter returns the composed filter for the mirror.
func (f *FilterBar) Filter() mirror.Filter {
	return mirror.Filter{
		Search:   strings.TrimSpace(f.search.Value()),
		Platform: f.platforms[f.platIdx],
		Type:     f.types[f.typeIdx],
	}
}

// Update forwards messages to the search input.
func (f *FilterBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.search, cmd = f.search.Update(msg)
	return cmd
}

// View renders the filter bar.
func (f *FilterBar) View() string {
	searchView := f.search.View()

	platform := f.renderCycle("p:", f.platforms[f.platIdx])
	convType := f.renderCycle("t:", f.types[f.typeIdx])

	row := lipgloss.JoinHorizontal(lipgloss.Center,
		searchView, "  ", platform, " ", convType)

	return f.theme.FilterBar.Width(f.width - 2).Render(row)
}

// renderCycle renders one filter cycle, highlighted when it narrows results.
func (f *FilterBar) renderCycle(label, value string) string {
	labelView := f.theme.FilterLabel.Render(label)
	if value == mirror.FilterAll {
		return labelView + f.theme.FilterValue.Render(value)
	}
	return labelView + f.theme.FilterValueActive.Render(value)
}
