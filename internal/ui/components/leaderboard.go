// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for chitter TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/chitter-tui/internal/rankings"
	"github.com/morganforge/chitter-tui/internal/ui/styles"
	"github.com/morganforge/chitter-tui/internal/util"
)

// =============================================================================
// LEADERBOARD COMPONENT - Ranked member boards on the detail view
// =============================================================================

// Leaderboard renders one ranked board.
type Leaderboard struct {
	theme *styles.Theme
}

// NewLeaderboard creates a leaderboard renderer.
func NewLeaderboard(theme *styles.Theme) *Leaderboard {
	return &Leaderboard{theme: theme}
}

// Render renders a titled board with ranked entries.
// accent colors the title so each board reads at a glance.
func (l *Leaderboard) Render(title string, accent lipgloss.AdaptiveColor, entries []rankings.Entry, width int) string {
	if width < 24 {
		width = 24
	}
	innerWidth := width - 6

	titleView := l.theme.BoardTitle.Foreground(accent).Render(title)

	rows := []string{titleView}
	if len(entries) == 0 {
		rows = append(rows, l.theme.BoardMember.Render("nobody ranked"))
	}

	for i, entry := range entries {
		rank := l.theme.BoardRank.Render(toStr(i + 1) + ".")

		nameStyle := l.theme.BoardMember
		if i == 0 {
			nameStyle = l.theme.BoardLeader
		}
		score := l.theme.BoardScore.Render(util.ScoreToString(entry.Score))

		nameWidth := innerWidth - lipgloss.Width(rank) - lipgloss.Width(score) - 1
		if nameWidth < 4 {
			nameWidth = 4
		}
		name := nameStyle.Render(util.PadRight(util.TruncateWidth(entry.MemberID, nameWidth), nameWidth))

		row := rank + name + " " + score
		if entry.Topic != "" {
			row += "\n" + l.theme.BoardTopic.Render("    "+util.TruncateWidth(entry.Topic, innerWidth-4))
		}
		rows = append(rows, row)
	}

	content := strings.Join(rows, "\n")
	return l.theme.BoardBox.Width(width - 2).Render(content)
}

// RenderPending renders the affordance shown while analysis is not finished.
// A pending board is visually distinct from a completed board with zero
// scores: nothing is ranked and nothing reads as a leader.
func (l *Leaderboard) RenderPending(width int, failed bool) string {
	if width < 24 {
		width = 24
	}

	var notice string
	if failed {
		notice = l.theme.FailedNotice.Render(styles.StatusIndicators.Error + " Analysis failed. Upload the chat again to retry.")
	} else {
		notice = l.theme.PendingNotice.Render(styles.StatusIndicators.Pending + " Analysis still brewing. Check back in a minute.")
	}

	return l.theme.BoardBox.Width(width - 2).Render(notice)
}

// RenderBoards renders all four boards, side by side when the width allows.
func (l *Leaderboard) RenderBoards(boards rankings.Boards, width int) string {
	sections := []struct {
		title   string
		accent  lipgloss.AdaptiveColor
		entries []rankings.Entry
	}{
		{"Chaos Rankings", styles.BoardChaos, boards.Chaos},
		{"Comedy Gold", styles.BoardComedy, boards.Comedy},
		{"Topic Champions", styles.BoardTopics, boards.Topics},
		{"Cringe Hall of Fame", styles.BoardCringe, boards.Cringe},
	}

	if width >= 100 {
		half := width / 2
		rendered := make([]string, 0, len(sections))
		for _, sec := range sections {
			rendered = append(rendered, l.Render(sec.title, sec.accent, sec.entries, half))
		}
		top := lipgloss.JoinHorizontal(lipgloss.Top, rendered[0], rendered[1])
		bottom := lipgloss.JoinHorizontal(lipgloss.Top, rendered[2], rendered[3])
		return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}

	rendered := make([]string, 0, len(sections))
	for _, sec := range sections {
		rendered = append(rendered, l.Render(sec.title, sec.accent, sec.entries, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
