// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app holds the top-level Bubble Tea model for the chitter TUI.
//
// This file renders all four screens. Rendering is pure: nothing here
// mutates model state, all layout decisions come from the theme and the
// current width.
package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/chitter-tui/internal/model"
	"github.com/morganforge/chitter-tui/internal/rankings"
	"github.com/morganforge/chitter-tui/internal/ui/styles"
	"github.com/morganforge/chitter-tui/internal/util"
	"github.com/morganforge/chitter-tui/internal/wizard"
)

// cardHeight is the rendered height of one dashboard card, border included.
const cardHeight = 5

// View renders the active screen.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	switch m.screen {
	case ScreenWelcome:
		return m.viewWelcome()
	case ScreenDashboard:
		return m.viewDashboard()
	case ScreenWizard:
		return m.viewWizard()
	case ScreenDetail:
		return m.viewDetail()
	}
	return ""
}

// =============================================================================
// WELCOME
// =============================================================================

func (m Model) viewWelcome() string {
	logo := m.theme.WelcomeLogo.Render("< chitter >")
	version := m.theme.WelcomeVersion.Render("v" + m.cfg.Version)
	info := m.theme.WelcomeInfo.Render(
		"Sign in first:\n\n" +
			"  " + m.theme.WelcomeKey.Render("chitter login") + "  store your access token\n" +
			"  " + m.theme.WelcomeKey.Render("chitter status") + " check the connection\n")
	press := m.theme.WelcomePressKey.Render("press enter or q to exit")

	box := m.theme.WelcomeBox.Render(
		lipgloss.JoinVertical(lipgloss.Center, logo, version, "", info, press))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// DASHBOARD
// =============================================================================

func (m Model) viewDashboard() string {
	var b strings.Builder

	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		b.WriteString(m.header.ViewCompact())
	} else {
		b.WriteString(m.header.View())
	}
	b.WriteString("\n")
	b.WriteString(m.filterBar.View())
	b.WriteString("\n")

	if m.confirm != nil {
		b.WriteString(lipgloss.Place(m.width, m.listHeight(), lipgloss.Center, lipgloss.Center,
			m.confirm.View(min(m.width-4, 60))))
	} else {
		b.WriteString(m.viewCardList())
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar.View())
	return b.String()
}

func (m Model) viewCardList() string {
	recs := m.visible()
	if len(recs) == 0 {
		empty := m.theme.WelcomeInfo.Render(
			"No chats here yet.\n\nPress " + m.theme.WelcomeKey.Render("n") + " to upload your first export.")
		return lipgloss.Place(m.width, m.listHeight(), lipgloss.Center, lipgloss.Center, empty)
	}

	// Scroll window around the cursor.
	perPage := max(m.listHeight()/cardHeight, 1)
	start := 0
	if m.selected >= perPage {
		start = m.selected - perPage + 1
	}
	end := min(start+perPage, len(recs))

	frame := styles.DotsSpinner.Frame(m.frame)
	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, m.card.Render(&recs[i], i == m.selected, min(m.width, 90), frame))
	}
	if end < len(recs) {
		rows = append(rows, m.theme.WelcomePressKey.Render(
			"  ... "+util.IntToString(len(recs)-end)+" more below"))
	}
	return strings.Join(rows, "\n")
}

// listHeight is the vertical room left for cards between chrome.
func (m Model) listHeight() int {
	chrome := 7 // header, filter bar, status bar, blank joins
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		chrome = 5
	}
	return max(m.height-chrome, cardHeight)
}

// =============================================================================
// WIZARD
// =============================================================================

func (m Model) viewWizard() string {
	var b strings.Builder
	b.WriteString(m.header.ViewCompact())
	b.WriteString("\n\n")

	if m.progress != nil {
		b.WriteString(m.viewSubmission())
		return b.String()
	}

	step := m.session.Step()
	b.WriteString(m.stepper.Render(step, m.width))
	b.WriteString("\n\n")
	b.WriteString(m.theme.WizardTitle.Render(step.Title()))
	b.WriteString("\n")
	b.WriteString(m.theme.WizardSubtitle.Render(step.Subtitle()))
	b.WriteString("\n\n")

	switch step {
	case wizard.StepPlatform:
		b.WriteString(m.viewOptions(wizard.Platforms()))
	case wizard.StepConversationType:
		b.WriteString(m.viewOptions(wizard.ConversationTypes()))
	case wizard.StepUpload:
		b.WriteString(m.viewUpload())
	case wizard.StepMembers:
		b.WriteString(m.viewMembers())
	case wizard.StepNameMapping:
		b.WriteString(m.viewMapping())
	}

	b.WriteString("\n\n")
	b.WriteString(m.theme.WizardHint.Render(m.wizardHint(step)))
	return b.String()
}

func (m Model) wizardHint(step wizard.Step) string {
	switch step {
	case wizard.StepUpload:
		return "enter pick file, r rescan, esc back"
	case wizard.StepMembers:
		return "enter add member (empty to continue), C-d remove last, esc back"
	case wizard.StepNameMapping:
		return "enter edit name, s send for analysis, esc back"
	default:
		return "arrows move, enter select, esc back"
	}
}

func (m Model) viewOptions(opts []wizard.Option) string {
	var rows []string
	for i, opt := range opts {
		style := m.theme.OptionButton
		if i == m.optionIdx {
			style = m.theme.OptionButtonActive
		}
		rows = append(rows, style.Render(opt.Label))
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewUpload() string {
	draft := m.session.Draft()

	var list string
	if len(m.files) == 0 {
		list = m.theme.WizardHint.Render(
			"No exports found in " + m.exportsDir() + ". Drop a file there and press r.")
	} else {
		var rows []string
		for i, f := range m.files {
			style := m.theme.OptionButton
			if i == m.fileIdx {
				style = m.theme.OptionButtonActive
			}
			label := f.Name + "  " + m.theme.CardMeta.Render(f.ModTime.Format("Jan 2 15:04"))
			rows = append(rows, style.Render(label))
		}
		list = strings.Join(rows, "\n")
	}

	var preview string
	if draft.Source != nil {
		preview = m.preview.Render(*draft.Source, min(m.width-4, 80))
	} else if len(m.files) > 0 && m.fileIdx < len(m.files) {
		preview = m.theme.WizardHint.Render("press enter to load a preview")
	}
	if preview == "" {
		return list
	}
	return lipgloss.JoinVertical(lipgloss.Left, list, "", preview)
}

func (m Model) viewMembers() string {
	draft := m.session.Draft()

	var chips []string
	for _, member := range draft.Members {
		chips = append(chips, m.theme.MemberChip.Render(member))
	}
	row := m.theme.WizardHint.Render("nobody added yet")
	if len(chips) > 0 {
		row = strings.Join(chips, " ")
	}

	input := m.theme.InputContainer.Render(m.memberInput.View())
	return lipgloss.JoinVertical(lipgloss.Left, row, "", input)
}

func (m Model) viewMapping() string {
	draft := m.session.Draft()
	if len(draft.Members) == 0 {
		return m.theme.WizardHint.Render(
			"No members to match. Press s to send the chat as-is.")
	}

	var rows []string
	for i, member := range draft.Members {
		chip := m.theme.MemberChip
		if i == m.mappingIdx {
			chip = m.theme.MemberChipSel
		}
		line := chip.Render(member)
		if mapped, ok := draft.NameMapping[member]; ok && mapped != "" {
			line += m.theme.MappingArrow.Render(" -> ") + m.theme.PreviewSender.Render(mapped)
		}
		if i == m.mappingIdx && m.mappingEdit {
			line += "  " + m.theme.InputContainer.Render(m.mappingInput.View())
		}
		rows = append(rows, line)
	}
	body := strings.Join(rows, "\n")

	if draft.Source != nil {
		legend := m.preview.RenderSenderLegend(string(draft.Source.Contents),
			draft.NameMapping, min(m.width-4, 80))
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", legend)
	}
	return body
}

func (m Model) viewSubmission() string {
	draft := m.session.Draft()
	phase := m.progress.Phase()

	var rows []string
	rows = append(rows, styles.RenderPhaseDots(wizard.PhaseCount, phase))
	rows = append(rows, "")
	for i := 0; i <= phase && i < wizard.PhaseCount; i++ {
		msg := wizard.PhaseMessage(draft, i)
		if i < phase {
			rows = append(rows, m.theme.PhaseDone.Render(styles.StatusIndicators.Success+" "+msg))
		} else {
			frame := styles.PhaseSpinner.Frame(m.frame)
			rows = append(rows, m.theme.PhaseText.Render(frame+" "+msg))
		}
	}

	body := strings.Join(rows, "\n")
	return lipgloss.Place(m.width, max(m.height-6, 8), lipgloss.Center, lipgloss.Center, body)
}

// =============================================================================
// DETAIL
// =============================================================================

func (m Model) viewDetail() string {
	if m.detail == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.theme.HeaderTitle.Render(m.detail.Title()))
	b.WriteString("\n")
	b.WriteString(m.theme.HeaderSubtitle.Render(
		util.IntToString(m.detail.MessageCount) + " messages / " +
			m.detail.CreatedAt.Format("Jan 2, 2006")))
	b.WriteString("\n\n")
	b.WriteString(m.detailView.View())
	b.WriteString("\n")

	footer := m.theme.ShortcutKey.Render("c") + m.theme.ShortcutDesc.Render(" copy link  ") +
		m.theme.ShortcutKey.Render("e") + m.theme.ShortcutDesc.Render(" export  ") +
		m.theme.ShortcutKey.Render("esc") + m.theme.ShortcutDesc.Render(" back")
	if m.alert != "" {
		footer += "   " + m.theme.AlertInline.Render(m.alert)
	}
	b.WriteString(footer)
	return b.String()
}

// renderDetailContent builds the scrollable wrapped summary.
func (m Model) renderDetailContent() string {
	rec := m.detail
	if rec == nil {
		return ""
	}
	width := max(m.detailView.Width, 40)
	var sections []string

	// Rankings from the per-member analysis block.
	if boards, ok := rankings.FromRecord(rec); ok {
		sections = append(sections, m.leaderboard.RenderBoards(boards, width))
	} else {
		failed := rec.Analysis.Status() == model.BlockFailed
		sections = append(sections, m.leaderboard.RenderPending(width, failed))
	}

	if supers, ok := rec.Superlatives.Completed(); ok && len(supers.Awards) > 0 {
		var rows []string
		rows = append(rows, m.theme.SectionTitle.Render("Superlatives"))
		for _, award := range supers.Awards {
			rows = append(rows, m.theme.AwardName.Render(award.Title)+" "+
				m.theme.PreviewSender.Render(award.Recipient))
			if award.Reason != "" {
				rows = append(rows, m.theme.AwardReason.Render("  "+award.Reason))
			}
		}
		sections = append(sections, strings.Join(rows, "\n"))
	}

	if vibe, ok := rec.GroupVibe.Completed(); ok {
		var rows []string
		rows = append(rows, m.theme.SectionTitle.Render("Group Vibe"))
		if vibe.PersonalityType != "" {
			rows = append(rows, m.theme.VibeBox.Render(vibe.PersonalityType))
		}
		meter := styles.RenderProgressBar(20, vibe.ChaosLevel.Rating/10)
		rows = append(rows, m.theme.ChaosMeter.Render(
			"chaos "+meter+" "+util.ScoreToString(vibe.ChaosLevel.Rating)+"/10"))
		if vibe.ChaosLevel.Description != "" {
			rows = append(rows, m.theme.AwardReason.Render(vibe.ChaosLevel.Description))
		}
		for _, tradition := range vibe.GroupTraditions {
			rows = append(rows, m.theme.AwardReason.Render("* "+tradition))
		}
		sections = append(sections, strings.Join(rows, "\n"))
	}

	if moments, ok := rec.MemorableMoments.Completed(); ok {
		var rows []string
		rows = append(rows, m.theme.SectionTitle.Render("Memorable Moments"))
		for _, disc := range moments.EpicDiscussions {
			rows = append(rows, m.theme.AwardName.Render(disc.Topic))
			if disc.Highlight != "" {
				rows = append(rows, m.theme.QuoteText.Render("  \""+disc.Highlight+"\""))
			}
		}
		for _, joke := range moments.RunningJokes {
			rows = append(rows, m.theme.AwardReason.Render("* "+joke.Joke))
		}
		if len(rows) > 1 {
			sections = append(sections, strings.Join(rows, "\n"))
		}
	}

	if analysis, ok := rec.Analysis.Completed(); ok {
		quotes := rankings.TopQuotes(analysis)
		if len(quotes) > 0 {
			var rows []string
			rows = append(rows, m.theme.SectionTitle.Render("Hall of Quotes"))
			for _, q := range quotes {
				rows = append(rows, m.theme.QuoteText.Render("\""+q.Text+"\"")+" "+
					m.theme.PreviewSender.Render("- "+q.MemberID))
			}
			sections = append(sections, strings.Join(rows, "\n"))
		}
	}

	if at := rec.Analysis.AnalyzedAt(); !at.IsZero() {
		sections = append(sections, m.theme.WelcomePressKey.Render(
			"analyzed "+at.Format(time.RFC822)))
	}

	return strings.Join(sections, "\n\n")
}
