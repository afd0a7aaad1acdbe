// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/morganforge/chitter-tui/internal/model"
	"github.com/morganforge/chitter-tui/internal/rankings"
	"github.com/morganforge/chitter-tui/internal/util"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders a record's wrapped summary as Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a record to Markdown format.
func (e *MarkdownExporter) Export(rec *model.ChatRecord) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("record is nil")
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("record has no id")
	}

	var sb strings.Builder

	// YAML frontmatter with metadata
	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(rec.Title())))
	sb.WriteString(fmt.Sprintf("platform: %s\n", rec.Platform))
	if !rec.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("date: %s\n", rec.CreatedAt.Format(time.RFC3339)))
	}
	sb.WriteString(fmt.Sprintf("members: %d\n", rec.MemberCount()))
	if rec.MessageCount > 0 {
		sb.WriteString(fmt.Sprintf("messages: %d\n", rec.MessageCount))
	}
	sb.WriteString(fmt.Sprintf("exported: %s\n", time.Now().Format(time.RFC3339)))
	sb.WriteString("generator: chitter-tui\n")
	sb.WriteString("---\n\n")

	// Title
	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(rec.Title())))

	// Overview
	sb.WriteString("## Overview\n\n")
	sb.WriteString(fmt.Sprintf("- **Platform**: %s\n", rec.Platform))
	sb.WriteString(fmt.Sprintf("- **Members**: %s\n", strings.Join(rec.Members, ", ")))
	if rec.MessageCount > 0 {
		sb.WriteString(fmt.Sprintf("- **Messages**: %d\n", rec.MessageCount))
	}
	if !rec.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Created**: %s\n", formatTimestamp(rec.CreatedAt)))
	}
	sb.WriteString("\n")

	e.writeLeaderboards(&sb, rec)
	e.writeSuperlatives(&sb, rec)
	e.writeGroupVibe(&sb, rec)
	if e.options.IncludeMoments {
		e.writeMoments(&sb, rec)
	}

	// Footer
	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from chitter TUI on %s*\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// SECTIONS
// =============================================================================

func (e *MarkdownExporter) writeLeaderboards(sb *strings.Builder, rec *model.ChatRecord) {
	sb.WriteString("## Leaderboards\n\n")

	boards, ok := rankings.FromRecord(rec)
	if !ok {
		// Absent or not yet completed. A pending note, never a board of
		// zeros.
		sb.WriteString(pendingNote(rec.Analysis.Status()))
		return
	}

	writeBoard(sb, "Chaos Ranking", boards.Chaos)
	writeBoard(sb, "Comedy Gold", boards.Comedy)

	sb.WriteString("### Topic Champions\n\n")
	for i, entry := range boards.Topics {
		topic := entry.Topic
		if topic == "" {
			topic = "no topics recorded"
		}
		sb.WriteString(fmt.Sprintf("%d. **%s** — %s (%s)\n",
			i+1, escapeMarkdown(entry.MemberID), escapeMarkdown(topic), util.ScoreToString(entry.Score)))
	}
	sb.WriteString("\n")

	writeBoard(sb, "Cringe Hall of Fame", boards.Cringe)
}

func writeBoard(sb *strings.Builder, title string, entries []rankings.Entry) {
	sb.WriteString(fmt.Sprintf("### %s\n\n", title))
	for i, entry := range entries {
		sb.WriteString(fmt.Sprintf("%d. **%s** — %s\n",
			i+1, escapeMarkdown(entry.MemberID), util.ScoreToString(entry.Score)))
	}
	sb.WriteString("\n")
}

func (e *MarkdownExporter) writeSuperlatives(sb *strings.Builder, rec *model.ChatRecord) {
	superlatives, ok := rec.Superlatives.Completed()
	if !ok || len(superlatives.Awards) == 0 {
		return
	}
	sb.WriteString("## Awards\n\n")
	for _, award := range superlatives.Awards {
		sb.WriteString(fmt.Sprintf("- **%s** goes to **%s**: %s\n",
			escapeMarkdown(award.Title), escapeMarkdown(award.Recipient), escapeMarkdown(award.Reason)))
	}
	sb.WriteString("\n")
}

func (e *MarkdownExporter) writeGroupVibe(sb *strings.Builder, rec *model.ChatRecord) {
	vibe, ok := rec.GroupVibe.Completed()
	if !ok {
		return
	}
	sb.WriteString("## Group Vibe\n\n")
	sb.WriteString(fmt.Sprintf("- **Personality**: %s\n", escapeMarkdown(vibe.PersonalityType)))
	sb.WriteString(fmt.Sprintf("- **Chaos Level**: %s/10 — %s\n",
		util.ScoreToString(vibe.ChaosLevel.Rating), escapeMarkdown(vibe.ChaosLevel.Description)))
	for _, quirk := range vibe.CollectiveQuirks {
		sb.WriteString(fmt.Sprintf("- %s\n", escapeMarkdown(quirk)))
	}
	for _, tradition := range vibe.GroupTraditions {
		sb.WriteString(fmt.Sprintf("- Tradition: %s\n", escapeMarkdown(tradition)))
	}
	sb.WriteString("\n")
}

func (e *MarkdownExporter) writeMoments(sb *strings.Builder, rec *model.ChatRecord) {
	moments, ok := rec.MemorableMoments.Completed()
	if !ok {
		return
	}
	sb.WriteString("## Memorable Moments\n\n")
	for _, d := range moments.EpicDiscussions {
		sb.WriteString(fmt.Sprintf("- **%s**: %s\n", escapeMarkdown(d.Topic), escapeMarkdown(d.Highlight)))
	}
	for _, j := range moments.RunningJokes {
		sb.WriteString(fmt.Sprintf("- Running joke: **%s** (%s)\n", escapeMarkdown(j.Joke), escapeMarkdown(j.Context)))
	}
	for _, m := range moments.LegendaryMisunderstandings {
		sb.WriteString(fmt.Sprintf("- Legendary misunderstanding: %s\n", escapeMarkdown(m)))
	}
	sb.WriteString("\n")
}

func pendingNote(status model.BlockStatus) string {
	switch status {
	case model.BlockFailed:
		return "_Analysis failed; leaderboards are unavailable for this chat._\n\n"
	default:
		return "_Analysis still brewing; leaderboards will appear once it completes._\n\n"
	}
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	// Only escape characters that would break formatting in titles/headings
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML escapes special YAML characters in values.
func escapeYAML(s string) string {
	// Quote if contains special characters (including backslash)
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
