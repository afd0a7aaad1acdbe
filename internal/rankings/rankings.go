// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rankings computes read-only leaderboards from a chat record's
// completed member analysis. All sorts are stable and descending; a missing
// numeric field counts as zero, never as exclusion. When the analysis block
// has not completed, no leaderboard exists at all: callers must render a
// pending state, which is a different thing from a board of zero scores.
package rankings

import (
	"sort"

	"github.com/morganforge/chitter-tui/internal/model"
)

// Entry is one leaderboard row.
type Entry struct {
	MemberID string
	Score    float64
	// Topic is set on the topic champions board only.
	Topic string
}

// Boards holds every leaderboard derived from one record.
type Boards struct {
	Chaos  []Entry
	Comedy []Entry
	Topics []Entry
	Cringe []Entry
}

// cringeTop is how many rows the cringe board keeps.
const cringeTop = 3

// FromRecord derives all boards from the record's analysis block.
// ok is false when the block is absent or not completed; the boards are
// then meaningless and the caller shows the pending affordance instead.
func FromRecord(rec *model.ChatRecord) (Boards, bool) {
	members, ok := rec.Analysis.Completed()
	if !ok {
		return Boards{}, false
	}
	return Boards{
		Chaos:  Chaos(members),
		Comedy: Comedy(members),
		Topics: TopicChampions(members),
		Cringe: Cringe(members),
	}, true
}

// Chaos ranks members by red flag score plus toxicity score, descending.
func Chaos(members []model.MemberAnalysis) []Entry {
	return rank(members, func(m *model.MemberAnalysis) float64 {
		return m.RedFlagScore + m.ToxicityScore
	})
}

// Comedy ranks members by funny score, descending.
func Comedy(members []model.MemberAnalysis) []Entry {
	return rank(members, func(m *model.MemberAnalysis) float64 {
		return m.FunnyScore
	})
}

// TopicChampions ranks members by the frequency of their first topic,
// descending. Members with no topics rank with frequency 0.
func TopicChampions(members []model.MemberAnalysis) []Entry {
	entries := rank(members, func(m *model.MemberAnalysis) float64 {
		if len(m.TopicAnalysis) == 0 {
			return 0
		}
		return m.TopicAnalysis[0].Frequency
	})
	byID := make(map[string]string, len(members))
	for i := range members {
		if len(members[i].TopicAnalysis) > 0 {
			byID[members[i].MemberID] = members[i].TopicAnalysis[0].Topic
		}
	}
	for i := range entries {
		entries[i].Topic = byID[entries[i].MemberID]
	}
	return entries
}

// Cringe ranks members by cringe score, descending, keeping the top three.
func Cringe(members []model.MemberAnalysis) []Entry {
	entries := rank(members, func(m *model.MemberAnalysis) float64 {
		return m.CringeScore
	})
	if len(entries) > cringeTop {
		entries = entries[:cringeTop]
	}
	return entries
}

// rank builds a descending board. sort.SliceStable keeps ties in source
// order.
func rank(members []model.MemberAnalysis, score func(*model.MemberAnalysis) float64) []Entry {
	entries := make([]Entry, len(members))
	for i := range members {
		entries[i] = Entry{MemberID: members[i].MemberID, Score: score(&members[i])}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Score > entries[b].Score
	})
	return entries
}

// =============================================================================
// FLAVOR QUOTES
// =============================================================================

// Quote is a highlight pulled from a member's analysis for the detail view.
type Quote struct {
	MemberID string
	Kind     string
	Text     string
}

// TopQuotes picks up to three flavor lines from the chaos, comedy and
// cringe leaders: the first red flag reason, funny moment and cringe moment
// respectively. Leaders without the matching list contribute nothing.
func TopQuotes(members []model.MemberAnalysis) []Quote {
	var quotes []Quote
	pick := func(board []Entry, kind string, lines func(*model.MemberAnalysis) []string) {
		if len(board) == 0 {
			return
		}
		for i := range members {
			if members[i].MemberID != board[0].MemberID {
				continue
			}
			if ls := lines(&members[i]); len(ls) > 0 {
				quotes = append(quotes, Quote{MemberID: members[i].MemberID, Kind: kind, Text: ls[0]})
			}
			return
		}
	}
	pick(Chaos(members), "red flag", func(m *model.MemberAnalysis) []string { return m.RedFlagReasons })
	pick(Comedy(members), "funny moment", func(m *model.MemberAnalysis) []string { return m.FunnyMoments })
	pick(Cringe(members), "cringe moment", func(m *model.MemberAnalysis) []string { return m.CringeMoments })
	return quotes
}
