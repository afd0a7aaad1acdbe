// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package rankings

import (
	"testing"
	"time"

	"github.com/morganforge/chitter-tui/internal/model"
)

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.MemberID
	}
	return out
}

func sameIDs(got []Entry, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].MemberID != want[i] {
			return false
		}
	}
	return true
}

func TestComedyStableTieBreak(t *testing.T) {
	members := []model.MemberAnalysis{
		{MemberID: "A", FunnyScore: 5},
		{MemberID: "B", FunnyScore: 5},
		{MemberID: "C", FunnyScore: 9},
	}
	got := Comedy(members)
	// C first by score; A before B because ties keep source order.
	if !sameIDs(got, "C", "A", "B") {
		t.Errorf("Comedy() order = %v, want [C A B]", ids(got))
	}
}

func TestChaosMissingFieldCountsAsZero(t *testing.T) {
	members := []model.MemberAnalysis{
		{MemberID: "A", RedFlagScore: 1, ToxicityScore: 1},
		{MemberID: "B", ToxicityScore: 3}, // no redFlagScore in the payload
	}
	got := Chaos(members)
	if !sameIDs(got, "B", "A") {
		t.Fatalf("Chaos() order = %v, want [B A]", ids(got))
	}
	// B is ranked with composite 3, not excluded.
	if got[0].Score != 3 {
		t.Errorf("B composite = %v, want 3", got[0].Score)
	}
}

func TestTopicChampionsFirstTopicOnly(t *testing.T) {
	members := []model.MemberAnalysis{
		{MemberID: "A", TopicAnalysis: []model.TopicFrequency{
			{Topic: "food", Frequency: 2},
			{Topic: "memes", Frequency: 99}, // later entries are ignored
		}},
		{MemberID: "B", TopicAnalysis: []model.TopicFrequency{{Topic: "gossip", Frequency: 7}}},
		{MemberID: "C"}, // no topics at all
	}
	got := TopicChampions(members)
	if !sameIDs(got, "B", "A", "C") {
		t.Fatalf("TopicChampions() order = %v, want [B A C]", ids(got))
	}
	if got[0].Topic != "gossip" || got[1].Topic != "food" {
		t.Errorf("topics = %q, %q", got[0].Topic, got[1].Topic)
	}
	if got[2].Score != 0 || got[2].Topic != "" {
		t.Errorf("memberless topic entry = %+v", got[2])
	}
}

func TestCringeKeepsTopThree(t *testing.T) {
	members := []model.MemberAnalysis{
		{MemberID: "A", CringeScore: 4},
		{MemberID: "B", CringeScore: 8},
		{MemberID: "C", CringeScore: 1},
		{MemberID: "D", CringeScore: 6},
		{MemberID: "E", CringeScore: 9},
	}
	got := Cringe(members)
	if !sameIDs(got, "E", "B", "D") {
		t.Errorf("Cringe() = %v, want top three [E B D]", ids(got))
	}
}

func TestCringeFewerThanThree(t *testing.T) {
	got := Cringe([]model.MemberAnalysis{{MemberID: "A", CringeScore: 2}})
	if !sameIDs(got, "A") {
		t.Errorf("Cringe() = %v, want [A]", ids(got))
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	members := []model.MemberAnalysis{
		{MemberID: "A", FunnyScore: 1},
		{MemberID: "B", FunnyScore: 9},
	}
	Comedy(members)
	if members[0].MemberID != "A" || members[1].MemberID != "B" {
		t.Error("input slice reordered")
	}
}

// =============================================================================
// RECORD-LEVEL DERIVATION
// =============================================================================

func TestFromRecordRequiresCompletedBlock(t *testing.T) {
	rec := &model.ChatRecord{ID: "c1"}
	if _, ok := FromRecord(rec); ok {
		t.Error("FromRecord() ok with absent analysis block")
	}

	rec.Analysis = model.NewPendingBlock[[]model.MemberAnalysis]()
	if _, ok := FromRecord(rec); ok {
		t.Error("FromRecord() ok with pending block; pending is not a zero leaderboard")
	}

	rec.Analysis = model.NewFailedBlock[[]model.MemberAnalysis]("model overloaded")
	if _, ok := FromRecord(rec); ok {
		t.Error("FromRecord() ok with failed block")
	}
}

func TestFromRecordCompletedWithZeroScores(t *testing.T) {
	// Everyone scored zero. A real board exists; it is not the pending state.
	members := []model.MemberAnalysis{{MemberID: "A"}, {MemberID: "B"}}
	rec := &model.ChatRecord{
		ID:       "c1",
		Analysis: model.NewCompletedBlock(members, time.Now()),
	}
	boards, ok := FromRecord(rec)
	if !ok {
		t.Fatal("FromRecord() not ok for completed block")
	}
	if !sameIDs(boards.Chaos, "A", "B") || !sameIDs(boards.Comedy, "A", "B") {
		t.Errorf("zero-score boards wrong: chaos=%v comedy=%v", ids(boards.Chaos), ids(boards.Comedy))
	}
}

func TestTopQuotes(t *testing.T) {
	members := []model.MemberAnalysis{
		{
			MemberID:       "A",
			RedFlagScore:   8,
			RedFlagReasons: []string{"triple-texts at 3am", "something else"},
			FunnyScore:     2,
		},
		{
			MemberID:     "B",
			FunnyScore:   9,
			FunnyMoments: []string{"the ladder story"},
			CringeScore:  7,
			// No cringe moments recorded: the cringe leader contributes
			// no quote.
		},
	}
	got := TopQuotes(members)
	if len(got) != 2 {
		t.Fatalf("TopQuotes() = %v, want 2 quotes", got)
	}
	if got[0].MemberID != "A" || got[0].Kind != "red flag" || got[0].Text != "triple-texts at 3am" {
		t.Errorf("first quote = %+v", got[0])
	}
	if got[1].MemberID != "B" || got[1].Kind != "funny moment" || got[1].Text != "the ladder story" {
		t.Errorf("second quote = %+v", got[1])
	}
}
