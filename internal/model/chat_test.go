// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
	"time"
)

// =============================================================================
// BLOCK DECODE TESTS
// =============================================================================

func TestBlock_DecodeAbsent(t *testing.T) {
	// A record without the field at all leaves the zero Block.
	var rec ChatRecord
	if err := json.Unmarshal([]byte(`{"id":"c1"}`), &rec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if rec.GroupVibe.Status() != BlockAbsent {
		t.Errorf("missing field: status = %v, want absent", rec.GroupVibe.Status())
	}

	// An explicit null decodes the same way.
	if err := json.Unmarshal([]byte(`{"id":"c1","groupVibe":null}`), &rec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if rec.GroupVibe.Status() != BlockAbsent {
		t.Errorf("null field: status = %v, want absent", rec.GroupVibe.Status())
	}
}

func TestBlock_DecodeStatuses(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected BlockStatus
	}{
		{"pending", `{"status":"pending"}`, BlockPending},
		{"processing", `{"status":"processing"}`, BlockProcessing},
		{"failed", `{"status":"failed","error":"model overloaded"}`, BlockFailed},
		{"unknown falls back to pending", `{"status":"queued"}`, BlockPending},
		{"empty status falls back to pending", `{}`, BlockPending},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var b Block[GroupVibe]
			if err := json.Unmarshal([]byte(tc.payload), &b); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if b.Status() != tc.expected {
				t.Errorf("status = %v, want %v", b.Status(), tc.expected)
			}
			if _, ok := b.Completed(); ok {
				t.Error("Completed() = true for non-completed block")
			}
		})
	}
}

func TestBlock_DecodeCompleted(t *testing.T) {
	payload := `{
		"status": "completed",
		"analyzedAt": "2025-06-01T12:00:00Z",
		"results": {
			"chaosLevel": {"rating": 8.5, "description": "Beautiful disaster"},
			"personalityType": "Chaotic Good",
			"groupTraditions": ["monday memes"],
			"collectiveQuirks": ["nobody answers questions"]
		}
	}`

	var b Block[GroupVibe]
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	vibe, ok := b.Completed()
	if !ok {
		t.Fatal("Completed() = false, want true")
	}
	if vibe.ChaosLevel.Rating != 8.5 {
		t.Errorf("chaos rating = %v, want 8.5", vibe.ChaosLevel.Rating)
	}
	if vibe.PersonalityType != "Chaotic Good" {
		t.Errorf("personality = %q", vibe.PersonalityType)
	}
	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !b.AnalyzedAt().Equal(want) {
		t.Errorf("analyzedAt = %v, want %v", b.AnalyzedAt(), want)
	}
}

func TestBlock_DecodeFailedReason(t *testing.T) {
	var b Block[ChatSuperlatives]
	if err := json.Unmarshal([]byte(`{"status":"failed","error":"quota exceeded"}`), &b); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if b.FailureReason() != "quota exceeded" {
		t.Errorf("failure reason = %q, want %q", b.FailureReason(), "quota exceeded")
	}
}

func TestBlock_MissingNumericFieldsDecodeToZero(t *testing.T) {
	payload := `{
		"status": "completed",
		"results": [{"memberId": "Alice", "toxicityScore": 3}]
	}`

	var b Block[[]MemberAnalysis]
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	entries, ok := b.Completed()
	if !ok || len(entries) != 1 {
		t.Fatalf("Completed() = %v entries, ok=%v", len(entries), ok)
	}
	if entries[0].RedFlagScore != 0 {
		t.Errorf("missing redFlagScore = %v, want 0", entries[0].RedFlagScore)
	}
	if entries[0].ToxicityScore != 3 {
		t.Errorf("toxicityScore = %v, want 3", entries[0].ToxicityScore)
	}
}

// =============================================================================
// BLOCK ROUND-TRIP TESTS
// =============================================================================

func TestBlock_RoundTrip(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	original := NewCompletedBlock(ChatSuperlatives{
		Awards: []Award{{Title: "Most Chaotic", Recipient: "Bob", Reason: "3am voice memos"}},
	}, at)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Block[ChatSuperlatives]
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	results, ok := decoded.Completed()
	if !ok {
		t.Fatal("round-trip lost completed status")
	}
	if len(results.Awards) != 1 || results.Awards[0].Recipient != "Bob" {
		t.Errorf("round-trip lost results: %+v", results)
	}
	if !decoded.AnalyzedAt().Equal(at) {
		t.Errorf("round-trip lost analyzedAt: %v", decoded.AnalyzedAt())
	}
}

func TestBlock_AbsentMarshalsToNull(t *testing.T) {
	var b Block[GroupVibe]
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("absent block marshals to %s, want null", data)
	}
}

// =============================================================================
// CHAT RECORD TESTS
// =============================================================================

func TestChatRecord_DecodeFull(t *testing.T) {
	payload := `{
		"id": "chat_42",
		"ownerId": "user-9",
		"platform": "whatsapp",
		"conversationType": "friends",
		"members": ["Alice", "Bob"],
		"messageCount": 1204,
		"status": "processing",
		"createdAt": "2025-05-20T08:00:00Z",
		"analysis": {
			"status": "completed",
			"results": [
				{"memberId": "Alice", "funnyScore": 7, "topicAnalysis": [{"topic": "food", "frequency": 42}]}
			]
		},
		"superlatives": {"status": "pending"}
	}`

	var rec ChatRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if rec.ID != "chat_42" || rec.OwnerID != "user-9" || rec.Platform != "whatsapp" {
		t.Errorf("identity fields wrong: %+v", rec)
	}
	if rec.Status != ChatProcessing {
		t.Errorf("status = %q, want processing", rec.Status)
	}
	if rec.Analysis.Status() != BlockCompleted {
		t.Errorf("analysis status = %v, want completed", rec.Analysis.Status())
	}
	if rec.Superlatives.Status() != BlockPending {
		t.Errorf("superlatives status = %v, want pending", rec.Superlatives.Status())
	}
	if rec.GroupVibe.Status() != BlockAbsent {
		t.Errorf("groupVibe status = %v, want absent", rec.GroupVibe.Status())
	}

	entry, ok := rec.MemberAnalysisFor("Alice")
	if !ok {
		t.Fatal("MemberAnalysisFor(Alice) not found")
	}
	if entry.FunnyScore != 7 {
		t.Errorf("funnyScore = %v, want 7", entry.FunnyScore)
	}
	if _, ok := rec.MemberAnalysisFor("Carol"); ok {
		t.Error("MemberAnalysisFor(Carol) = true, want false")
	}
}

func TestChatRecord_Title(t *testing.T) {
	rec := ChatRecord{ConversationType: "family"}
	if rec.Title() != "family" {
		t.Errorf("Title() = %q", rec.Title())
	}
	rec.ConversationType = ""
	if rec.Title() != "Untitled Chat" {
		t.Errorf("Title() = %q, want Untitled Chat", rec.Title())
	}
}
