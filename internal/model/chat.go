// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat records and analysis.
package model

import "time"

// =============================================================================
// CHAT STATUS
// =============================================================================

// ChatStatus is the aggregate lifecycle state the server reports for a
// record. It exists for coarse affordances only: per-block status is what
// views render from, since each analysis kind completes independently.
type ChatStatus string

const (
	ChatPending    ChatStatus = "pending"
	ChatProcessing ChatStatus = "processing"
	ChatCompleted  ChatStatus = "completed"
	ChatFailed     ChatStatus = "failed"
)

// =============================================================================
// CHAT RECORD
// =============================================================================

// ChatRecord is one uploaded chat and its analysis, as owned by the remote
// store. The local mirror never mutates a ChatRecord: every subscription
// push replaces the mirrored set wholesale, so records are treated as
// immutable snapshots once decoded.
type ChatRecord struct {
	ID               string     `json:"id"`
	OwnerID          string     `json:"ownerId,omitempty"`
	Platform         string     `json:"platform"`
	ConversationType string     `json:"conversationType"`
	Members          []string   `json:"members"`
	ContentPreview   string     `json:"contentPreview,omitempty"`
	MessageCount     int        `json:"messageCount,omitempty"`
	Status           ChatStatus `json:"status,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`

	// Analysis blocks, one per kind. Each carries its own status; absent
	// blocks decode to the zero Block (BlockAbsent).
	Analysis         Block[[]MemberAnalysis] `json:"analysis"`
	Superlatives     Block[ChatSuperlatives] `json:"superlatives"`
	GroupVibe        Block[GroupVibe]        `json:"groupVibe"`
	MemorableMoments Block[MemorableMoments] `json:"memorableMoments"`
}

// Title returns the display name for a record. Records created before the
// wizard gained the type step have no conversationType.
func (c *ChatRecord) Title() string {
	if c.ConversationType == "" {
		return "Untitled Chat"
	}
	return c.ConversationType
}

// MemberCount returns the number of members on the record.
func (c *ChatRecord) MemberCount() int {
	return len(c.Members)
}

// MemberAnalysisFor returns the completed analysis entry for one member by
// id, or false when the member analysis block has not completed or carries
// no entry for that member.
func (c *ChatRecord) MemberAnalysisFor(memberID string) (MemberAnalysis, bool) {
	entries, ok := c.Analysis.Completed()
	if !ok {
		return MemberAnalysis{}, false
	}
	for _, entry := range entries {
		if entry.MemberID == memberID {
			return entry, true
		}
	}
	return MemberAnalysis{}, false
}
