// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mirror keeps a local copy of the signed-in user's chat records in
// sync with the real-time store. The mirror is the only owner of the list:
// creations and deletions go to the server and come back through the
// subscription. Every push replaces the list wholesale; there is no
// incremental patching and no stale-write protection beyond last push wins.
package mirror

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/morganforge/chitter-tui/internal/model"
	"github.com/morganforge/chitter-tui/internal/util"
)

// =============================================================================
// FILTER
// =============================================================================

// FilterAll is the wildcard value for the platform and type filters.
const FilterAll = "all"

// Filter narrows the visible records. Zero value shows everything.
type Filter struct {
	Search   string
	Platform string
	Type     string
}

// Matches reports whether a record passes the filter: search text matches
// the conversation type or any member (case-insensitive substring), AND the
// platform matches, AND the type matches.
func (f Filter) Matches(rec *model.ChatRecord) bool {
	if f.Platform != "" && f.Platform != FilterAll && rec.Platform != f.Platform {
		return false
	}
	if f.Type != "" && f.Type != FilterAll && rec.ConversationType != f.Type {
		return false
	}
	if f.Search == "" {
		return true
	}
	if util.ContainsFold(rec.ConversationType, f.Search) {
		return true
	}
	for _, member := range rec.Members {
		if util.ContainsFold(member, f.Search) {
			return true
		}
	}
	return false
}

// FilterPlatforms lists the platform filter choices shown on the dashboard.
// Wire values, not display labels: Matches compares them to record fields
// exactly.
func FilterPlatforms() []string {
	return []string{FilterAll, "whatsapp", "messenger", "discord"}
}

// FilterTypes lists the conversation type filter choices.
func FilterTypes() []string {
	return []string{FilterAll, "significant_other", "friends", "family"}
}

// =============================================================================
// MIRROR
// =============================================================================

// Deleter issues the fire-and-forget removal request.
type Deleter interface {
	DeleteChat(ctx context.Context, id string) error
}

// Subscription is a live record stream. *realtime.Subscription satisfies it.
type Subscription interface {
	Snapshots() <-chan []model.ChatRecord
	Unsubscribe()
	Err() error
}

// ChatSubscriber opens the per-owner record stream.
type ChatSubscriber interface {
	SubscribeChats(ctx context.Context, ownerID string) (Subscription, error)
}

// Mirror holds the synchronized record list for one user at a time.
// Not safe for concurrent use; it lives on the single UI event loop, with
// pushes delivered to it as messages.
type Mirror struct {
	subscriber ChatSubscriber
	deleter    Deleter
	logger     zerolog.Logger

	records []model.ChatRecord
	filter  Filter

	// generation identifies the current user-session. Pushes stamped with
	// an older generation belong to a released subscription and must not
	// touch the list (cross-tenant clobber guard).
	generation int
	sub        Subscription
	ownerID    string
}

// New creates an empty mirror.
func New(subscriber ChatSubscriber, deleter Deleter, logger zerolog.Logger) *Mirror {
	return &Mirror{subscriber: subscriber, deleter: deleter, logger: logger}
}

// Records returns the current mirrored list.
func (m *Mirror) Records() []model.ChatRecord { return m.records }

// OwnerID returns the user the live subscription is scoped to, or "".
func (m *Mirror) OwnerID() string { return m.ownerID }

// Generation returns the stamp for the current user-session. Snapshot
// messages must carry the generation that was current when their
// subscription was opened.
func (m *Mirror) Generation() int { return m.generation }

// SetUser switches the mirror to a new user: the previous subscription is
// released first, the list is cleared, and a fresh subscription is opened.
// An empty ownerID just signs the mirror out. Returns the new subscription
// (nil when signed out) and its generation stamp.
func (m *Mirror) SetUser(ctx context.Context, ownerID string) (Subscription, int, error) {
	m.release()
	m.generation++
	m.records = nil
	m.ownerID = ownerID

	if ownerID == "" {
		return nil, m.generation, nil
	}

	sub, err := m.subscriber.SubscribeChats(ctx, ownerID)
	if err != nil {
		m.ownerID = ""
		return nil, m.generation, err
	}
	m.sub = sub
	return sub, m.generation, nil
}

// Close releases the live subscription, if any.
func (m *Mirror) Close() {
	m.release()
	m.generation++
	m.records = nil
	m.ownerID = ""
}

func (m *Mirror) release() {
	if m.sub != nil {
		m.sub.Unsubscribe()
		m.sub = nil
	}
}

// Apply replaces the list with a pushed snapshot. Pushes from a released
// subscription are discarded by generation. Null records in the push decode
// to zero values; those are dropped before storing.
func (m *Mirror) Apply(generation int, records []model.ChatRecord) bool {
	if generation != m.generation {
		m.logger.Debug().
			Int("push_generation", generation).
			Int("current_generation", m.generation).
			Msg("discarding snapshot from released subscription")
		return false
	}
	next := make([]model.ChatRecord, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		next = append(next, rec)
	}
	m.records = next
	return true
}

// SetFilter replaces the active filter.
func (m *Mirror) SetFilter(f Filter) { m.filter = f }

// Filter returns the active filter.
func (m *Mirror) Filter() Filter { return m.filter }

// Filtered returns the records passing the active filter, in mirror order.
func (m *Mirror) Filtered() []model.ChatRecord {
	out := make([]model.ChatRecord, 0, len(m.records))
	for i := range m.records {
		if m.filter.Matches(&m.records[i]) {
			out = append(out, m.records[i])
		}
	}
	return out
}

// Delete requests removal of a record. Fire-and-forget: the local list is
// not touched, the record disappears when the next push arrives without it.
// A push already in flight may transiently show the record again; that gap
// is accepted, last push wins.
func (m *Mirror) Delete(ctx context.Context, id string) {
	if m.deleter == nil {
		return
	}
	go func() {
		if err := m.deleter.DeleteChat(ctx, id); err != nil {
			m.logger.Warn().Err(err).Str("chat_id", id).Msg("delete request failed")
		}
	}()
}

// =============================================================================
// QUICK STATS
// =============================================================================

// Stats summarizes the mirrored list for the dashboard header.
type Stats struct {
	Total         int
	Processing    int
	UniqueMembers int
}

// Summarize computes dashboard stats over the full (unfiltered) mirror.
func (m *Mirror) Summarize() Stats {
	stats := Stats{Total: len(m.records)}
	members := make(map[string]bool)
	for i := range m.records {
		rec := &m.records[i]
		if rec.Analysis.Status() == model.BlockProcessing || rec.Status == model.ChatProcessing {
			stats.Processing++
		}
		for _, member := range rec.Members {
			members[member] = true
		}
	}
	stats.UniqueMembers = len(members)
	return stats
}
