// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app holds the top-level Bubble Tea model for the chitter TUI.
//
// This file defines all Bubble Tea message types used by the interface.
// Messages are organized into the following categories:
//   - Sync: snapshot pushes, subscription lifecycle, cache fallback
//   - Wizard: file picking, submission phases, submission outcome
//   - Detail: per-record live updates, clipboard, export
//   - UI state: transient status line expiry, badge animation ticks
package app

import (
	"time"

	"github.com/morganforge/chitter-tui/internal/exports"
	"github.com/morganforge/chitter-tui/internal/model"
)

// =============================================================================
// SYNC MESSAGES
// =============================================================================

// SnapshotMsg delivers one full record-list push from the live subscription.
// Generation is the mirror generation the subscription was opened under;
// pushes from a released subscription are discarded by the mirror.
type SnapshotMsg struct {
	Generation int
	Records    []model.ChatRecord
}

// SubscriptionClosedMsg signals that the live stream ended. The error, if
// any, is logged and the dashboard falls back to the cached list.
type SubscriptionClosedMsg struct {
	Generation int
	Err        error
}

// CacheLoadedMsg carries the offline snapshot loaded at startup.
type CacheLoadedMsg struct {
	Records  []model.ChatRecord
	SyncedAt time.Time
	Err      error
}

// cacheSavedMsg reports the outcome of persisting a push to the offline
// cache. Failures are logged, never surfaced.
type cacheSavedMsg struct {
	Err error
}

// =============================================================================
// WIZARD MESSAGES
// =============================================================================

// ExportsListMsg carries the candidate export files for the upload step.
type ExportsListMsg struct {
	Files []exports.File
	Err   error
}

// ExportsChangedMsg signals that the watched exports directory changed and
// the file picker should refresh.
type ExportsChangedMsg struct{}

// FileReadMsg carries the contents of the export file the user picked.
type FileReadMsg struct {
	Name     string
	Contents []byte
	Err      error
}

// PhaseTickMsg advances the submission animation by one stage. Seq guards
// against ticks from an abandoned submission.
type PhaseTickMsg struct {
	Seq int
}

// SubmitResultMsg carries the outcome of the upload request. Seq matches
// the submission it belongs to.
type SubmitResultMsg struct {
	Seq    int
	Record *model.ChatRecord
	Err    error
}

// =============================================================================
// DETAIL MESSAGES
// =============================================================================

// DocSubscribedMsg delivers the opened per-record subscription, or the
// open failure. Stored as mirror-agnostic state on the detail screen.
type DocSubscribedMsg struct {
	ID  string
	Sub DocStream
	Err error
}

// DocSnapshotMsg delivers one per-record push. A nil Record means the
// document was deleted server-side.
type DocSnapshotMsg struct {
	ID     string
	Record *model.ChatRecord
}

// DocClosedMsg signals that the per-record stream ended.
type DocClosedMsg struct {
	ID  string
	Err error
}

// CopyResultMsg reports the clipboard write outcome. Failures show an
// inline alert, never an error screen.
type CopyResultMsg struct {
	Err error
}

// ExportDoneMsg reports where the markdown export landed.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// =============================================================================
// UI STATE MESSAGES
// =============================================================================

// statusExpireMsg clears the transient status line. Seq guards against
// clearing a newer message.
type statusExpireMsg struct {
	Seq int
}

// frameTickMsg drives the processing-badge animation on the dashboard.
type frameTickMsg time.Time
