// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app holds the top-level Bubble Tea model for the chitter TUI.
package app

import (
	"context"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/chitter-tui/internal/api"
	"github.com/morganforge/chitter-tui/internal/export"
	"github.com/morganforge/chitter-tui/internal/exports"
	"github.com/morganforge/chitter-tui/internal/mirror"
	"github.com/morganforge/chitter-tui/internal/model"
	"github.com/morganforge/chitter-tui/internal/storage"
	"github.com/morganforge/chitter-tui/internal/wizard"
)

// ShareLinkBase is the public wrapped-summary URL prefix.
const ShareLinkBase = "https://chitterchatter.app/wrapped/"

// statusDwell is how long a transient status line stays visible.
const statusDwell = 4 * time.Second

// frameInterval drives the processing-badge animation.
const frameInterval = 125 * time.Millisecond

// submitTimeout bounds the upload request. Generous: exports can be large.
const submitTimeout = 2 * time.Minute

// =============================================================================
// SYNC COMMANDS
// =============================================================================

// waitForSnapshot blocks on the next push from the live subscription. The
// update loop re-issues it after every delivery, so exactly one receiver
// is outstanding at a time.
func waitForSnapshot(sub mirror.Subscription, generation int) tea.Cmd {
	return func() tea.Msg {
		records, ok := <-sub.Snapshots()
		if !ok {
			return SubscriptionClosedMsg{Generation: generation, Err: sub.Err()}
		}
		return SnapshotMsg{Generation: generation, Records: records}
	}
}

// loadCache reads the offline snapshot for the owner.
func loadCache(cache *storage.Cache, ownerID string) tea.Cmd {
	return func() tea.Msg {
		if cache == nil {
			return CacheLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		records, err := cache.Load(ctx, ownerID)
		if err != nil {
			return CacheLoadedMsg{Err: err}
		}
		syncedAt, _ := cache.SyncedAt(ctx, ownerID)
		return CacheLoadedMsg{Records: records, SyncedAt: syncedAt}
	}
}

// saveCache persists a push so the next launch renders instantly.
func saveCache(cache *storage.Cache, ownerID string, records []model.ChatRecord) tea.Cmd {
	return func() tea.Msg {
		if cache == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return cacheSavedMsg{Err: cache.Replace(ctx, ownerID, records)}
	}
}

// =============================================================================
// WIZARD COMMANDS
// =============================================================================

// listExports scans the exports directory for candidate files.
func listExports(dir string) tea.Cmd {
	return func() tea.Msg {
		files, err := exports.List(dir)
		return ExportsListMsg{Files: files, Err: err}
	}
}

// waitForExportChange blocks on the next debounced directory event.
func waitForExportChange(w *exports.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Changed(); !ok {
			return nil
		}
		return ExportsChangedMsg{}
	}
}

// readExportFile loads the picked file eagerly for the preview.
func readExportFile(file exports.File) tea.Cmd {
	return func() tea.Msg {
		contents, err := os.ReadFile(file.Path)
		return FileReadMsg{Name: file.Name, Contents: contents, Err: err}
	}
}

// phaseTick schedules the next submission stage after the fixed dwell.
func phaseTick(seq int) tea.Cmd {
	return tea.Tick(wizard.PhaseDwell, func(time.Time) tea.Msg {
		return PhaseTickMsg{Seq: seq}
	})
}

// submitChat uploads the draft. The result resolves independently of the
// phase animation; the wizard closes only when both have finished.
func submitChat(client *api.Client, draft wizard.Draft, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		sub := api.Submission{
			Platform:         draft.Platform,
			ConversationType: draft.ConversationType,
			Members:          draft.Members,
		}
		if draft.Source != nil {
			sub.FileName = draft.Source.Name
			sub.FileContents = draft.Source.Contents
		}
		rec, err := client.SubmitChat(ctx, sub)
		return SubmitResultMsg{Seq: seq, Record: rec, Err: err}
	}
}

// =============================================================================
// DETAIL COMMANDS
// =============================================================================

// subscribeDoc opens the per-record stream for the detail screen.
func subscribeDoc(subs DocSubscriber, id string) tea.Cmd {
	return func() tea.Msg {
		if subs == nil {
			return DocSubscribedMsg{ID: id}
		}
		sub, err := subs.SubscribeChat(context.Background(), id)
		return DocSubscribedMsg{ID: id, Sub: sub, Err: err}
	}
}

// waitForDocSnapshot blocks on the next per-record push.
func waitForDocSnapshot(sub DocStream, id string) tea.Cmd {
	return func() tea.Msg {
		rec, ok := <-sub.Snapshots()
		if !ok {
			return DocClosedMsg{ID: id, Err: sub.Err()}
		}
		return DocSnapshotMsg{ID: id, Record: rec}
	}
}

// copyShareLink writes the public wrapped URL to the system clipboard.
func copyShareLink(id string) tea.Cmd {
	return func() tea.Msg {
		return CopyResultMsg{Err: clipboard.WriteAll(ShareLinkBase + id)}
	}
}

// exportMarkdown writes the wrapped summary to a markdown file in outDir.
func exportMarkdown(rec model.ChatRecord, outDir string) tea.Cmd {
	return func() tea.Msg {
		opts := export.DefaultOptions()
		opts.OutputDir = outDir
		path, err := export.ExportToFile(&rec, export.NewMarkdownExporter(opts), opts)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// =============================================================================
// UI STATE COMMANDS
// =============================================================================

// expireStatus clears the transient status line after its dwell.
func expireStatus(seq int) tea.Cmd {
	return tea.Tick(statusDwell, func(time.Time) tea.Msg {
		return statusExpireMsg{Seq: seq}
	})
}

// tickFrames advances the processing-badge animation.
func tickFrames() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}
