// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app holds the top-level Bubble Tea model for the chitter TUI.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/chitter-tui/internal/ui/components"
	"github.com/morganforge/chitter-tui/internal/wizard"
)

// Update is the single event loop. Every suspension point in the interface
// is a command; this function is the only writer of model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)

	case SnapshotMsg:
		return m.handleSnapshot(msg)
	case SubscriptionClosedMsg:
		return m.handleSubscriptionClosed(msg)
	case CacheLoadedMsg:
		return m.handleCacheLoaded(msg)
	case cacheSavedMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("cache write failed")
		}
		return m, nil

	case ExportsListMsg:
		return m.handleExportsList(msg)
	case ExportsChangedMsg:
		return m, tea.Batch(listExports(m.exportsDir()), waitForExportChange(m.watcher))
	case FileReadMsg:
		return m.handleFileRead(msg)
	case PhaseTickMsg:
		return m.handlePhaseTick(msg)
	case SubmitResultMsg:
		return m.handleSubmitResult(msg)

	case DocSubscribedMsg:
		return m.handleDocSubscribed(msg)
	case DocSnapshotMsg:
		return m.handleDocSnapshot(msg)
	case DocClosedMsg:
		if msg.ID == m.detailID {
			if msg.Err != nil {
				m.logger.Warn().Err(msg.Err).Str("chat_id", msg.ID).Msg("record stream closed")
			}
			m.docSub = nil
		}
		return m, nil
	case CopyResultMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("clipboard write failed")
			cmd := m.setAlert("Couldn't reach the clipboard")
			return m, cmd
		}
		cmd := m.setAlert("Share link copied")
		return m, cmd
	case ExportDoneMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("export failed")
			cmd := m.setAlert("Export failed, see the log")
			return m, cmd
		}
		cmd := m.setAlert("Saved " + msg.Path)
		return m, cmd

	case statusExpireMsg:
		if msg.Seq == m.statusSeq {
			m.status = ""
			m.alert = ""
			m.statusBar.SetMessage("")
		}
		return m, nil
	case frameTickMsg:
		m.frame++
		return m, tickFrames()
	}

	// Spinner ticks and other component-owned messages fall through here.
	return m.updateComponents(msg)
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.header.SetWidth(msg.Width)
	m.statusBar.SetWidth(msg.Width)
	m.filterBar.SetWidth(msg.Width)

	m.detailView.Width = max(msg.Width-4, 20)
	m.detailView.Height = max(msg.Height-7, 5)
	if m.screen == ScreenDetail {
		m.detailView.SetContent(m.renderDetailContent())
	}
	return m, nil
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The delete confirmation traps all input while open.
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}

	switch m.screen {
	case ScreenWelcome:
		if key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Enter) {
			return m, tea.Quit
		}
		return m, nil
	case ScreenDashboard:
		return m.handleDashboardKey(msg)
	case ScreenWizard:
		return m.handleWizardKey(msg)
	case ScreenDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "h", "l", "tab":
		m.confirm.Toggle()
		return m, nil
	case "enter":
		confirmed := m.confirm.Confirmed()
		id := m.confirmID
		m.confirm = nil
		m.confirmID = ""
		if !confirmed {
			return m, nil
		}
		// Fire-and-forget: the record disappears with the next push.
		m.mirror.Delete(context.Background(), id)
		cmd := m.setStatus("Delete requested")
		return m, cmd
	case "esc", "q":
		m.confirm = nil
		m.confirmID = ""
		return m, nil
	}
	return m, nil
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterBar.Focused() {
		switch msg.String() {
		case "enter", "esc":
			m.filterBar.Blur()
			return m, nil
		}
		cmd := m.filterBar.Update(msg)
		m.mirror.SetFilter(m.filterBar.Filter())
		m.clampSelection()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.visible())-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		return m.openDetail()
	case key.Matches(msg, m.keys.NewChat):
		return m.openWizard()
	case key.Matches(msg, m.keys.Search):
		return m, m.filterBar.Focus()
	case key.Matches(msg, m.keys.Platform):
		m.filterBar.CyclePlatform()
		m.mirror.SetFilter(m.filterBar.Filter())
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.Type):
		m.filterBar.CycleType()
		m.mirror.SetFilter(m.filterBar.Filter())
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		return m.openDeleteConfirm()
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		return m.closeDetail()
	case key.Matches(msg, m.keys.Copy):
		if m.detailID != "" {
			return m, copyShareLink(m.detailID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Export):
		if m.detail != nil {
			return m, exportMarkdown(*m.detail, ".")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailView, cmd = m.detailView.Update(msg)
	return m, cmd
}

// =============================================================================
// SCREEN TRANSITIONS
// =============================================================================

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	rec := m.selectedRecord()
	if rec == nil {
		return m, nil
	}
	clone := *rec
	m.detail = &clone
	m.detailID = rec.ID
	m.alert = ""
	m.screen = ScreenDetail
	m.detailView.SetContent(m.renderDetailContent())
	m.detailView.GotoTop()
	return m, subscribeDoc(m.docSubs, rec.ID)
}

func (m Model) closeDetail() (tea.Model, tea.Cmd) {
	if m.docSub != nil {
		m.docSub.Unsubscribe()
		m.docSub = nil
	}
	m.detail = nil
	m.detailID = ""
	m.alert = ""
	m.screen = ScreenDashboard
	return m, nil
}

func (m Model) openDeleteConfirm() (tea.Model, tea.Cmd) {
	rec := m.selectedRecord()
	if rec == nil {
		return m, nil
	}
	m.confirm = components.NewConfirm(m.theme, "Delete this chat?",
		rec.Title()+" and its analysis will be gone for good.")
	m.confirmID = rec.ID
	return m, nil
}

func (m Model) openWizard() (tea.Model, tea.Cmd) {
	m.session.Reset()
	m.optionIdx = 0
	m.fileIdx = 0
	m.memberInput.Reset()
	m.mappingInput.Reset()
	m.mappingIdx = 0
	m.mappingEdit = false
	m.screen = ScreenWizard

	cmds := []tea.Cmd{listExports(m.exportsDir())}
	if m.watcher != nil && !m.watcherArmed {
		m.watcherArmed = true
		cmds = append(cmds, waitForExportChange(m.watcher))
	}
	return m, tea.Batch(cmds...)
}

// exportsDir resolves the directory the upload step scans.
func (m *Model) exportsDir() string {
	dir, err := m.cfg.ExportDir()
	if err != nil {
		m.logger.Warn().Err(err).Msg("exports directory unavailable")
		return "."
	}
	return dir
}

// =============================================================================
// SYNC HANDLERS
// =============================================================================

func (m Model) handleSnapshot(msg SnapshotMsg) (tea.Model, tea.Cmd) {
	applied := m.mirror.Apply(msg.Generation, msg.Records)
	cmds := []tea.Cmd{}
	if m.sub != nil {
		cmds = append(cmds, waitForSnapshot(m.sub, m.generation))
	}
	if applied {
		m.conn = components.ConnLive
		m.refreshStats()
		m.clampSelection()
		if m.creds != nil {
			cmds = append(cmds, saveCache(m.cache, m.creds.UserID, m.mirror.Records()))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleSubscriptionClosed(msg SubscriptionClosedMsg) (tea.Model, tea.Cmd) {
	if msg.Generation != m.generation {
		return m, nil
	}
	if msg.Err != nil {
		m.logger.Warn().Err(msg.Err).Msg("live subscription ended")
	}
	m.sub = nil
	// Last known list keeps rendering; no automatic reconnect.
	m.conn = components.ConnCached
	m.refreshStats()
	return m, nil
}

func (m Model) handleCacheLoaded(msg CacheLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Debug().Err(msg.Err).Msg("cache load failed")
		return m, nil
	}
	// A live push that raced ahead wins over the cache.
	if m.conn == components.ConnLive || len(m.mirror.Records()) > 0 {
		return m, nil
	}
	if len(msg.Records) == 0 {
		return m, nil
	}
	m.mirror.Apply(m.generation, msg.Records)
	if m.conn == components.ConnOffline {
		m.conn = components.ConnCached
	}
	m.refreshStats()
	m.clampSelection()
	return m, nil
}

// =============================================================================
// DETAIL HANDLERS
// =============================================================================

func (m Model) handleDocSubscribed(msg DocSubscribedMsg) (tea.Model, tea.Cmd) {
	if msg.ID != m.detailID {
		// User already backed out; release the stream.
		if msg.Sub != nil {
			msg.Sub.Unsubscribe()
		}
		return m, nil
	}
	if msg.Err != nil {
		m.logger.Warn().Err(msg.Err).Str("chat_id", msg.ID).Msg("record subscription failed")
		cmd := m.setAlert("Live updates unavailable")
		return m, cmd
	}
	if msg.Sub == nil {
		return m, nil
	}
	m.docSub = msg.Sub
	return m, waitForDocSnapshot(m.docSub, msg.ID)
}

func (m Model) handleDocSnapshot(msg DocSnapshotMsg) (tea.Model, tea.Cmd) {
	if msg.ID != m.detailID {
		return m, nil
	}
	if msg.Record == nil {
		// Deleted server-side while open.
		mdl, _ := m.closeDetail()
		next := mdl.(Model)
		cmd := next.setStatus("This chat was deleted")
		return next, cmd
	}
	m.detail = msg.Record
	m.detailView.SetContent(m.renderDetailContent())
	if m.docSub == nil {
		return m, nil
	}
	return m, waitForDocSnapshot(m.docSub, msg.ID)
}

// =============================================================================
// WIZARD HANDLERS
// =============================================================================

func (m Model) handleWizardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// One-way door: once submitting, only the phases decide when to leave.
	if m.progress != nil {
		return m, nil
	}

	if key.Matches(msg, m.keys.Back) {
		if m.mappingEdit {
			m.mappingEdit = false
			m.mappingInput.Blur()
			m.mappingInput.Reset()
			return m, nil
		}
		if m.session.Step() == wizard.StepPlatform {
			m.session.Reset()
			m.screen = ScreenDashboard
			return m, nil
		}
		m.session.Back()
		m.syncWizardFocus()
		return m, nil
	}

	switch m.session.Step() {
	case wizard.StepPlatform:
		return m.handleOptionKey(msg, wizard.Platforms(), m.session.SelectPlatform)
	case wizard.StepConversationType:
		return m.handleOptionKey(msg, wizard.ConversationTypes(), m.session.SelectType)
	case wizard.StepUpload:
		return m.handleUploadKey(msg)
	case wizard.StepMembers:
		return m.handleMembersKey(msg)
	case wizard.StepNameMapping:
		return m.handleMappingKey(msg)
	}
	return m, nil
}

func (m Model) handleOptionKey(msg tea.KeyMsg, opts []wizard.Option, pick func(string)) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.optionIdx > 0 {
			m.optionIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.optionIdx < len(opts)-1 {
			m.optionIdx++
		}
	case key.Matches(msg, m.keys.Enter):
		pick(opts[m.optionIdx].Value)
		m.optionIdx = 0
		m.syncWizardFocus()
	}
	return m, nil
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.fileIdx > 0 {
			m.fileIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.fileIdx < len(m.files)-1 {
			m.fileIdx++
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, listExports(m.exportsDir())
	case key.Matches(msg, m.keys.Enter):
		if m.fileIdx >= 0 && m.fileIdx < len(m.files) {
			return m, readExportFile(m.files[m.fileIdx])
		}
	}
	return m, nil
}

func (m Model) handleMembersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := m.memberInput.Value()
		if name == "" {
			// Empty enter moves on; members are optional.
			m.session.Next()
			m.syncWizardFocus()
			return m, nil
		}
		m.session.AddMember(name)
		m.memberInput.Reset()
		return m, nil
	case "ctrl+d":
		members := m.session.Draft().Members
		if len(members) > 0 {
			m.session.RemoveMember(members[len(members)-1])
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.memberInput, cmd = m.memberInput.Update(msg)
	return m, cmd
}

func (m Model) handleMappingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	members := m.session.Draft().Members

	if m.mappingEdit {
		if msg.String() == "enter" {
			if m.mappingIdx >= 0 && m.mappingIdx < len(members) {
				m.session.SetNameMapping(members[m.mappingIdx], m.mappingInput.Value())
			}
			m.mappingEdit = false
			m.mappingInput.Blur()
			m.mappingInput.Reset()
			return m, nil
		}
		var cmd tea.Cmd
		m.mappingInput, cmd = m.mappingInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.mappingIdx > 0 {
			m.mappingIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.mappingIdx < len(members)-1 {
			m.mappingIdx++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.mappingIdx >= 0 && m.mappingIdx < len(members) {
			draft := m.session.Draft()
			m.mappingInput.SetValue(draft.NameMapping[members[m.mappingIdx]])
			m.mappingInput.CursorEnd()
			m.mappingEdit = true
			return m, m.mappingInput.Focus()
		}
	case key.Matches(msg, m.keys.Submit):
		return m.beginSubmit()
	}
	return m, nil
}

// syncWizardFocus gives keyboard focus to the input the current step owns.
func (m *Model) syncWizardFocus() {
	m.memberInput.Blur()
	if m.session.Step() == wizard.StepMembers {
		m.memberInput.Focus()
	}
}

func (m Model) beginSubmit() (tea.Model, tea.Cmd) {
	draft, ok := m.session.BeginSubmit()
	if !ok {
		return m, nil
	}
	m.progress = wizard.NewProgress()
	m.submitSeq++
	return m, tea.Batch(
		phaseTick(m.submitSeq),
		submitChat(m.client, draft, m.submitSeq),
	)
}

func (m Model) handleExportsList(msg ExportsListMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Debug().Err(msg.Err).Msg("export scan failed")
		m.files = nil
		m.fileIdx = 0
		return m, nil
	}
	m.files = msg.Files
	if m.fileIdx >= len(m.files) {
		m.fileIdx = 0
	}
	return m, nil
}

func (m Model) handleFileRead(msg FileReadMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn().Err(msg.Err).Str("file", msg.Name).Msg("export read failed")
		cmd := m.setStatus("Couldn't read " + msg.Name)
		return m, cmd
	}
	m.session.AttachFile(msg.Name, msg.Contents)
	m.syncWizardFocus()
	return m, nil
}

func (m Model) handlePhaseTick(msg PhaseTickMsg) (tea.Model, tea.Cmd) {
	if m.progress == nil || msg.Seq != m.submitSeq {
		return m, nil
	}
	m.progress.AdvancePhase()
	if m.progress.Done() {
		return m.finishSubmission()
	}
	return m, phaseTick(m.submitSeq)
}

func (m Model) handleSubmitResult(msg SubmitResultMsg) (tea.Model, tea.Cmd) {
	if m.progress == nil || msg.Seq != m.submitSeq {
		return m, nil
	}
	m.progress.Resolve(msg.Err)
	if m.progress.Done() {
		return m.finishSubmission()
	}
	return m, nil
}

// finishSubmission closes the wizard once animation and request have both
// resolved. A failed request is logged and otherwise swallowed; the record
// simply never shows up, which mirrors the hosted client's behavior.
func (m Model) finishSubmission() (tea.Model, tea.Cmd) {
	if err := m.progress.Err(); err != nil {
		m.logger.Warn().Err(err).Msg("chat submission failed")
	}
	m.progress = nil
	m.session.Reset()
	m.memberInput.Reset()
	m.mappingInput.Reset()
	m.optionIdx = 0
	m.mappingIdx = 0
	m.mappingEdit = false
	m.screen = ScreenDashboard
	cmd := m.setStatus("Chat sent for analysis")
	return m, cmd
}

// =============================================================================
// COMPONENT FALLTHROUGH
// =============================================================================

// updateComponents forwards unrecognized messages to the focused inputs so
// bubbles-internal ticks keep flowing.
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.filterBar.Focused() {
		cmds = append(cmds, m.filterBar.Update(msg))
	}
	var cmd tea.Cmd
	m.memberInput, cmd = m.memberInput.Update(msg)
	cmds = append(cmds, cmd)
	m.mappingInput, cmd = m.mappingInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}
