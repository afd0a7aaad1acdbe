// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app holds the top-level Bubble Tea model for the chitter TUI.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/morganforge/chitter-tui/internal/api"
	"github.com/morganforge/chitter-tui/internal/auth"
	"github.com/morganforge/chitter-tui/internal/config"
	"github.com/morganforge/chitter-tui/internal/exports"
	"github.com/morganforge/chitter-tui/internal/mirror"
	"github.com/morganforge/chitter-tui/internal/model"
	"github.com/morganforge/chitter-tui/internal/realtime"
	"github.com/morganforge/chitter-tui/internal/storage"
	"github.com/morganforge/chitter-tui/internal/ui/components"
	"github.com/morganforge/chitter-tui/internal/ui/styles"
	"github.com/morganforge/chitter-tui/internal/wizard"
)

// =============================================================================
// SCREENS
// =============================================================================

// Screen identifies which top-level view is active.
type Screen int

const (
	// ScreenWelcome is shown when no credentials are stored.
	ScreenWelcome Screen = iota
	// ScreenDashboard is the mirrored chat list.
	ScreenDashboard
	// ScreenWizard is the new-chat flow.
	ScreenWizard
	// ScreenDetail is one chat's wrapped summary.
	ScreenDetail
)

// =============================================================================
// STREAM INTERFACES
// =============================================================================

// DocStream is a live single-record stream. *realtime.DocSubscription
// satisfies it.
type DocStream interface {
	Snapshots() <-chan *model.ChatRecord
	Unsubscribe()
	Err() error
}

// DocSubscriber opens per-record streams for the detail screen.
type DocSubscriber interface {
	SubscribeChat(ctx context.Context, id string) (DocStream, error)
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the single Bubble Tea model for the whole interface. All state
// lives here and mutates only inside Update; goroutines spawned by commands
// communicate back exclusively through messages.
type Model struct {
	cfg    *config.Config
	logger zerolog.Logger
	theme  *styles.Theme
	keys   KeyMap

	client  *api.Client
	mirror  *mirror.Mirror
	cache   *storage.Cache
	docSubs DocSubscriber
	creds   *auth.Credentials

	screen Screen
	width  int
	height int

	// Transient status line, cleared after a short dwell.
	status    string
	statusSeq int

	// Dashboard.
	header     *components.Header
	statusBar  *components.StatusBar
	filterBar  *components.FilterBar
	card       *components.Card
	selected   int
	conn       components.Conn
	frame      int
	confirm    *components.Confirm
	confirmID  string
	sub        mirror.Subscription
	generation int

	// Wizard.
	session      *wizard.Session
	progress     *wizard.Progress
	submitSeq    int
	stepper      *components.Stepper
	preview      *components.Preview
	optionIdx    int
	files        []exports.File
	fileIdx      int
	memberInput  textinput.Model
	mappingInput textinput.Model
	mappingIdx   int
	mappingEdit  bool
	watcher      *exports.Watcher
	watcherArmed bool

	// Detail.
	leaderboard *components.Leaderboard
	detailID    string
	detail      *model.ChatRecord
	docSub      DocStream
	detailView  viewport.Model
	alert       string
}

// New builds the model. Credentials may be nil; the welcome screen then
// points the user at `chitter login`. The watcher may be nil when the
// exports directory cannot be watched.
func New(cfg *config.Config, logger zerolog.Logger, client *api.Client,
	mir *mirror.Mirror, cache *storage.Cache, docSubs DocSubscriber,
	creds *auth.Credentials, watcher *exports.Watcher) Model {

	theme := styles.NewTheme()

	memberInput := textinput.New()
	memberInput.Placeholder = "add a member and press enter"
	memberInput.CharLimit = 60

	mappingInput := textinput.New()
	mappingInput.Placeholder = "name as it appears in the export"
	mappingInput.CharLimit = 80

	mdl := Model{
		cfg:          cfg,
		logger:       logger,
		theme:        theme,
		keys:         DefaultKeyMap(),
		client:       client,
		mirror:       mir,
		cache:        cache,
		docSubs:      docSubs,
		creds:        creds,
		screen:       ScreenWelcome,
		conn:         components.ConnOffline,
		header:       components.NewHeader(theme),
		statusBar:    components.NewStatusBar(theme),
		filterBar:    components.NewFilterBar(theme),
		card:         components.NewCard(theme),
		stepper:      components.NewStepper(theme),
		preview:      components.NewPreview(theme),
		leaderboard:  components.NewLeaderboard(theme),
		session:      wizard.NewSession(),
		memberInput:  memberInput,
		mappingInput: mappingInput,
		watcher:      watcher,
		detailView:   viewport.New(0, 0),
	}

	if creds != nil {
		mdl.header.SetEmail(creds.Email)
		mdl.statusBar.SetEmail(creds.Email)
		mdl.screen = ScreenDashboard

		// Subscribe before the event loop starts so the mirror is only
		// ever touched from one goroutine. A failed open is not fatal;
		// the cached snapshot carries the dashboard.
		sub, gen, err := mir.SetUser(context.Background(), creds.UserID)
		mdl.generation = gen
		if err != nil {
			logger.Warn().Err(err).Msg("live subscription failed, starting offline")
		} else {
			mdl.sub = sub
		}
	}
	return mdl
}

// Init starts the snapshot pump, loads the offline fallback, and begins
// the badge animation.
func (m Model) Init() tea.Cmd {
	if m.creds == nil {
		return nil
	}
	cmds := []tea.Cmd{
		loadCache(m.cache, m.creds.UserID),
		tickFrames(),
	}
	if m.sub != nil {
		cmds = append(cmds, waitForSnapshot(m.sub, m.generation))
	}
	return tea.Batch(cmds...)
}

// visible returns the filtered records shown on the dashboard.
func (m *Model) visible() []model.ChatRecord {
	return m.mirror.Filtered()
}

// selectedRecord returns the record under the cursor, or nil.
func (m *Model) selectedRecord() *model.ChatRecord {
	recs := m.visible()
	if m.selected < 0 || m.selected >= len(recs) {
		return nil
	}
	return &recs[m.selected]
}

// clampSelection keeps the cursor inside the filtered list after pushes
// and filter changes shrink it.
func (m *Model) clampSelection() {
	n := len(m.visible())
	if n == 0 {
		m.selected = 0
		return
	}
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// setStatus shows a transient message on the status bar.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.status = msg
	m.statusSeq++
	m.statusBar.SetMessage(msg)
	return expireStatus(m.statusSeq)
}

// setAlert shows a transient inline notice on the detail screen.
func (m *Model) setAlert(msg string) tea.Cmd {
	m.alert = msg
	m.statusSeq++
	return expireStatus(m.statusSeq)
}

// refreshStats pushes the mirror summary into the status bar.
func (m *Model) refreshStats() {
	stats := m.mirror.Summarize()
	m.statusBar.SetStats(stats.Total, stats.Processing, stats.UniqueMembers)
	m.statusBar.SetConn(m.conn)
}

// =============================================================================
// REALTIME ADAPTER
// =============================================================================

// RealtimeStreams adapts *realtime.Subscriber to the stream interfaces the
// mirror and the detail screen consume.
type RealtimeStreams struct {
	Subscriber *realtime.Subscriber
}

// SubscribeChats opens the per-owner list stream.
func (r RealtimeStreams) SubscribeChats(ctx context.Context, ownerID string) (mirror.Subscription, error) {
	sub, err := r.Subscriber.SubscribeChats(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// SubscribeChat opens the per-record stream.
func (r RealtimeStreams) SubscribeChat(ctx context.Context, id string) (DocStream, error) {
	sub, err := r.Subscriber.SubscribeChat(ctx, id)
	if err != nil {
		return nil, err
	}
	return sub, nil
}
