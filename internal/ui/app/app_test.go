// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/morganforge/chitter-tui/internal/api"
	"github.com/morganforge/chitter-tui/internal/auth"
	"github.com/morganforge/chitter-tui/internal/config"
	"github.com/morganforge/chitter-tui/internal/mirror"
	"github.com/morganforge/chitter-tui/internal/model"
	"github.com/morganforge/chitter-tui/internal/ui/components"
	"github.com/morganforge/chitter-tui/internal/wizard"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeSub struct {
	ch     chan []model.ChatRecord
	closed bool
}

func newFakeSub() *fakeSub {
	return &fakeSub{ch: make(chan []model.ChatRecord, 4)}
}

func (f *fakeSub) Snapshots() <-chan []model.ChatRecord { return f.ch }
func (f *fakeSub) Unsubscribe() {
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}
func (f *fakeSub) Err() error { return nil }

type fakeSubscriber struct {
	sub *fakeSub
	err error
}

func (f *fakeSubscriber) SubscribeChats(ctx context.Context, ownerID string) (mirror.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

type fakeDeleter struct {
	deleted chan string
}

func (f *fakeDeleter) DeleteChat(ctx context.Context, id string) error {
	f.deleted <- id
	return nil
}

type fakeDocStream struct {
	ch chan *model.ChatRecord
}

func (f *fakeDocStream) Snapshots() <-chan *model.ChatRecord { return f.ch }
func (f *fakeDocStream) Unsubscribe()                        {}
func (f *fakeDocStream) Err() error                          { return nil }

type fakeDocSubscriber struct {
	stream *fakeDocStream
}

func (f *fakeDocSubscriber) SubscribeChat(ctx context.Context, id string) (DocStream, error) {
	if f.stream == nil {
		return nil, errors.New("no stream")
	}
	return f.stream, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func testCreds() *auth.Credentials {
	return &auth.Credentials{UserID: "user-1", Email: "sam@example.com", Token: "tok"}
}

func newTestModel(t *testing.T) (Model, *fakeSub, *fakeDeleter) {
	t.Helper()
	sub := newFakeSub()
	deleter := &fakeDeleter{deleted: make(chan string, 1)}
	mir := mirror.New(&fakeSubscriber{sub: sub}, deleter, zerolog.Nop())
	cfg := config.Default()
	client := api.NewClient("http://127.0.0.1:9")
	m := New(cfg, zerolog.Nop(), client, mir, nil, &fakeDocSubscriber{}, testCreds(), nil)
	return m, sub, deleter
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 32})
	return m
}

func records(ids ...string) []model.ChatRecord {
	out := make([]model.ChatRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.ChatRecord{
			ID:               id,
			Platform:         "whatsapp",
			ConversationType: "friends",
			Members:          []string{"Alice", "Bob"},
		})
	}
	return out
}

func completedRecord(t *testing.T) *model.ChatRecord {
	t.Helper()
	raw := `{
		"id": "chat-1", "platform": "whatsapp", "conversationType": "friends",
		"members": ["Alice", "Bob"], "messageCount": 120,
		"createdAt": "2025-03-14T10:00:00Z",
		"analysis": {"status": "completed", "results": [
			{"memberId": "Alice", "redFlagScore": 7, "toxicityScore": 2,
			 "funnyScore": 9, "cringeScore": 1, "redFlagReasons": ["triple texts"],
			 "funnyMoments": ["the duck incident"]},
			{"memberId": "Bob", "redFlagScore": 2, "toxicityScore": 1,
			 "funnyScore": 4, "cringeScore": 8, "cringeMoments": ["reply all"]}
		]},
		"superlatives": {"status": "completed", "results": {"awards": [
			{"title": "Most Chaotic", "recipient": "Alice", "reason": "always"}
		]}},
		"groupVibe": {"status": "completed", "results": {
			"chaosLevel": {"rating": 8, "description": "unhinged"},
			"personalityType": "Feral Book Club"
		}}
	}`
	var rec model.ChatRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	return &rec
}

// =============================================================================
// SCREENS AND SYNC
// =============================================================================

func TestNewWithoutCredentialsShowsWelcome(t *testing.T) {
	mir := mirror.New(&fakeSubscriber{sub: newFakeSub()}, nil, zerolog.Nop())
	m := New(config.Default(), zerolog.Nop(), api.NewClient(""), mir, nil, nil, nil, nil)

	if m.screen != ScreenWelcome {
		t.Errorf("screen = %v, want welcome", m.screen)
	}
	m = sized(t, m)
	view := m.View()
	if !strings.Contains(view, "chitter login") {
		t.Errorf("welcome view should point at chitter login:\n%s", view)
	}
}

func TestNewWithCredentialsStartsOnDashboard(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.screen != ScreenDashboard {
		t.Errorf("screen = %v, want dashboard", m.screen)
	}
	if m.mirror.OwnerID() != "user-1" {
		t.Errorf("mirror owner = %q, want user-1", m.mirror.OwnerID())
	}
}

func TestSnapshotGoesLive(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)

	m, cmd := apply(t, m, SnapshotMsg{Generation: m.generation, Records: records("a", "b")})
	if m.conn != components.ConnLive {
		t.Errorf("conn = %v, want live", m.conn)
	}
	if len(m.visible()) != 2 {
		t.Errorf("visible = %d, want 2", len(m.visible()))
	}
	if cmd == nil {
		t.Error("expected the snapshot pump to be re-armed")
	}
}

func TestStaleSnapshotDiscarded(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)

	m, _ = apply(t, m, SnapshotMsg{Generation: m.generation - 1, Records: records("stale")})
	if len(m.visible()) != 0 {
		t.Errorf("stale push should not land, got %d records", len(m.visible()))
	}
}

func TestCacheLoadedOnlyFillsEmptyMirror(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)

	m, _ = apply(t, m, CacheLoadedMsg{Records: records("cached")})
	if len(m.visible()) != 1 {
		t.Fatalf("cache should fill the empty mirror, got %d", len(m.visible()))
	}
	if m.conn.String() != "CACHED" {
		t.Errorf("conn = %s, want CACHED", m.conn)
	}

	// A live push wins; a late cache load must not clobber it.
	m, _ = apply(t, m, SnapshotMsg{Generation: m.generation, Records: records("live-1", "live-2")})
	m, _ = apply(t, m, CacheLoadedMsg{Records: records("cached")})
	if len(m.visible()) != 2 {
		t.Errorf("late cache load clobbered the live list, got %d", len(m.visible()))
	}
}

func TestSubscriptionClosedFallsBackToCached(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)
	m, _ = apply(t, m, SnapshotMsg{Generation: m.generation, Records: records("a")})

	m, _ = apply(t, m, SubscriptionClosedMsg{Generation: m.generation, Err: errors.New("stream died")})
	if m.conn.String() != "CACHED" {
		t.Errorf("conn = %s, want CACHED", m.conn)
	}
	if len(m.visible()) != 1 {
		t.Errorf("last known list should keep rendering, got %d", len(m.visible()))
	}
}

// =============================================================================
// DASHBOARD KEYS
// =============================================================================

func TestSelectionMovesAndClamps(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)
	m, _ = apply(t, m, SnapshotMsg{Generation: m.generation, Records: records("a", "b", "c")})

	m, _ = apply(t, m, keyRune('j'))
	m, _ = apply(t, m, keyRune('j'))
	if m.selected != 2 {
		t.Errorf("selected = %d, want 2", m.selected)
	}
	m, _ = apply(t, m, keyRune('j'))
	if m.selected != 2 {
		t.Errorf("selection should clamp at the end, got %d", m.selected)
	}

	// Shrinking push pulls the cursor back in range.
	m, _ = apply(t, m, SnapshotMsg{Generation: m.generation, Records: records("a")})
	if m.selected != 0 {
		t.Errorf("selected = %d after shrink, want 0", m.selected)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, _, deleter := newTestModel(t)
	m = sized(t, m)
	m, _ = apply(t, m, SnapshotMsg{Generation: m.generation, Records: records("doomed")})

	m, _ = apply(t, m, keyRune('d'))
	if m.confirm == nil {
		t.Fatal("delete should open the confirmation dialog")
	}

	// Default answer keeps the chat.
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.confirm != nil {
		t.Error("dialog should close on enter")
	}
	select {
	case id := <-deleter.deleted:
		t.Errorf("default must not delete, but %q was deleted", id)
	default:
	}

	// Toggle to delete and confirm.
	m, _ = apply(t, m, keyRune('d'))
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := <-deleter.deleted; got != "doomed" {
		t.Errorf("deleted %q, want doomed", got)
	}
	if len(m.visible()) != 1 {
		t.Error("delete is fire-and-forget; the list must not change locally")
	}
}

func TestFilterKeysNarrowTheList(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)
	recs := records("a", "b")
	recs[1].Platform = "discord"
	m, _ = apply(t, m, SnapshotMsg{Generation: m.generation, Records: recs})

	// Cycle platform off "all".
	m, _ = apply(t, m, keyRune('p'))
	if m.mirror.Filter().Platform == mirror.FilterAll {
		t.Error("p should cycle the platform filter off all")
	}
}

// =============================================================================
// WIZARD FLOW
// =============================================================================

func walkToMapping(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = apply(t, m, keyRune('n'))
	if m.screen != ScreenWizard {
		t.Fatal("n should open the wizard")
	}
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // platform
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // type
	if m.session.Step() != wizard.StepUpload {
		t.Fatalf("step = %v, want upload", m.session.Step())
	}
	m, _ = apply(t, m, FileReadMsg{Name: "chat.txt", Contents: []byte("[01/02/25, 10:00:00] Alice: hey")})
	if m.session.Step() != wizard.StepMembers {
		t.Fatalf("step = %v after file, want members", m.session.Step())
	}
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Alice")})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // empty enter moves on
	if m.session.Step() != wizard.StepNameMapping {
		t.Fatalf("step = %v, want name mapping", m.session.Step())
	}
	return m
}

func TestWizardWalkthrough(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)
	m = walkToMapping(t, m)

	draft := m.session.Draft()
	if draft.Platform != "whatsapp" || draft.ConversationType != "significant_other" {
		t.Errorf("draft = %+v, first options expected", draft)
	}
	if len(draft.Members) != 1 || draft.Members[0] != "Alice" {
		t.Errorf("members = %v, want [Alice]", draft.Members)
	}
}

func TestSubmissionJoinsAnimationAndRequest(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)
	m = walkToMapping(t, m)

	m, cmd := apply(t, m, keyRune('s'))
	if m.progress == nil {
		t.Fatal("s should begin submission")
	}
	if cmd == nil {
		t.Fatal("submission must start the phase ticker and the request")
	}

	// Request resolves first; the wizard must hold until the phases finish.
	m, _ = apply(t, m, SubmitResultMsg{Seq: m.submitSeq, Err: errors.New("upload rejected")})
	if m.screen != ScreenWizard {
		t.Fatal("wizard closed before the animation finished")
	}
	for i := 0; i < wizard.PhaseCount; i++ {
		m, _ = apply(t, m, PhaseTickMsg{Seq: m.submitSeq})
	}
	if m.screen != ScreenDashboard {
		t.Errorf("screen = %v, want dashboard after both halves resolve", m.screen)
	}
	// Failure is swallowed: fresh draft, no error surfaced.
	if m.session.Submitting() || m.session.Step() != wizard.StepPlatform {
		t.Error("session should be reset after submission")
	}
}

func TestStalePhaseTickIgnored(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)
	m = walkToMapping(t, m)
	m, _ = apply(t, m, keyRune('s'))

	before := m.progress.Phase()
	m, _ = apply(t, m, PhaseTickMsg{Seq: m.submitSeq - 1})
	if m.progress.Phase() != before {
		t.Error("tick from an abandoned submission advanced the phases")
	}
}

func TestWizardEscFromFirstStepReturnsToDashboard(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)
	m, _ = apply(t, m, keyRune('n'))
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != ScreenDashboard {
		t.Errorf("screen = %v, want dashboard", m.screen)
	}
}

// =============================================================================
// DETAIL
// =============================================================================

func TestOpenDetailAndDeletedUpstream(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)
	m, _ = apply(t, m, SnapshotMsg{Generation: m.generation, Records: records("chat-9")})

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != ScreenDetail || m.detailID != "chat-9" {
		t.Fatalf("enter should open detail for chat-9, got screen=%v id=%q", m.screen, m.detailID)
	}

	stream := &fakeDocStream{ch: make(chan *model.ChatRecord, 1)}
	m, _ = apply(t, m, DocSubscribedMsg{ID: "chat-9", Sub: stream})

	// nil record means deleted server-side.
	m, _ = apply(t, m, DocSnapshotMsg{ID: "chat-9"})
	if m.screen != ScreenDashboard {
		t.Errorf("screen = %v, want dashboard after upstream delete", m.screen)
	}
}

func TestDetailContentRendersBoardsAndAwards(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)
	m.detail = completedRecord(t)
	m.detailID = "chat-1"

	content := m.renderDetailContent()
	for _, want := range []string{
		"Chaos Rankings", "Comedy Gold", "Topic Champions", "Cringe Hall of Fame",
		"Most Chaotic", "Alice", "Feral Book Club", "the duck incident",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("detail content missing %q", want)
		}
	}
}

func TestDetailContentPendingAnalysis(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)
	recs := records("chat-2")
	m.detail = &recs[0]
	m.detailID = "chat-2"

	content := m.renderDetailContent()
	if !strings.Contains(content, "still brewing") {
		t.Errorf("pending analysis should show the brewing notice:\n%s", content)
	}
	if strings.Contains(content, "1.") {
		t.Error("pending analysis must not look like an empty leaderboard")
	}
}

func TestClipboardFailureIsInlineOnly(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = sized(t, m)
	m.screen = ScreenDetail
	m.detail = completedRecord(t)
	m.detailID = "chat-1"

	m, _ = apply(t, m, CopyResultMsg{Err: errors.New("no clipboard")})
	if m.screen != ScreenDetail {
		t.Error("clipboard failure must not leave the detail screen")
	}
	if m.alert == "" {
		t.Error("clipboard failure should raise an inline alert")
	}
}
