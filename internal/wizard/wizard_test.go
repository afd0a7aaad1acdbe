// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package wizard

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func completedSession() *Session {
	s := NewSession()
	s.SelectPlatform("whatsapp")
	s.SelectType("friends")
	s.AttachFile("chat.txt", []byte("hello"))
	s.AddMember("Alice")
	s.AddMember("Bob")
	s.Next() // members -> name mapping
	return s
}

func TestAutoAdvance(t *testing.T) {
	s := NewSession()
	if s.Step() != StepPlatform {
		t.Fatalf("initial step = %d, want %d", s.Step(), StepPlatform)
	}

	s.SelectPlatform("whatsapp")
	if s.Step() != StepConversationType {
		t.Errorf("after SelectPlatform step = %d, want %d", s.Step(), StepConversationType)
	}
	s.SelectType("family")
	if s.Step() != StepUpload {
		t.Errorf("after SelectType step = %d, want %d", s.Step(), StepUpload)
	}
	s.AttachFile("export.txt", []byte("data"))
	if s.Step() != StepMembers {
		t.Errorf("after AttachFile step = %d, want %d", s.Step(), StepMembers)
	}
}

func TestReselectIsIdempotent(t *testing.T) {
	s := NewSession()
	s.SelectPlatform("whatsapp")
	s.Back()
	stepBefore := s.Step()
	s.SelectPlatform("whatsapp")
	after := s.Draft()

	if after.Platform != "whatsapp" {
		t.Errorf("Platform = %q, want %q", after.Platform, "whatsapp")
	}
	// Reselecting from the same step lands in the same place as the first
	// selection did.
	if stepBefore != StepPlatform || s.Step() != StepConversationType {
		t.Errorf("step after reselect = %d, want %d", s.Step(), StepConversationType)
	}
}

func TestCanAdvanceGates(t *testing.T) {
	s := NewSession()

	if s.CanAdvance(StepPlatform) {
		t.Error("CanAdvance(platform) = true with no platform chosen")
	}
	s.Next()
	if s.Step() != StepPlatform {
		t.Errorf("Next() with failing gate moved to step %d", s.Step())
	}

	s.SelectPlatform("discord")
	if !s.CanAdvance(StepPlatform) {
		t.Error("CanAdvance(platform) = false after selection")
	}
	if s.CanAdvance(StepConversationType) {
		t.Error("CanAdvance(type) = true with no type chosen")
	}
	s.SelectType("friends")
	if s.CanAdvance(StepUpload) {
		t.Error("CanAdvance(upload) = true with no file")
	}
	s.AttachFile("f.txt", nil)

	// Steps 3 and 4 are ungated: zero members is allowed.
	if !s.CanAdvance(StepMembers) || !s.CanAdvance(StepNameMapping) {
		t.Error("members/name-mapping steps must not be gated")
	}
}

func TestNavigationClamps(t *testing.T) {
	s := NewSession()
	s.Back()
	s.Back()
	if s.Step() != StepPlatform {
		t.Errorf("Back() at first step = %d, want %d", s.Step(), StepPlatform)
	}

	s = completedSession()
	if s.Step() != StepNameMapping {
		t.Fatalf("step = %d, want %d", s.Step(), StepNameMapping)
	}
	s.Next()
	s.Next()
	if s.Step() != StepNameMapping {
		t.Errorf("Next() at last step = %d, want %d", s.Step(), StepNameMapping)
	}
}

func TestAddMemberDeDup(t *testing.T) {
	s := NewSession()
	s.AddMember("Alice")
	s.AddMember("Alice")
	if got := s.Draft().Members; !reflect.DeepEqual(got, []string{"Alice"}) {
		t.Errorf("Members = %v, want [Alice]", got)
	}

	// De-dup key is case-sensitive: "alice" is a different member.
	s.AddMember("alice")
	if got := s.Draft().Members; !reflect.DeepEqual(got, []string{"Alice", "alice"}) {
		t.Errorf("Members = %v, want [Alice alice]", got)
	}
}

func TestAddMemberTrimsAndRejectsBlank(t *testing.T) {
	s := NewSession()
	s.AddMember("  Bob  ")
	s.AddMember("   ")
	s.AddMember("")
	if got := s.Draft().Members; !reflect.DeepEqual(got, []string{"Bob"}) {
		t.Errorf("Members = %v, want [Bob]", got)
	}
	s.AddMember("Bob")
	if got := s.Draft().Members; len(got) != 1 {
		t.Errorf("trimmed duplicate appended: %v", got)
	}
}

func TestRemoveMemberDropsMapping(t *testing.T) {
	s := NewSession()
	s.AddMember("Alice")
	s.AddMember("Bob")
	s.SetNameMapping("Alice", "Al")
	s.SetNameMapping("Bob", "Bobby")

	s.RemoveMember("Alice")
	d := s.Draft()
	if !reflect.DeepEqual(d.Members, []string{"Bob"}) {
		t.Errorf("Members = %v, want [Bob]", d.Members)
	}
	if _, ok := d.NameMapping["Alice"]; ok {
		t.Error("name mapping for removed member survived")
	}
	if d.NameMapping["Bob"] != "Bobby" {
		t.Error("unrelated mapping entry lost")
	}
}

func TestSetNameMappingIsPermissiveUpsert(t *testing.T) {
	s := NewSession()
	// No membership guard: mapping a name that is not in Members sticks.
	s.SetNameMapping("Ghost", "G")
	s.SetNameMapping("Ghost", "Ghostie")
	if got := s.Draft().NameMapping["Ghost"]; got != "Ghostie" {
		t.Errorf("NameMapping[Ghost] = %q, want %q", got, "Ghostie")
	}
}

func TestBeginSubmitOnlyFromLastStep(t *testing.T) {
	s := NewSession()
	if _, ok := s.BeginSubmit(); ok {
		t.Error("BeginSubmit() allowed from first step")
	}

	s = completedSession()
	draft, ok := s.BeginSubmit()
	if !ok {
		t.Fatal("BeginSubmit() refused from last step")
	}
	if draft.Platform != "whatsapp" || len(draft.Members) != 2 {
		t.Errorf("submitted draft = %+v", draft)
	}
	if !s.Submitting() {
		t.Error("Submitting() = false after BeginSubmit")
	}

	// One-way: no second submit, no navigation, no edits.
	if _, ok := s.BeginSubmit(); ok {
		t.Error("second BeginSubmit() allowed")
	}
	s.Back()
	if s.Step() != StepNameMapping {
		t.Error("Back() moved while submitting")
	}
	s.AddMember("Mallory")
	if len(s.Draft().Members) != 2 {
		t.Error("draft mutated while submitting")
	}
}

func TestResetAfterFailureDiscardsDraft(t *testing.T) {
	s := completedSession()
	if _, ok := s.BeginSubmit(); !ok {
		t.Fatal("BeginSubmit() refused")
	}

	// The request failed. The flow still closes and the draft is still
	// discarded: failures are logged and swallowed, not surfaced.
	p := NewProgress()
	p.Resolve(errors.New("server exploded"))
	for !p.Done() {
		p.AdvancePhase()
	}
	s.Reset()

	d := s.Draft()
	if s.Step() != StepPlatform || s.Submitting() {
		t.Errorf("after Reset: step=%d submitting=%v", s.Step(), s.Submitting())
	}
	if d.Platform != "" || d.Source != nil || len(d.Members) != 0 {
		t.Errorf("draft not reset: %+v", d)
	}
}

func TestDraftIsACopy(t *testing.T) {
	s := NewSession()
	s.AddMember("Alice")
	d := s.Draft()
	d.Members[0] = "Eve"
	d.NameMapping["Alice"] = "evil"
	if s.Draft().Members[0] != "Alice" {
		t.Error("caller mutated session members through Draft()")
	}
	if len(s.Draft().NameMapping) != 0 {
		t.Error("caller mutated session mapping through Draft()")
	}
}

// =============================================================================
// SUBMISSION PHASES
// =============================================================================

func TestProgressJoinNetworkSlower(t *testing.T) {
	p := NewProgress()
	for i := 0; i < PhaseCount; i++ {
		if p.Done() {
			t.Fatalf("Done() before animation finished, phase %d", i)
		}
		p.AdvancePhase()
	}
	if p.Phase() != PhaseCount-1 {
		t.Errorf("Phase() = %d, want %d", p.Phase(), PhaseCount-1)
	}
	// Animation done, request still in flight: hold at the final phase.
	if p.Done() {
		t.Error("Done() = true before the request resolved")
	}
	p.Resolve(nil)
	if !p.Done() {
		t.Error("Done() = false after both halves finished")
	}
}

func TestProgressJoinAnimationSlower(t *testing.T) {
	p := NewProgress()
	p.Resolve(nil)
	if p.Done() {
		t.Error("Done() = true before animation finished")
	}
	for i := 0; i < PhaseCount; i++ {
		p.AdvancePhase()
	}
	if !p.Done() {
		t.Error("Done() = false after animation caught up")
	}
}

func TestProgressKeepsErrorForLogging(t *testing.T) {
	p := NewProgress()
	want := errors.New("413 payload too large")
	p.Resolve(want)
	for i := 0; i < PhaseCount; i++ {
		p.AdvancePhase()
	}
	if !p.Done() {
		t.Error("a failed request must still release the flow")
	}
	if !errors.Is(p.Err(), want) {
		t.Errorf("Err() = %v, want %v", p.Err(), want)
	}
}

func TestPhaseMessages(t *testing.T) {
	d := Draft{Platform: "whatsapp", ConversationType: "friends", Members: []string{"A", "B", "C"}}
	if got := PhaseMessage(d, 0); got != "Selected WhatsApp as your platform" {
		t.Errorf("phase 0 = %q", got)
	}
	if got := PhaseMessage(d, 1); got != "Picked Friends conversation type" {
		t.Errorf("phase 1 = %q", got)
	}
	if got := PhaseMessage(d, 2); got != "Added 3 members to analyze" {
		t.Errorf("phase 2 = %q", got)
	}
	if got := PhaseMessage(d, 3); !strings.Contains(got, "work our magic") {
		t.Errorf("phase 3 = %q", got)
	}
}

// =============================================================================
// PREVIEW
// =============================================================================

const sampleExport = `[12/03/24, 09:15:22] Alice: morning!
[12/03/24, 09:16:01] Bob Marley: hey hey
[12/03/24, 09:16:45] Alice: ready for today?
not a header line: with a colon
[12/03/24, 09:17:10] Carol: yes`

func TestSendersIn(t *testing.T) {
	got := SendersIn(sampleExport)
	want := []string{"Alice", "Bob Marley", "Carol"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SendersIn() = %v, want %v", got, want)
	}
}

func TestSendersInIgnoresNonHeaders(t *testing.T) {
	if got := SendersIn("just text: with colons\n10:30 meeting"); got != nil {
		t.Errorf("SendersIn() = %v, want nil", got)
	}
}

func TestHighlightHeaders(t *testing.T) {
	out := HighlightHeaders(sampleExport, func(name string) string {
		return "<" + name + ">"
	})
	if !strings.Contains(out, "] <Alice>:") {
		t.Errorf("Alice not highlighted:\n%s", out)
	}
	if !strings.Contains(out, "] <Bob Marley>:") {
		t.Errorf("multi-word sender not highlighted:\n%s", out)
	}
	if !strings.Contains(out, "not a header line: with a colon") {
		t.Error("non-header line was rewritten")
	}
}

func TestMappedSender(t *testing.T) {
	mapping := map[string]string{"Alice": "Al", "Bob": "Bobby"}
	if got := MappedSender("Bobby", mapping); got != "Bob" {
		t.Errorf("MappedSender(Bobby) = %q, want Bob", got)
	}
	if got := MappedSender("Unknown", mapping); got != "Unknown" {
		t.Errorf("MappedSender(Unknown) = %q, want Unknown", got)
	}
}
