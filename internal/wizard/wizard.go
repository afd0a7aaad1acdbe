// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package wizard holds the state machine behind the new-chat flow: an
// ordered list of steps, a draft being filled in, and a terminal submission
// phase. The package is UI-free; the tea model in internal/ui/wizard renders
// it and feeds events back in.
package wizard

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// STEPS
// =============================================================================

// Step identifies one screen of the flow.
type Step int

const (
	StepPlatform Step = iota
	StepConversationType
	StepUpload
	StepMembers
	StepNameMapping
)

// StepCount is the number of steps before submission.
const StepCount = 5

// Title returns the heading shown for the step.
func (s Step) Title() string {
	switch s {
	case StepPlatform:
		return "Choose your platform"
	case StepConversationType:
		return "What kind of chat is this?"
	case StepUpload:
		return "Upload your chat export"
	case StepMembers:
		return "Who's in the chat?"
	case StepNameMapping:
		return "Match the names"
	default:
		return ""
	}
}

// Subtitle returns the helper line shown under the title.
func (s Step) Subtitle() string {
	switch s {
	case StepPlatform:
		return "Where did this conversation happen?"
	case StepConversationType:
		return "This helps tune the analysis"
	case StepUpload:
		return "Export the conversation from your app and pick the file"
	case StepMembers:
		return "Add the people you want analyzed"
	case StepNameMapping:
		return "Link each member to their name in the export"
	default:
		return ""
	}
}

// Option is a selectable choice on the platform and type steps.
type Option struct {
	Value string
	Label string
}

// Platforms lists the platforms a chat can be imported from.
func Platforms() []Option {
	return []Option{
		{Value: "whatsapp", Label: "WhatsApp"},
		{Value: "messenger", Label: "Messenger"},
		{Value: "discord", Label: "Discord"},
	}
}

// ConversationTypes lists the supported conversation categories.
func ConversationTypes() []Option {
	return []Option{
		{Value: "significant_other", Label: "Significant Other"},
		{Value: "friends", Label: "Friends"},
		{Value: "family", Label: "Family"},
	}
}

// =============================================================================
// DRAFT
// =============================================================================

// SourceFile is the chosen export file, read eagerly for the preview.
type SourceFile struct {
	Name     string
	Contents []byte
}

// Draft accumulates the user's answers across the steps.
type Draft struct {
	Platform         string
	ConversationType string
	Source           *SourceFile
	Members          []string
	NameMapping      map[string]string
}

func emptyDraft() Draft {
	return Draft{NameMapping: map[string]string{}}
}

// clone returns an independent copy so callers cannot mutate session state
// behind its back.
func (d Draft) clone() Draft {
	out := d
	out.Members = append([]string(nil), d.Members...)
	out.NameMapping = make(map[string]string, len(d.NameMapping))
	for k, v := range d.NameMapping {
		out.NameMapping[k] = v
	}
	if d.Source != nil {
		src := *d.Source
		src.Contents = append([]byte(nil), d.Source.Contents...)
		out.Source = &src
	}
	return out
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the live state of one pass through the flow. Not safe for
// concurrent use; it lives on the single UI event loop.
type Session struct {
	draft      Draft
	step       Step
	submitting bool
}

// NewSession starts a fresh flow at the first step.
func NewSession() *Session {
	return &Session{draft: emptyDraft()}
}

// Step returns the current step index.
func (s *Session) Step() Step { return s.step }

// Submitting reports whether the session has entered the terminal
// submission phase.
func (s *Session) Submitting() bool { return s.submitting }

// Draft returns a copy of the current draft.
func (s *Session) Draft() Draft { return s.draft.clone() }

// SelectPlatform records the platform and auto-advances off the platform
// step. Reselecting the same value from the same step lands in the same
// state.
func (s *Session) SelectPlatform(platform string) {
	if s.submitting {
		return
	}
	s.draft.Platform = platform
	if s.step == StepPlatform {
		s.advance()
	}
}

// SelectType records the conversation type and auto-advances off the type
// step.
func (s *Session) SelectType(conversationType string) {
	if s.submitting {
		return
	}
	s.draft.ConversationType = conversationType
	if s.step == StepConversationType {
		s.advance()
	}
}

// AttachFile stores the export file and auto-advances off the upload step.
func (s *Session) AttachFile(name string, contents []byte) {
	if s.submitting {
		return
	}
	s.draft.Source = &SourceFile{Name: name, Contents: contents}
	if s.step == StepUpload {
		s.advance()
	}
}

// AddMember appends a member. Blank names and exact duplicates are ignored.
func (s *Session) AddMember(name string) {
	if s.submitting {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	for _, existing := range s.draft.Members {
		if existing == name {
			return
		}
	}
	s.draft.Members = append(s.draft.Members, name)
}

// RemoveMember drops a member and any name mapping keyed by it, so mapping
// data never outlives its member.
func (s *Session) RemoveMember(name string) {
	if s.submitting {
		return
	}
	for i, existing := range s.draft.Members {
		if existing == name {
			s.draft.Members = append(s.draft.Members[:i], s.draft.Members[i+1:]...)
			break
		}
	}
	delete(s.draft.NameMapping, name)
}

// SetNameMapping records the member's name as it appears in the export.
// Unconditional upsert: the member is not required to be in Members.
func (s *Session) SetNameMapping(member, chatName string) {
	if s.submitting {
		return
	}
	if s.draft.NameMapping == nil {
		s.draft.NameMapping = map[string]string{}
	}
	s.draft.NameMapping[member] = chatName
}

// CanAdvance reports whether the primary action button may move forward
// from the given step. Only the first three steps are gated.
func (s *Session) CanAdvance(step Step) bool {
	switch step {
	case StepPlatform:
		return s.draft.Platform != ""
	case StepConversationType:
		return s.draft.ConversationType != ""
	case StepUpload:
		return s.draft.Source != nil
	default:
		return true
	}
}

// Next moves one step forward when the current step's gate allows it.
func (s *Session) Next() {
	if s.submitting || !s.CanAdvance(s.step) {
		return
	}
	s.advance()
}

// Back moves one step backward, clamped at the first step. No effect once
// submitting.
func (s *Session) Back() {
	if s.submitting {
		return
	}
	if s.step > 0 {
		s.step--
	}
}

func (s *Session) advance() {
	if s.step < StepCount-1 {
		s.step++
	}
}

// BeginSubmit enters the submission phase. Only reachable from the last
// step, and one-way: no navigation once entered. Returns the draft to
// submit, or false if the transition is not legal.
func (s *Session) BeginSubmit() (Draft, bool) {
	if s.submitting || s.step != StepNameMapping {
		return Draft{}, false
	}
	s.submitting = true
	return s.draft.clone(), true
}

// Reset discards the draft and returns to the first step. Called when the
// submission phase finishes, whatever the request's outcome was.
func (s *Session) Reset() {
	s.draft = emptyDraft()
	s.step = StepPlatform
	s.submitting = false
}

// =============================================================================
// SUBMISSION PHASES
// =============================================================================

// PhaseCount is the number of stages in the submission animation.
const PhaseCount = 4

// PhaseDwell is how long each stage is shown. Fixed: perceived progress is
// deliberately decoupled from real request latency.
const PhaseDwell = 1200 * time.Millisecond

// PhaseMessage returns the text shown for a submission stage.
func PhaseMessage(d Draft, phase int) string {
	switch phase {
	case 0:
		return fmt.Sprintf("Selected %s as your platform", optionLabel(Platforms(), d.Platform))
	case 1:
		return fmt.Sprintf("Picked %s conversation type", optionLabel(ConversationTypes(), d.ConversationType))
	case 2:
		return fmt.Sprintf("Added %d members to analyze", len(d.Members))
	case 3:
		return "Securely processing your chat, sit tight while we work our magic"
	default:
		return ""
	}
}

func optionLabel(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Progress joins the two halves of a submission: the fixed-dwell animation
// and the real network request. The wizard is released only when both have
// finished; whichever resolves last wins.
type Progress struct {
	phase    int
	animDone bool
	netDone  bool
	err      error
}

// NewProgress starts at the first phase with the request still in flight.
func NewProgress() *Progress { return &Progress{} }

// Phase returns the stage currently shown.
func (p *Progress) Phase() int { return p.phase }

// AdvancePhase is called when a stage's dwell elapses. The animation always
// walks all stages; after the last one it marks itself done and holds there
// until the request resolves.
func (p *Progress) AdvancePhase() {
	if p.phase < PhaseCount-1 {
		p.phase++
		return
	}
	p.animDone = true
}

// Resolve records the network outcome. The error is kept for logging only;
// it never reaches the user.
func (p *Progress) Resolve(err error) {
	p.netDone = true
	p.err = err
}

// Done reports whether the wizard may close: all stages shown and the
// request resolved.
func (p *Progress) Done() bool { return p.animDone && p.netDone }

// Err returns the request's outcome for logging.
func (p *Progress) Err() error { return p.err }
