// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat records and analysis.
package model

// =============================================================================
// ANALYSIS PAYLOADS
// =============================================================================
// One payload type per analysis kind. Field names mirror the analysis
// service's JSON exactly; missing numeric fields decode to 0 and are ranked
// as 0, never excluded.

// MemberAnalysis is the per-member scoring payload for one chat member.
type MemberAnalysis struct {
	MemberID       string           `json:"memberId"`
	RedFlagScore   float64          `json:"redFlagScore"`
	RedFlagReasons []string         `json:"redFlagReasons"`
	ToxicityScore  float64          `json:"toxicityScore"`
	SentimentScore float64          `json:"sentimentScore"`
	TopicAnalysis  []TopicFrequency `json:"topicAnalysis"`
	Quirks         []string         `json:"quirks"`
	FunnyScore     float64          `json:"funnyScore"`
	FunnyMoments   []string         `json:"funnyMoments"`
	CringeScore    float64          `json:"cringeScore"`
	CringeMoments  []string         `json:"cringeMoments"`
}

// TopicFrequency is one topic and how often the member raised it.
type TopicFrequency struct {
	Topic     string  `json:"topic"`
	Frequency float64 `json:"frequency"`
}

// ChatSuperlatives is the awards payload for a whole chat.
type ChatSuperlatives struct {
	Awards []Award `json:"awards"`
}

// Award is a single superlative handed to one member.
type Award struct {
	Title     string `json:"title"`
	Recipient string `json:"recipient"`
	Reason    string `json:"reason"`
}

// GroupVibe is the collective-personality payload for a whole chat.
type GroupVibe struct {
	ChaosLevel       ChaosLevel `json:"chaosLevel"`
	PersonalityType  string     `json:"personalityType"`
	GroupTraditions  []string   `json:"groupTraditions"`
	CollectiveQuirks []string   `json:"collectiveQuirks"`
}

// ChaosLevel rates how chaotic the group is on a 0-10 scale.
type ChaosLevel struct {
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
}

// MemorableMoments is the highlights payload for a whole chat.
type MemorableMoments struct {
	EpicDiscussions            []EpicDiscussion `json:"epicDiscussions"`
	RunningJokes               []RunningJoke    `json:"runningJokes"`
	LegendaryMisunderstandings []string         `json:"legendaryMisunderstandings"`
}

// EpicDiscussion is one notable discussion and its highlight quote.
type EpicDiscussion struct {
	Topic     string `json:"topic"`
	Highlight string `json:"highlight"`
}

// RunningJoke is one recurring joke and the context it came from.
type RunningJoke struct {
	Joke    string `json:"joke"`
	Context string `json:"context"`
}
