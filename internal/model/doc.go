// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for uploaded chats and their
// personality analysis.
//
// # Key Types
//
//   - ChatRecord: One uploaded chat with its metadata and analysis blocks
//   - Block: Generic wrapper pairing an analysis payload with its lifecycle status
//   - MemberAnalysis: Per-member scores, quirks and quoted moments
//   - ChatSuperlatives, GroupVibe, MemorableMoments: Group-level analysis payloads
//
// # Usage
//
// Records arrive over the wire as JSON; analysis blocks expose their payload
// only once complete:
//
//	if members, ok := rec.Analysis.Completed(); ok {
//	    for _, m := range members {
//	        fmt.Printf("%s: red flag %d/10\n", m.MemberID, m.RedFlagScore)
//	    }
//	}
//
// A block that is still pending or failed reports its state through Status()
// and FailureReason(), which the UI renders without touching the payload.
package model
