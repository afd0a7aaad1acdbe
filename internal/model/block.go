// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat records and analysis.
package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// =============================================================================
// BLOCK STATUS
// =============================================================================

// BlockStatus is the lifecycle state of a single analysis block.
// The zero value is BlockAbsent: a record decoded without the block at all.
type BlockStatus int

const (
	// BlockAbsent means the record carried no block for this analysis kind.
	BlockAbsent BlockStatus = iota
	// BlockPending means the block exists but analysis has not started.
	BlockPending
	// BlockProcessing means the analysis service is working on it.
	BlockProcessing
	// BlockCompleted means results are available.
	BlockCompleted
	// BlockFailed means the analysis service gave up on this block.
	BlockFailed
)

// String returns a human-readable status name.
func (s BlockStatus) String() string {
	switch s {
	case BlockAbsent:
		return "absent"
	case BlockPending:
		return "pending"
	case BlockProcessing:
		return "processing"
	case BlockCompleted:
		return "completed"
	case BlockFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// ANALYSIS BLOCK
// =============================================================================

// Block is one independently-completing analysis result attached to a chat
// record. Each analysis kind (member scoring, superlatives, group vibe,
// memorable moments) completes on its own schedule server-side, so every
// block carries its own status.
//
// Block is a tagged variant rather than a struct of optional pointers:
// results are only reachable through Completed(), which forces callers to
// distinguish "no data yet" from a legitimate zero score.
type Block[T any] struct {
	status     BlockStatus
	results    T
	analyzedAt time.Time
	failure    string
}

// NewPendingBlock returns a block awaiting analysis.
func NewPendingBlock[T any]() Block[T] {
	return Block[T]{status: BlockPending}
}

// NewProcessingBlock returns a block currently being analyzed.
func NewProcessingBlock[T any]() Block[T] {
	return Block[T]{status: BlockProcessing}
}

// NewCompletedBlock returns a block carrying finished results.
func NewCompletedBlock[T any](results T, analyzedAt time.Time) Block[T] {
	return Block[T]{status: BlockCompleted, results: results, analyzedAt: analyzedAt}
}

// NewFailedBlock returns a block whose analysis failed with the given reason.
func NewFailedBlock[T any](reason string) Block[T] {
	return Block[T]{status: BlockFailed, failure: reason}
}

// Status returns the block's lifecycle state.
func (b Block[T]) Status() BlockStatus { return b.status }

// Completed returns the results and true only when the block finished
// successfully. For any other state it returns the zero value and false.
func (b Block[T]) Completed() (T, bool) {
	if b.status != BlockCompleted {
		var zero T
		return zero, false
	}
	return b.results, true
}

// AnalyzedAt returns the server-reported completion time. Zero unless
// the block completed.
func (b Block[T]) AnalyzedAt() time.Time { return b.analyzedAt }

// FailureReason returns the error string for a failed block, "" otherwise.
func (b Block[T]) FailureReason() string { return b.failure }

// =============================================================================
// WIRE CODEC
// =============================================================================

// blockWire is the over-the-wire shape of an analysis block.
type blockWire[T any] struct {
	Status     string          `json:"status"`
	Results    json.RawMessage `json:"results,omitempty"`
	AnalyzedAt *time.Time      `json:"analyzedAt,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// UnmarshalJSON decodes the wire form. A JSON null decodes to BlockAbsent,
// matching a record that never had the block. Unknown status strings decode
// to BlockPending so newly introduced server states render as a placeholder
// instead of breaking the client.
func (b *Block[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*b = Block[T]{}
		return nil
	}

	var wire blockWire[T]
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	out := Block[T]{}
	switch wire.Status {
	case "processing":
		out.status = BlockProcessing
	case "completed":
		out.status = BlockCompleted
	case "failed":
		out.status = BlockFailed
		out.failure = wire.Error
	default:
		out.status = BlockPending
	}

	if out.status == BlockCompleted {
		if wire.AnalyzedAt != nil {
			out.analyzedAt = *wire.AnalyzedAt
		}
		if len(wire.Results) > 0 {
			if err := json.Unmarshal(wire.Results, &out.results); err != nil {
				return err
			}
		}
	}

	*b = out
	return nil
}

// MarshalJSON encodes the wire form. Absent blocks encode as null so the
// snapshot cache round-trips records without inventing empty blocks.
func (b Block[T]) MarshalJSON() ([]byte, error) {
	if b.status == BlockAbsent {
		return []byte("null"), nil
	}

	wire := blockWire[T]{Status: b.status.String()}
	if b.status == BlockCompleted {
		raw, err := json.Marshal(b.results)
		if err != nil {
			return nil, err
		}
		wire.Results = raw
		if !b.analyzedAt.IsZero() {
			at := b.analyzedAt
			wire.AnalyzedAt = &at
		}
	}
	if b.status == BlockFailed {
		wire.Error = b.failure
	}
	return json.Marshal(wire)
}
