// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the chitter-tui application.
//
// This package contains common helper functions used throughout the
// application for string display math, search normalization, type
// conversion, and crash-safe file writes.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth, PadRight: terminal-column aware layout helpers
//   - ContainsFold: NFC-normalized case-insensitive substring matching
//
// Type Conversion:
//   - IntToString, ScoreToString: numeric formatting for ranking rows
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
