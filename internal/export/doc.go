// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes wrapped chat summaries for chitter TUI.
//
// This package turns a completed chat record into shareable output:
// Markdown for saving and sending around, JSON for a faithful machine copy,
// and a glamour-rendered version for viewing directly in the terminal.
//
// # Key Types
//
//   - Exporter: main export interface
//   - MarkdownExporter, JSONExporter: the formats
//   - Options: export configuration
//
// # Usage
//
// Export a record to a Markdown file:
//
//	path, err := export.ExportMarkdown(record, export.DefaultOptions())
//
// Render the summary in the terminal:
//
//	out, err := export.RenderTerminal(record, nil, 80)
package export
