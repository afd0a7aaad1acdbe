// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"

	"github.com/morganforge/chitter-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports the raw record as JSON.
// NOTE: JSON exports always include the complete record, analysis blocks
// included, so the output is a faithful copy of what the server holds.
type JSONExporter struct{}

// Export converts a record to JSON format.
func (e *JSONExporter) Export(rec *model.ChatRecord) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("record is nil")
	}

	return json.MarshalIndent(rec, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
