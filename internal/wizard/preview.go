// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package wizard

import (
	"regexp"
	"strings"
)

// =============================================================================
// EXPORT PREVIEW
// =============================================================================

// whatsappHeader matches the sender header of a WhatsApp text export line:
// [dd/dd/dd, hh:mm:ss] Name:
var whatsappHeader = regexp.MustCompile(`\[\d{2}/\d{2}/\d{2},\s\d{2}:\d{2}:\d{2}\]\s([^:]+):`)

// SendersIn extracts sender names from a WhatsApp-format export, unique, in
// order of first appearance. Used to pre-fill the members step.
func SendersIn(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range whatsappHeader.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// HighlightHeaders rewrites a preview by passing each sender name in a
// message header through style. The surrounding timestamp and punctuation
// are left alone.
func HighlightHeaders(text string, style func(name string) string) string {
	return whatsappHeader.ReplaceAllStringFunc(text, func(header string) string {
		sub := whatsappHeader.FindStringSubmatch(header)
		name := sub[1]
		return strings.Replace(header, name, style(name), 1)
	})
}

// MappedSender resolves a header name back to the member it was mapped to,
// falling back to the raw name when no mapping covers it.
func MappedSender(name string, mapping map[string]string) string {
	for member, chatName := range mapping {
		if chatName == name {
			return member
		}
	}
	return name
}
