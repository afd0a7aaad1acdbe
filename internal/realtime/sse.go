// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package realtime consumes the ChitterChatter sync stream.
//
// The server pushes full record-set snapshots over Server-Sent Events;
// subscriptions surface them as a channel of immutable snapshots with an
// explicit unsubscribe lifecycle. The local mirror is replaced wholesale on
// every push, so events never carry diffs.
package realtime

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// STREAMING: Robust SSE parsing with error handling

// MaxEventSize is the maximum allowed size for a single SSE event.
// A snapshot carries every record the user owns, so the cap is generous.
const MaxEventSize = 8 * 1024 * 1024 // 8MB

// SSEReader parses Server-Sent Events from a stream.
type SSEReader struct {
	reader *bufio.Reader
}

// NewSSEReader creates a new SSE reader from an io.Reader.
func NewSSEReader(r io.Reader) *SSEReader {
	return &SSEReader{
		reader: bufio.NewReader(r),
	}
}

// ReadEvent reads the next SSE event from the stream.
// Returns the event type, data, and any error.
// Returns io.EOF when the stream ends.
func (s *SSEReader) ReadEvent() (string, []byte, error) {
	var eventType string
	var dataLines [][]byte
	var total int

	for {
		line, err := s.reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				// If we have data, return it before EOF
				if len(dataLines) > 0 {
					return eventType, bytes.Join(dataLines, []byte("\n")), nil
				}
				return "", nil, io.EOF
			}
			return "", nil, err
		}

		line = bytes.TrimRight(line, "\r\n")

		// Empty line signals end of event
		if len(line) == 0 {
			if len(dataLines) > 0 {
				return eventType, bytes.Join(dataLines, []byte("\n")), nil
			}
			continue
		}

		switch {
		case bytes.HasPrefix(line, []byte("event:")):
			eventType = string(bytes.TrimSpace(line[6:]))
		case bytes.HasPrefix(line, []byte("data:")):
			data := bytes.TrimSpace(line[5:])
			total += len(data)
			if total > MaxEventSize {
				return "", nil, fmt.Errorf("event too large: %d bytes", total)
			}
			dataLines = append(dataLines, data)
		}
		// Ignore other fields (id:, retry:, comments starting with :)
	}
}
