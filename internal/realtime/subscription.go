// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package realtime

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/morganforge/chitter-tui/internal/logging"
	"github.com/morganforge/chitter-tui/internal/model"
)

// DefaultSnapshotBuffer is the channel buffer for snapshot delivery. Pushes
// beyond it drop the oldest pending snapshot: only the newest matters when
// state is replaced wholesale.
const DefaultSnapshotBuffer = 8

// ErrNotConfigured indicates the stream base URL is not set.
var ErrNotConfigured = errors.New("realtime base URL not configured")

// ErrSubscribeFailed indicates the stream could not be established.
var ErrSubscribeFailed = errors.New("subscription failed")

// PERFORMANCE: Connection pooling for streaming requests.
// No client timeout: stream lifetime is controlled via context.
var sharedStreamClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: false,
		},
	},
}

// =============================================================================
// SUBSCRIBER
// =============================================================================

// Subscriber establishes sync-stream subscriptions.
type Subscriber struct {
	baseURL    string
	httpClient *http.Client
	tokenFn    func() string
	buffer     int
	logger     zerolog.Logger
}

// NewSubscriber creates a Subscriber for the given stream base URL.
func NewSubscriber(baseURL string) *Subscriber {
	return &Subscriber{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: sharedStreamClient,
		buffer:     DefaultSnapshotBuffer,
		logger:     logging.Component("realtime"),
	}
}

// WithTokenSource sets the bearer-token provider.
func (s *Subscriber) WithTokenSource(fn func() string) *Subscriber {
	s.tokenFn = fn
	return s
}

// WithBuffer sets the snapshot channel buffer size.
func (s *Subscriber) WithBuffer(n int) *Subscriber {
	if n > 0 {
		s.buffer = n
	}
	return s
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (s *Subscriber) WithHTTPClient(hc *http.Client) *Subscriber {
	s.httpClient = hc
	return s
}

// =============================================================================
// COLLECTION SUBSCRIPTION
// =============================================================================

// Subscription is one live stream of record-set snapshots for one owner.
//
// Snapshots() yields every push until the stream ends or Unsubscribe() is
// called, after which the channel is closed. Err() reports why the stream
// ended; an unsubscribed stream ends with a nil error.
//
// Subscriptions are not retried automatically: a dropped stream is logged
// and surfaces through Err(), and the owner decides whether to resubscribe.
type Subscription struct {
	snapshots chan []model.ChatRecord
	cancel    context.CancelFunc

	mu  sync.Mutex
	err error

	done chan struct{}
}

// Snapshots returns the channel of record-set snapshots.
func (s *Subscription) Snapshots() <-chan []model.ChatRecord {
	return s.snapshots
}

// Unsubscribe releases the stream. Safe to call more than once; the
// snapshot channel is closed once the reader goroutine winds down.
func (s *Subscription) Unsubscribe() {
	s.cancel()
	<-s.done
}

// Err reports why the stream ended. Nil until the snapshot channel closes,
// and nil afterwards if the subscription was released deliberately.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// SubscribeChats subscribes to all records owned by ownerID, ordered by
// creation time descending. Every push carries the full record set.
func (s *Subscriber) SubscribeChats(ctx context.Context, ownerID string) (*Subscription, error) {
	if s.baseURL == "" {
		return nil, ErrNotConfigured
	}

	streamURL := fmt.Sprintf("%s/api/sync/chats?owner=%s&orderBy=createdAt&dir=desc",
		s.baseURL, url.QueryEscape(ownerID))

	ctx, cancel := context.WithCancel(ctx)
	body, err := s.open(ctx, streamURL)
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &Subscription{
		snapshots: make(chan []model.ChatRecord, s.buffer),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go s.pump(ctx, body, sub, ownerID)
	return sub, nil
}

// pump reads SSE events and delivers decoded snapshots until the stream
// ends or the context is cancelled.
func (s *Subscriber) pump(ctx context.Context, body io.ReadCloser, sub *Subscription, ownerID string) {
	defer close(sub.done)
	defer close(sub.snapshots)
	defer body.Close()

	reader := NewSSEReader(body)
	for {
		eventType, data, err := reader.ReadEvent()
		if err != nil {
			if ctx.Err() != nil || err == io.EOF {
				// Deliberate release or orderly server close.
				return
			}
			s.logger.Warn().Str("owner", ownerID).Err(err).Msg("subscription stream broke")
			sub.setErr(fmt.Errorf("%w: %v", ErrSubscribeFailed, err))
			return
		}

		if eventType == "keepalive" || len(data) == 0 {
			continue
		}

		var records []model.ChatRecord
		if err := json.Unmarshal(data, &records); err != nil {
			// Skip malformed pushes; the next snapshot supersedes them anyway.
			s.logger.Warn().Str("owner", ownerID).Err(err).Msg("skipping malformed snapshot")
			continue
		}

		// Defensive: never deliver a nil set for an empty push.
		if records == nil {
			records = []model.ChatRecord{}
		}

		select {
		case sub.snapshots <- records:
		case <-ctx.Done():
			return
		default:
			// Buffer full: drop the oldest pending snapshot. Consumers
			// replace state wholesale, so only the newest push matters.
			select {
			case <-sub.snapshots:
			default:
			}
			select {
			case sub.snapshots <- records:
			case <-ctx.Done():
				return
			}
		}
	}
}

// =============================================================================
// DOCUMENT SUBSCRIPTION
// =============================================================================

// DocSubscription is one live stream of single-record snapshots.
type DocSubscription struct {
	snapshots chan *model.ChatRecord
	cancel    context.CancelFunc
	done      chan struct{}

	mu  sync.Mutex
	err error
}

// Snapshots returns the channel of record snapshots. A nil record means the
// document was deleted server-side.
func (d *DocSubscription) Snapshots() <-chan *model.ChatRecord {
	return d.snapshots
}

// Unsubscribe releases the stream.
func (d *DocSubscription) Unsubscribe() {
	d.cancel()
	<-d.done
}

// Err reports why the stream ended. Nil until the snapshot channel closes,
// and nil afterwards if the subscription was released deliberately.
func (d *DocSubscription) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *DocSubscription) setErr(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

// SubscribeChat subscribes to one record by id. Used by the detail view so
// rankings refresh as analysis blocks complete.
func (s *Subscriber) SubscribeChat(ctx context.Context, id string) (*DocSubscription, error) {
	if s.baseURL == "" {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithCancel(ctx)
	body, err := s.open(ctx, s.baseURL+"/api/sync/chats/"+url.PathEscape(id))
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &DocSubscription{
		snapshots: make(chan *model.ChatRecord, s.buffer),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer close(sub.snapshots)
		defer body.Close()

		reader := NewSSEReader(body)
		for {
			eventType, data, err := reader.ReadEvent()
			if err != nil {
				if ctx.Err() == nil && err != io.EOF {
					s.logger.Warn().Str("chat", id).Err(err).Msg("document stream broke")
					sub.setErr(fmt.Errorf("%w: %v", ErrSubscribeFailed, err))
				}
				return
			}

			if eventType == "keepalive" || len(data) == 0 {
				continue
			}

			var rec *model.ChatRecord
			if eventType == "deleted" {
				rec = nil
			} else {
				rec = &model.ChatRecord{}
				if err := json.Unmarshal(data, rec); err != nil {
					s.logger.Warn().Str("chat", id).Err(err).Msg("skipping malformed snapshot")
					continue
				}
			}

			select {
			case sub.snapshots <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// open establishes the event stream and returns the response body.
func (s *Subscriber) open(ctx context.Context, streamURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Connection", "keep-alive")
	if s.tokenFn != nil {
		if token := s.tokenFn(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubscribeFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrSubscribeFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return resp.Body, nil
}
