// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the ChitterChatter submission API client.
//
// The client handles multipart chat uploads, record fetches, and deletions
// against the REST surface, with exponential-backoff retries for transient
// failures and client-side rate limiting on mutating requests.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/morganforge/chitter-tui/internal/logging"
	"github.com/morganforge/chitter-tui/internal/model"
)

const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for
	// transient errors.
	DefaultMaxRetries = 3

	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay is the maximum delay for exponential backoff.
	retryMaxDelay = 10 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion attacks.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

	// DefaultMaxUploadBytes caps chat export uploads.
	DefaultMaxUploadBytes = 25 * 1024 * 1024 // 25MB
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client with connection pooling for all API requests.
// SECURITY: TLS verification required for production
var sharedHTTPClient = &http.Client{
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
	Timeout: DefaultTimeout,
}

// Error variables for common API errors.
var (
	// ErrNotConfigured indicates the API base URL is not set.
	ErrNotConfigured = errors.New("API base URL not configured")

	// ErrAuthFailed indicates authentication failed (missing or expired token).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("chat not found")

	// ErrUploadTooLarge indicates the chat export exceeds the upload cap.
	ErrUploadTooLarge = errors.New("chat export too large")
)

// APIError represents an error response from the ChitterChatter API.
type APIError struct {
	Code    string
	Message string
	Status  int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("API error (HTTP %d): %s", e.Status, e.Message)
}

// apiErrorResponse is the JSON error envelope the API returns.
type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// SUBMISSION
// =============================================================================

// Submission is one chat upload prepared by the wizard.
type Submission struct {
	Platform         string
	ConversationType string
	Members          []string
	// FileName and FileContents are the raw chat export; both may be empty
	// since the upload step is optional past the gate.
	FileName     string
	FileContents []byte
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the ChitterChatter REST API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	maxRetries     int
	maxUploadBytes int64
	limiter        *rate.Limiter
	tokenFn        func() string
	logger         zerolog.Logger
}

// NewClient creates an API client for the given base URL.
//
// The zero token source means unauthenticated requests; wire one with
// WithTokenSource before submitting on behalf of a signed-in user.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     sharedHTTPClient,
		maxRetries:     DefaultMaxRetries,
		maxUploadBytes: DefaultMaxUploadBytes,
		logger:         logging.Component("api"),
	}
}

// WithTimeout sets a custom request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	// Copy the shared client rather than mutating it under other users.
	hc := *c.httpClient
	hc.Timeout = timeout
	c.httpClient = &hc
	return c
}

// WithMaxRetries sets the retry budget for transient failures.
func (c *Client) WithMaxRetries(maxRetries int) *Client {
	if maxRetries < 1 {
		maxRetries = 1
	}
	c.maxRetries = maxRetries
	return c
}

// WithRateLimit enables client-side rate limiting on mutating requests.
// rps <= 0 disables limiting.
func (c *Client) WithRateLimit(rps float64, burst int) *Client {
	if rps <= 0 {
		c.limiter = nil
		return c
	}
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return c
}

// WithTokenSource sets the bearer-token provider. The function is called per
// request so a refreshed token is picked up without rebuilding the client.
func (c *Client) WithTokenSource(fn func() string) *Client {
	c.tokenFn = fn
	return c
}

// WithMaxUploadMB caps the accepted chat export size.
func (c *Client) WithMaxUploadMB(mb int) *Client {
	if mb > 0 {
		c.maxUploadBytes = int64(mb) * 1024 * 1024
	}
	return c
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// IsConfigured reports whether the client has a base URL.
func (c *Client) IsConfigured() bool {
	return c.baseURL != ""
}

// =============================================================================
// OPERATIONS
// =============================================================================

// SubmitChat uploads one chat for analysis via POST /api/chats.
//
// The body is multipart form data: platform, conversationType, members
// (JSON-encoded array), and the optional chatFile. The server responds with
// the created record.
func (c *Client) SubmitChat(ctx context.Context, sub Submission) (*model.ChatRecord, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if int64(len(sub.FileContents)) > c.maxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrUploadTooLarge, len(sub.FileContents), c.maxUploadBytes)
	}

	body, contentType, err := encodeSubmission(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to encode submission: %w", err)
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	respBody, err := c.doWithRetry(ctx, http.MethodPost, c.baseURL+"/api/chats", body, contentType)
	if err != nil {
		return nil, err
	}

	var rec model.ChatRecord
	if err := json.Unmarshal(respBody, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if rec.ID == "" {
		return nil, &APIError{Message: "response missing record id", Status: http.StatusOK}
	}
	return &rec, nil
}

// GetChat fetches one record by id via GET /api/chats/{id}.
func (c *Client) GetChat(ctx context.Context, id string) (*model.ChatRecord, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	respBody, err := c.doWithRetry(ctx, http.MethodGet, c.baseURL+"/api/chats/"+id, nil, "")
	if err != nil {
		return nil, err
	}

	var rec model.ChatRecord
	if err := json.Unmarshal(respBody, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &rec, nil
}

// ListChats fetches all records owned by the authenticated user, newest
// first. Used for the offline snapshot cache and the one-shot status
// command; the live dashboard consumes the realtime stream instead.
func (c *Client) ListChats(ctx context.Context) ([]model.ChatRecord, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	respBody, err := c.doWithRetry(ctx, http.MethodGet, c.baseURL+"/api/chats?orderBy=createdAt&dir=desc", nil, "")
	if err != nil {
		return nil, err
	}

	var recs []model.ChatRecord
	if err := json.Unmarshal(respBody, &recs); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return recs, nil
}

// DeleteChat removes one record via DELETE /api/chats/{id}.
//
// Callers treat deletion as fire-and-forget: the local mirror only updates
// when the next subscription push arrives without the record.
func (c *Client) DeleteChat(ctx context.Context, id string) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	if err := c.wait(ctx); err != nil {
		return err
	}

	_, err := c.doWithRetry(ctx, http.MethodDelete, c.baseURL+"/api/chats/"+id, nil, "")
	if errors.Is(err, ErrNotFound) {
		// Already gone; the point of deleting is for it not to exist.
		return nil
	}
	return err
}

// =============================================================================
// TRANSPORT
// =============================================================================

// encodeSubmission builds the multipart body once; retries reuse the bytes.
func encodeSubmission(sub Submission) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("platform", sub.Platform); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("conversationType", sub.ConversationType); err != nil {
		return nil, "", err
	}

	members := sub.Members
	if members == nil {
		members = []string{}
	}
	membersJSON, err := json.Marshal(members)
	if err != nil {
		return nil, "", err
	}
	if err := w.WriteField("members", string(membersJSON)); err != nil {
		return nil, "", err
	}

	if len(sub.FileContents) > 0 {
		name := sub.FileName
		if name == "" {
			name = "chat.txt"
		}
		part, err := w.CreateFormFile("chatFile", name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(sub.FileContents); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// wait blocks on the rate limiter for mutating requests.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// doWithRetry performs the request with exponential backoff on transient
// failures. The request body is rebuilt from bytes on every attempt.
func (c *Client) doWithRetry(ctx context.Context, method, url string, body []byte, contentType string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(calculateBackoff(attempt)):
			}
		}

		respBody, err := c.doRequest(ctx, method, url, body, contentType)
		if err != nil {
			if isRetryable(err) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return respBody, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return nil, errors.New("max retries exceeded")
}

// doRequest performs a single HTTP request.
// SECURITY: Clears Authorization header after the request to keep the token
// out of any request dump.
func (c *Client) doRequest(ctx context.Context, method, url string, body []byte, contentType string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", "chitter-tui/1.0")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokenFn != nil {
		if token := c.tokenFn(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	req.Header.Del("Authorization")
	if err != nil {
		c.logger.Warn().Str("method", method).Str("request_id", requestID).Err(err).Msg("request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request complete")

	respBody, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, handleErrorResponse(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// readResponse reads the response body with size limits.
// SECURITY: Response size limit prevents memory exhaustion attacks.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse converts HTTP error responses to appropriate Go errors.
func handleErrorResponse(statusCode int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		wrapped := &APIError{
			Code:    apiErr.Error.Code,
			Message: apiErr.Error.Message,
			Status:  statusCode,
		}

		switch statusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrAuthFailed, wrapped.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, wrapped.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrRateLimited, wrapped.Message)
		case http.StatusRequestEntityTooLarge:
			return fmt.Errorf("%w: %s", ErrUploadTooLarge, wrapped.Message)
		default:
			return wrapped
		}
	}

	// Fallback for unparseable error responses
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthFailed
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusRequestEntityTooLarge:
		return ErrUploadTooLarge
	default:
		return &APIError{
			Message: strings.TrimSpace(string(body)),
			Status:  statusCode,
		}
	}
}

// isRetryable determines if an error should trigger a retry.
func isRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500 && apiErr.Status < 600
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return false
}

// calculateBackoff returns the delay to wait before the next retry.
func calculateBackoff(attempt int) time.Duration {
	// Exponential backoff: 500ms, 1000ms, 2000ms, etc.
	delay := retryBaseDelay * time.Duration(1<<uint(attempt-1))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}
