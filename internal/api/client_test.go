// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func testSubmission() Submission {
	return Submission{
		Platform:         "whatsapp",
		ConversationType: "friends",
		Members:          []string{"Alice", "Bob"},
		FileName:         "chat.txt",
		FileContents:     []byte("[01/02/23, 10:00:00] Alice: hi"),
	}
}

func TestSubmitChat_SendsMultipartFields(t *testing.T) {
	var gotAuth, gotPlatform, gotType, gotMembers, gotFile string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chats" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotPlatform = r.FormValue("platform")
		gotType = r.FormValue("conversationType")
		gotMembers = r.FormValue("members")

		file, _, err := r.FormFile("chatFile")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		buf := make([]byte, 64)
		n, _ := file.Read(buf)
		gotFile = string(buf[:n])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "chat_1", "platform": "whatsapp"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL).WithTokenSource(func() string { return "tok123" })

	rec, err := client.SubmitChat(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("SubmitChat failed: %v", err)
	}

	if rec.ID != "chat_1" {
		t.Errorf("record id = %q, want chat_1", rec.ID)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", gotAuth)
	}
	if gotPlatform != "whatsapp" || gotType != "friends" {
		t.Errorf("fields = %q/%q", gotPlatform, gotType)
	}
	if gotMembers != `["Alice","Bob"]` {
		t.Errorf("members field = %q, want JSON array", gotMembers)
	}
	if gotFile != "[01/02/23, 10:00:00] Alice: hi" {
		t.Errorf("file contents = %q", gotFile)
	}
}

func TestSubmitChat_NoFileOmitsPart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("chatFile"); err == nil {
			t.Error("chatFile part should be absent when no file was uploaded")
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "chat_2"})
	}))
	defer srv.Close()

	sub := testSubmission()
	sub.FileName = ""
	sub.FileContents = nil

	if _, err := NewClient(srv.URL).SubmitChat(context.Background(), sub); err != nil {
		t.Fatalf("SubmitChat failed: %v", err)
	}
}

func TestSubmitChat_AuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"auth/expired","message":"token expired"}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).SubmitChat(context.Background(), testSubmission())
	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("error = %v, want ErrAuthFailed", err)
	}
}

func TestSubmitChat_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":{"message":"backend hiccup"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "chat_3"})
	}))
	defer srv.Close()

	rec, err := NewClient(srv.URL).WithMaxRetries(3).SubmitChat(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("SubmitChat failed after retries: %v", err)
	}
	if rec.ID != "chat_3" {
		t.Errorf("record id = %q", rec.ID)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server saw %d calls, want 3", got)
	}
}

func TestSubmitChat_RetriesExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).WithMaxRetries(2).SubmitChat(context.Background(), testSubmission())
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusServiceUnavailable {
		t.Errorf("error = %v, want wrapped APIError 503", err)
	}
}

func TestSubmitChat_BadRequestNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"platform required"}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).WithMaxRetries(3).SubmitChat(context.Background(), testSubmission())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server saw %d calls, want 1 (4xx is not retryable)", got)
	}
}

func TestSubmitChat_UploadTooLarge(t *testing.T) {
	sub := testSubmission()
	sub.FileContents = make([]byte, 2*1024*1024)

	client := NewClient("https://example.test").WithMaxUploadMB(1)
	_, err := client.SubmitChat(context.Background(), sub)
	if !errors.Is(err, ErrUploadTooLarge) {
		t.Errorf("error = %v, want ErrUploadTooLarge", err)
	}
}

func TestSubmitChat_NotConfigured(t *testing.T) {
	_, err := NewClient("").SubmitChat(context.Background(), testSubmission())
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestDeleteChat_NotFoundIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/chats/gone" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).DeleteChat(context.Background(), "gone"); err != nil {
		t.Errorf("DeleteChat on missing record = %v, want nil", err)
	}
}

func TestGetChat_DecodesBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "chat_9",
			"platform": "discord",
			"groupVibe": {"status": "completed", "results": {"personalityType": "Feral"}}
		}`))
	}))
	defer srv.Close()

	rec, err := NewClient(srv.URL).GetChat(context.Background(), "chat_9")
	if err != nil {
		t.Fatalf("GetChat failed: %v", err)
	}
	vibe, ok := rec.GroupVibe.Completed()
	if !ok || vibe.PersonalityType != "Feral" {
		t.Errorf("groupVibe = %+v, ok=%v", vibe, ok)
	}
}

func TestListChats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("orderBy") != "createdAt" {
			t.Errorf("orderBy = %q", r.URL.Query().Get("orderBy"))
		}
		w.Write([]byte(`[{"id":"a"},{"id":"b"}]`))
	}))
	defer srv.Close()

	recs, err := NewClient(srv.URL).ListChats(context.Background())
	if err != nil {
		t.Fatalf("ListChats failed: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "a" {
		t.Errorf("records = %+v", recs)
	}
}
