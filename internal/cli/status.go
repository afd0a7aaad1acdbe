// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Connection and cache status display.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/morganforge/chitter-tui/internal/auth"
	"github.com/morganforge/chitter-tui/internal/config"
	"github.com/morganforge/chitter-tui/internal/storage"
)

// StatusInfo is the machine-readable form of `chitter status --json`.
type StatusInfo struct {
	SignedIn    bool      `json:"signedIn"`
	Email       string    `json:"email,omitempty"`
	UserID      string    `json:"userId,omitempty"`
	APIBase     string    `json:"apiBase"`
	RealtimeURL string    `json:"realtimeBase"`
	ExportsDir  string    `json:"exportsDir,omitempty"`
	CachedChats int       `json:"cachedChats"`
	SyncedAt    time.Time `json:"syncedAt,omitempty"`
	ConfigPath  string    `json:"configPath,omitempty"`
}

// HandleStatus shows who is signed in, where the client points, and how
// fresh the offline cache is.
func HandleStatus(cfg *config.Config, args Args) error {
	info := collectStatus(cfg)

	if args.JSON {
		return outputJSON(info)
	}

	fmt.Println(TitleStyle.Render("chitter status"))

	if info.SignedIn {
		fmt.Println(renderField("Account", info.Email))
		fmt.Println(renderField("User ID", info.UserID))
	} else {
		fmt.Println(renderField("Account", WarnStyle.Render("not signed in, run chitter login")))
	}

	fmt.Println(renderField("API", info.APIBase))
	fmt.Println(renderField("Realtime", info.RealtimeURL))
	if info.ExportsDir != "" {
		fmt.Println(renderField("Exports dir", info.ExportsDir))
	}
	fmt.Println(RenderSeparator(40))

	cacheLine := fmt.Sprintf("%d chats, synced %s", info.CachedChats, formatSyncAge(info.SyncedAt))
	if info.CachedChats == 0 {
		cacheLine = "empty"
	}
	fmt.Println(renderField("Offline cache", cacheLine))
	if info.ConfigPath != "" {
		fmt.Println(renderField("Config", info.ConfigPath))
	}
	return nil
}

func collectStatus(cfg *config.Config) StatusInfo {
	info := StatusInfo{
		APIBase:     cfg.API.BaseURL,
		RealtimeURL: cfg.RealtimeBase(),
	}
	if path, err := config.ConfigPathTOML(); err == nil {
		info.ConfigPath = path
	}
	if dir, err := cfg.ExportDir(); err == nil {
		info.ExportsDir = dir
	}

	if credsPath, err := cfg.CredentialsPath(); err == nil {
		store := auth.NewStore(credsPath)
		if creds, err := store.Load(); err == nil && creds != nil {
			info.SignedIn = true
			info.Email = creds.Email
			info.UserID = creds.UserID
		}
	}

	if !info.SignedIn {
		return info
	}

	if cachePath, err := cfg.CachePath(); err == nil {
		cache, err := storage.Open(cachePath, cfg.Cache.MaxRecords)
		if err == nil {
			defer cache.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if records, err := cache.Load(ctx, info.UserID); err == nil {
				info.CachedChats = len(records)
			}
			if syncedAt, err := cache.SyncedAt(ctx, info.UserID); err == nil {
				info.SyncedAt = syncedAt
			}
		}
	}
	return info
}
