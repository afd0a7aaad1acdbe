// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the offline snapshot cache for chitter TUI.
//
// The cache keeps the most recent subscription snapshot per owner in a
// local SQLite database so the dashboard renders instantly on launch and
// stays readable when the network is down. It is a replica, never a source
// of truth: every live push replaces the owner's rows wholesale.
//
// # Key Types
//
//   - Cache: the snapshot replica
//
// # Usage
//
// Open the cache and replace a snapshot on every push:
//
//	cache, err := storage.Open(cfg.CachePath(), cfg.Cache.MaxRecords)
//	err = cache.Replace(ctx, ownerID, records)
//
// Load the last known snapshot at startup:
//
//	records, err := cache.Load(ctx, ownerID)
//
// # Storage Location
//
// The database lives at ~/.chitterchatter/cache.db by default.
package storage
