// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

// Schema creates the cache tables.
//
// Records are stored as the JSON they arrived in: the cache is a dumb
// replica of the last snapshot per owner, not a queryable model. position
// preserves push order (createdAt descending, as the server sends it).
const Schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	owner_id  TEXT NOT NULL,
	position  INTEGER NOT NULL,
	chat_id   TEXT NOT NULL,
	data      TEXT NOT NULL,
	PRIMARY KEY (owner_id, position)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_chat ON snapshots(owner_id, chat_id);

CREATE TABLE IF NOT EXISTS sync_meta (
	owner_id  TEXT PRIMARY KEY,
	synced_at INTEGER NOT NULL
);
`
