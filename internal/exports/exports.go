// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package exports finds candidate chat-export files for the upload step and
// watches the export directory so a file dropped while the picker is open
// shows up without reopening it.
package exports

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// LISTING
// =============================================================================

// extensions are the export formats the picker offers.
var extensions = map[string]bool{
	".txt":  true,
	".json": true,
	".zip":  true,
}

// MaxFileSize skips files too large to be a chat export worth previewing.
const MaxFileSize = 100 * 1024 * 1024 // 100MB

// File is one candidate export.
type File struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// List returns candidate exports in dir, newest first. Subdirectories are
// not descended; exports land flat in a downloads folder.
func List(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !extensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() > MaxFileSize {
			continue
		}
		files = append(files, File{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.SliceStable(files, func(a, b int) bool {
		return files[a].ModTime.After(files[b].ModTime)
	})
	return files, nil
}

// =============================================================================
// WATCHER
// =============================================================================

// Watcher refreshes the picker when the export directory changes. Events
// are debounced: one notification per burst of writes, since a download in
// progress fires many.
type Watcher struct {
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	changed  chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending time.Time
}

// NewWatcher creates a watcher for dir. Start it with Watch.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		watcher:  fsw,
		changed:  make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching. Each settled burst of changes produces one signal
// on Changed.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	go w.processEvents()
	go w.processPending()
	return nil
}

// Changed signals that the directory contents settled after a change.
func (w *Watcher) Changed() <-chan struct{} { return w.changed }

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !extensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			w.mu.Lock()
			w.pending = time.Now()
			w.mu.Unlock()

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal; the picker just stops auto-refreshing.
		}
	}
}

func (w *Watcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			fire := !w.pending.IsZero() && time.Since(w.pending) >= w.debounce
			if fire {
				w.pending = time.Time{}
			}
			w.mu.Unlock()
			if !fire {
				continue
			}
			select {
			case w.changed <- struct{}{}:
			default:
				// A signal is already queued; one is enough.
			}
		}
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
