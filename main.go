// chitter - TUI client for ChitterChatter chat personality analysis.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/chitter-tui/internal/api"
	"github.com/morganforge/chitter-tui/internal/auth"
	"github.com/morganforge/chitter-tui/internal/cli"
	"github.com/morganforge/chitter-tui/internal/config"
	"github.com/morganforge/chitter-tui/internal/exports"
	"github.com/morganforge/chitter-tui/internal/logging"
	"github.com/morganforge/chitter-tui/internal/mirror"
	"github.com/morganforge/chitter-tui/internal/realtime"
	"github.com/morganforge/chitter-tui/internal/storage"
	"github.com/morganforge/chitter-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case cli.CmdTUI:
		runTUI(cfg)

	case cli.CmdLogin:
		store, err := credentialStore(cfg)
		if err != nil {
			fatal(err)
		}
		if err := cli.HandleLogin(store); err != nil {
			fatal(err)
		}

	case cli.CmdLogout:
		store, err := credentialStore(cfg)
		if err != nil {
			fatal(err)
		}
		if err := cli.HandleLogout(store); err != nil {
			fatal(err)
		}

	case cli.CmdStatus:
		if err := cli.HandleStatus(cfg, args); err != nil {
			fatal(err)
		}

	case cli.CmdConfig:
		if err := cli.HandleConfig(cfg, args); err != nil {
			fatal(err)
		}

	case cli.CmdExport:
		client, _, err := buildClient(cfg)
		if err != nil {
			fatal(err)
		}
		if err := cli.HandleExport(cfg, client, args); err != nil {
			fatal(err)
		}

	case cli.CmdVersion:
		cli.PrintVersion()

	case cli.CmdHelp:
		cli.PrintUsage()

	default:
		runTUI(cfg)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// credentialStore opens the on-disk credential store.
func credentialStore(cfg *config.Config) (*auth.Store, error) {
	path, err := cfg.CredentialsPath()
	if err != nil {
		return nil, fmt.Errorf("resolving credentials path: %w", err)
	}
	return auth.NewStore(path), nil
}

// buildClient assembles the API client from config and the stored token.
func buildClient(cfg *config.Config) (*api.Client, *auth.Store, error) {
	store, err := credentialStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	client := api.NewClient(cfg.API.BaseURL).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second).
		WithMaxRetries(cfg.API.MaxRetries).
		WithRateLimit(cfg.API.RequestsPerSecond, cfg.API.Burst).
		WithMaxUploadMB(cfg.API.MaxUploadMB).
		WithTokenSource(store.Token)
	return client, store, nil
}

// runTUI wires the full application and starts the Bubble Tea program.
func runTUI(cfg *config.Config) {
	logPath, _ := cfg.LogPath()
	logCloser, err := logging.Setup(logPath, cfg.Log.Level)
	if err != nil {
		// A broken log file is not worth refusing to start over.
		logCloser, _ = logging.Setup("", cfg.Log.Level)
	}
	defer logCloser.Close()
	logger := logging.Component("app")

	client, store, err := buildClient(cfg)
	if err != nil {
		fatal(err)
	}

	// Missing or corrupt credentials are not fatal; the welcome screen
	// tells the user to run `chitter login`.
	creds, err := store.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("could not load credentials")
		creds = nil
	}

	subscriber := realtime.NewSubscriber(cfg.RealtimeBase()).
		WithTokenSource(store.Token).
		WithBuffer(cfg.Realtime.SnapshotBuffer)
	streams := app.RealtimeStreams{Subscriber: subscriber}

	mir := mirror.New(streams, client, logging.Component("mirror"))

	var cache *storage.Cache
	if cfg.Cache.Enabled {
		if path, pathErr := cfg.CachePath(); pathErr == nil {
			cache, err = storage.Open(path, cfg.Cache.MaxRecords)
			if err != nil {
				logger.Warn().Err(err).Msg("snapshot cache unavailable")
				cache = nil
			}
		}
	}
	if cache != nil {
		defer cache.Close()
	}

	var watcher *exports.Watcher
	if cfg.Exports.Watch {
		if dir, dirErr := cfg.ExportDir(); dirErr == nil {
			debounce := time.Duration(cfg.Exports.DebounceMs) * time.Millisecond
			watcher, err = exports.NewWatcher(dir, debounce)
			if err != nil {
				logger.Warn().Err(err).Str("dir", dir).Msg("export watcher unavailable")
				watcher = nil
			} else if err := watcher.Watch(); err != nil {
				logger.Warn().Err(err).Msg("export watcher failed to start")
				watcher.Close()
				watcher = nil
			}
		}
	}
	if watcher != nil {
		defer watcher.Close()
	}

	m := app.New(cfg, logger, client, mir, cache, streams, creds, watcher)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running chitter: %v\n", err)
		os.Exit(1)
	}
	mir.Close()
}
