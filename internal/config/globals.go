// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import "sync"

// =============================================================================
// GLOBAL CONFIG ACCESS
// =============================================================================
// The TUI, CLI subcommands, and background workers all read configuration.
// A mutex-guarded global avoids threading the Config through every
// constructor while keeping reloads race-free.

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// Global returns the process-wide configuration, loading it on first access.
// A load failure falls back to defaults: the TUI must come up even with a
// broken config file.
func Global() *Config {
	globalMu.RLock()
	if globalCfg != nil {
		defer globalMu.RUnlock()
		return globalCfg
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalCfg == nil {
		cfg, err := Load()
		if err != nil || cfg == nil {
			cfg = Default()
		}
		globalCfg = cfg
	}
	return globalCfg
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}

// ReloadGlobal re-reads configuration from disk and swaps it in.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// ResetGlobalForTesting clears the global so tests start from a known state.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = nil
}
