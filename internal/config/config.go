// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// chitter-tui.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.chitterchatter/config.toml
//   - ~/.chitterchatter/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/morganforge/chitter-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chitter-tui configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`

	// API configuration (submission endpoint)
	API APIConfig `toml:"api" json:"api"`

	// Realtime configuration (subscription stream)
	Realtime RealtimeConfig `toml:"realtime" json:"realtime"`

	// Auth configuration (credential storage)
	Auth AuthConfig `toml:"auth" json:"auth"`

	// Exports configuration (local chat-export discovery)
	Exports ExportsConfig `toml:"exports" json:"exports"`

	// Cache configuration (offline snapshot cache)
	Cache CacheConfig `toml:"cache" json:"cache"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`
}

// APIConfig contains submission endpoint configuration.
type APIConfig struct {
	// BaseURL is the ChitterChatter API base, e.g. "https://api.chitterchatter.app"
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// MaxRetries is the retry budget for transient failures (5xx, 429)
	MaxRetries int `toml:"max_retries" json:"max_retries"`
	// RequestsPerSecond rate-limits mutating requests (submit, delete).
	// 0 disables client-side limiting.
	RequestsPerSecond float64 `toml:"requests_per_second" json:"requests_per_second"`
	// Burst is the rate limiter burst size
	Burst int `toml:"burst" json:"burst"`
	// MaxUploadMB caps the size of chat export files accepted for upload
	MaxUploadMB int `toml:"max_upload_mb" json:"max_upload_mb"`
}

// RealtimeConfig contains subscription stream configuration.
type RealtimeConfig struct {
	// BaseURL overrides the API base for the event stream. Empty = API base.
	BaseURL string `toml:"base_url" json:"base_url"`
	// SnapshotBuffer is the channel buffer for snapshot delivery
	SnapshotBuffer int `toml:"snapshot_buffer" json:"snapshot_buffer"`
}

// AuthConfig contains credential storage configuration.
type AuthConfig struct {
	// CredentialsPath is where the encrypted token file lives
	// (empty = ~/.chitterchatter/credentials.json)
	CredentialsPath string `toml:"credentials_path" json:"credentials_path"`
}

// ExportsConfig contains local chat-export discovery configuration.
type ExportsConfig struct {
	// WatchDir is the directory scanned for chat export files
	// (empty = ~/Downloads)
	WatchDir string `toml:"watch_dir" json:"watch_dir"`
	// Watch enables live fsnotify watching of WatchDir
	Watch bool `toml:"watch" json:"watch"`
	// DebounceMs coalesces rapid filesystem events
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms"`
}

// CacheConfig contains offline snapshot cache configuration.
type CacheConfig struct {
	// Enabled controls whether the snapshot cache is active
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the sqlite database path (empty = ~/.chitterchatter/cache.db)
	Path string `toml:"path" json:"path"`
	// MaxRecords is the maximum number of cached chat records
	MaxRecords int `toml:"max_records" json:"max_records"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// CompactMode uses a more compact list layout
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
	// PreviewLines is how many lines of the chat export to show in the
	// wizard's upload preview
	PreviewLines int `toml:"preview_lines" json:"preview_lines"`
}

// LogConfig contains log output configuration.
type LogConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// Path is the log file path (empty = ~/.chitterchatter/chitter.log).
	// Logs never go to stdout: the terminal belongs to the TUI.
	Path string `toml:"path" json:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		API: APIConfig{
			BaseURL:           "https://api.chitterchatter.app",
			TimeoutSecs:       60,
			MaxRetries:        3,
			RequestsPerSecond: 2,
			Burst:             4,
			MaxUploadMB:       25,
		},

		Realtime: RealtimeConfig{
			BaseURL:        "",
			SnapshotBuffer: 8,
		},

		Auth: AuthConfig{
			CredentialsPath: "",
		},

		Exports: ExportsConfig{
			WatchDir:   "",
			Watch:      true,
			DebounceMs: 500,
		},

		Cache: CacheConfig{
			Enabled:    true,
			Path:       "",
			MaxRecords: 500,
		},

		UI: UIConfig{
			Theme:        "dark",
			CompactMode:  false,
			PreviewLines: 12,
		},

		Log: LogConfig{
			Level: "info",
			Path:  "",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the chitter-tui configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chitterchatter"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// CredentialsPath resolves the credential file path, falling back to the
// default under the config dir.
func (c *Config) CredentialsPath() (string, error) {
	if c.Auth.CredentialsPath != "" {
		return c.Auth.CredentialsPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.json"), nil
}

// CachePath resolves the snapshot cache path, falling back to the default
// under the config dir.
func (c *Config) CachePath() (string, error) {
	if c.Cache.Path != "" {
		return c.Cache.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache.db"), nil
}

// LogPath resolves the log file path, falling back to the default under the
// config dir.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "chitter.log"), nil
}

// ExportDir resolves the chat-export directory, falling back to ~/Downloads.
func (c *Config) ExportDir() (string, error) {
	if c.Exports.WatchDir != "" {
		return c.Exports.WatchDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}

// RealtimeBase resolves the event-stream base URL, falling back to the API
// base.
func (c *Config) RealtimeBase() string {
	if c.Realtime.BaseURL != "" {
		return c.Realtime.BaseURL
	}
	return c.API.BaseURL
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only) to protect
// anything sensitive a user pastes into them.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err // File doesn't exist or not accessible
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	cfg2, err := finishLoad(cfg)
	if err != nil {
		return nil, err
	}
	// Return defaults (with any load error for informational purposes)
	return cfg2, loadErr
}

// finishLoad applies env overrides, defaults, and validation in the order
// every load path shares.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Log warning but don't fail - permissions might not be fixable on all systems
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
// SECURITY: Checks and fixes file permissions on load.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		// Default to TOML
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// SECURITY: Ensure permissions are correct even if file already existed
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# chitter-tui configuration file")
	fmt.Fprintln(file, "# Generated by chitter - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveJSON(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies CHITTER_* environment variables on top of the
// loaded configuration. Environment always wins over file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CHITTER_API_BASE"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("CHITTER_API_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("CHITTER_API_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.API.MaxRetries = n
		}
	}
	if v := os.Getenv("CHITTER_REALTIME_BASE"); v != "" {
		c.Realtime.BaseURL = v
	}
	if v := os.Getenv("CHITTER_EXPORT_DIR"); v != "" {
		c.Exports.WatchDir = v
	}
	if v := os.Getenv("CHITTER_CACHE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = enabled
		}
	}
	if v := os.Getenv("CHITTER_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("CHITTER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CHITTER_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
}

// =============================================================================
// DEFAULTS & VALIDATION
// =============================================================================

// SetDefaults fills in any zero values with defaults. Partial config files
// are the common case: users set an API base and nothing else.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = defaults.API.TimeoutSecs
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = defaults.API.MaxRetries
	}
	if c.API.Burst == 0 {
		c.API.Burst = defaults.API.Burst
	}
	if c.API.MaxUploadMB == 0 {
		c.API.MaxUploadMB = defaults.API.MaxUploadMB
	}

	if c.Realtime.SnapshotBuffer == 0 {
		c.Realtime.SnapshotBuffer = defaults.Realtime.SnapshotBuffer
	}

	if c.Exports.DebounceMs == 0 {
		c.Exports.DebounceMs = defaults.Exports.DebounceMs
	}

	if c.Cache.MaxRecords == 0 {
		c.Cache.MaxRecords = defaults.Cache.MaxRecords
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.PreviewLines == 0 {
		c.UI.PreviewLines = defaults.UI.PreviewLines
	}

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("invalid URL '%s'", c.API.BaseURL),
		})
	}
	if c.API.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: "timeout cannot be negative",
		})
	}
	if c.API.MaxRetries < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.max_retries",
			Message: "retries cannot be negative",
		})
	}
	if c.API.RequestsPerSecond < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.requests_per_second",
			Message: "rate cannot be negative",
		})
	}

	if c.Realtime.BaseURL != "" {
		if u, err := url.Parse(c.Realtime.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "realtime.base_url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Realtime.BaseURL),
			})
		}
	}

	if c.Exports.DebounceMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "exports.debounce_ms",
			Message: "debounce cannot be negative",
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: trace, debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
