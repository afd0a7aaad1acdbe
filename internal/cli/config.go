// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Configuration management commands.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/morganforge/chitter-tui/internal/config"
)

// HandleConfig dispatches `chitter config [show|set|reset|path]`.
func HandleConfig(cfg *config.Config, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(cfg, args)
	case "set":
		return handleConfigSet(cfg, args.ConfigKey, args.ConfigVal)
	case "reset":
		return handleConfigReset()
	case "path":
		return handleConfigPath(args)
	default:
		return fmt.Errorf("unknown config subcommand: %s", args.Subcommand)
	}
}

func handleConfigShow(cfg *config.Config, args Args) error {
	if args.JSON {
		return outputJSON(cfg)
	}

	fmt.Println(TitleStyle.Render("chitter configuration"))
	fmt.Println(renderField("api.base_url", cfg.API.BaseURL))
	fmt.Println(renderField("api.timeout_secs", strconv.Itoa(cfg.API.TimeoutSecs)))
	fmt.Println(renderField("api.max_retries", strconv.Itoa(cfg.API.MaxRetries)))
	fmt.Println(renderField("api.max_upload_mb", strconv.Itoa(cfg.API.MaxUploadMB)))
	fmt.Println(renderField("realtime.base_url", cfg.RealtimeBase()))
	fmt.Println(renderField("exports.watch_dir", cfg.Exports.WatchDir))
	fmt.Println(renderField("exports.watch", strconv.FormatBool(cfg.Exports.Watch)))
	fmt.Println(renderField("cache.enabled", strconv.FormatBool(cfg.Cache.Enabled)))
	fmt.Println(renderField("cache.max_records", strconv.Itoa(cfg.Cache.MaxRecords)))
	fmt.Println(renderField("ui.theme", cfg.UI.Theme))
	fmt.Println(renderField("ui.compact_mode", strconv.FormatBool(cfg.UI.CompactMode)))
	fmt.Println(renderField("log.level", cfg.Log.Level))
	return nil
}

// handleConfigSet updates one key and writes the file back.
func handleConfigSet(cfg *config.Config, key, value string) error {
	if key == "" {
		return fmt.Errorf("usage: chitter config set <key> <value>")
	}

	switch strings.ToLower(key) {
	case "api.base_url":
		cfg.API.BaseURL = value
	case "api.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s wants a number: %w", key, err)
		}
		cfg.API.TimeoutSecs = n
	case "api.max_upload_mb":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s wants a number: %w", key, err)
		}
		cfg.API.MaxUploadMB = n
	case "realtime.base_url":
		cfg.Realtime.BaseURL = value
	case "exports.watch_dir":
		cfg.Exports.WatchDir = value
	case "exports.watch":
		cfg.Exports.Watch = parseBool(value)
	case "cache.enabled":
		cfg.Cache.Enabled = parseBool(value)
	case "cache.max_records":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s wants a number: %w", key, err)
		}
		cfg.Cache.MaxRecords = n
	case "ui.theme":
		switch strings.ToLower(value) {
		case "dark", "light", "auto":
			cfg.UI.Theme = strings.ToLower(value)
		default:
			return fmt.Errorf("ui.theme must be dark, light or auto")
		}
	case "ui.compact_mode":
		cfg.UI.CompactMode = parseBool(value)
	case "log.level":
		cfg.Log.Level = strings.ToLower(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Println(SuccessStyle.Render(key + " updated"))
	return nil
}

func handleConfigReset() error {
	cfg := config.Default()
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Println(SuccessStyle.Render("Configuration reset to defaults."))
	return nil
}

func handleConfigPath(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	if args.JSON {
		return outputJSON(map[string]string{"path": path})
	}
	fmt.Println(path)
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}
