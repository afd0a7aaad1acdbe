// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
	"time"
)

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"no args starts the TUI", nil, CmdTUI},
		{"explicit tui", []string{"tui"}, CmdTUI},
		{"login", []string{"login"}, CmdLogin},
		{"logout", []string{"logout"}, CmdLogout},
		{"status", []string{"status"}, CmdStatus},
		{"status short", []string{"s"}, CmdStatus},
		{"config", []string{"config"}, CmdConfig},
		{"export", []string{"export", "abc"}, CmdExport},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"unknown falls back to help", []string{"frobnicate"}, CmdHelp},
		{"case insensitive", []string{"STATUS"}, CmdStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := parse(tt.argv)
			if got != tt.want {
				t.Errorf("parse(%v) = %v, want %v", tt.argv, got, tt.want)
			}
		})
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := parse([]string{"--json", "status", "--verbose"})
	if cmd != CmdStatus {
		t.Errorf("cmd = %v, want status", cmd)
	}
	if !args.JSON || !args.Verbose {
		t.Errorf("global flags not picked up anywhere in argv: %+v", args)
	}
}

func TestParseConfigArgs(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantSub string
		wantKey string
		wantVal string
	}{
		{"bare config shows", []string{"config"}, "show", "", ""},
		{"show", []string{"config", "show"}, "show", "", ""},
		{"set with key and value", []string{"config", "set", "ui.theme", "light"}, "set", "ui.theme", "light"},
		{"set missing value", []string{"config", "set", "ui.theme"}, "set", "ui.theme", ""},
		{"reset", []string{"config", "reset"}, "reset", "", ""},
		{"path", []string{"config", "path"}, "path", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := parse(tt.argv)
			if cmd != CmdConfig {
				t.Fatalf("cmd = %v, want config", cmd)
			}
			if args.Subcommand != tt.wantSub || args.ConfigKey != tt.wantKey || args.ConfigVal != tt.wantVal {
				t.Errorf("got sub=%q key=%q val=%q, want %q %q %q",
					args.Subcommand, args.ConfigKey, args.ConfigVal,
					tt.wantSub, tt.wantKey, tt.wantVal)
			}
		})
	}
}

func TestParseExportArgs(t *testing.T) {
	_, args := parse([]string{"export", "chat-42", "--format", "json"})
	if args.ChatID != "chat-42" {
		t.Errorf("ChatID = %q, want chat-42", args.ChatID)
	}
	if args.Format != "json" {
		t.Errorf("Format = %q, want json", args.Format)
	}

	_, args = parse([]string{"export", "chat-42"})
	if args.Format != "md" {
		t.Errorf("default format = %q, want md", args.Format)
	}

	_, args = parse([]string{"export", "--print", "chat-42"})
	if !args.Print || args.ChatID != "chat-42" {
		t.Errorf("flag order should not matter: %+v", args)
	}
}

func TestMaskToken(t *testing.T) {
	if got := maskToken("supersecrettoken"); got != "****oken" {
		t.Errorf("maskToken = %q", got)
	}
	if got := maskToken("ab"); got != "****" {
		t.Errorf("short tokens fully masked, got %q", got)
	}
}

func TestFormatSyncAge(t *testing.T) {
	if got := formatSyncAge(time.Time{}); got != "never" {
		t.Errorf("zero time = %q, want never", got)
	}
	if got := formatSyncAge(time.Now().Add(-30 * time.Second)); got != "just now" {
		t.Errorf("fresh sync = %q, want just now", got)
	}
	if got := formatSyncAge(time.Now().Add(-3 * time.Hour)); got != "3h ago" {
		t.Errorf("stale sync = %q, want 3h ago", got)
	}
}
