// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for chitter.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdStatus
	CmdConfig
	CmdExport
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	ChatID     string
	Format     string
	Print      bool

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `chitter - your group chats, roasted

Chitter uploads exported chat conversations and shows the personality
analysis ChitterChatter brews for them: red flags, comedy gold, group
vibe and the rest.

Usage:
  chitter                      Start the TUI (default)
  chitter login                Store your access token
  chitter logout               Forget the stored credentials
  chitter status, s            Show connection and cache status
  chitter config [show|set|reset|path]
                               Configuration management
  chitter export <chat-id>     Export a chat's wrapped summary
    --format md|json           Output format (default: md)
    --print                    Render to the terminal instead of a file
  chitter version              Show version information
  chitter help                 Show this help

Global flags:
  --json                       Machine-readable output where supported
  --verbose                    More detail
  --quiet                      Less detail

Configuration keys for 'chitter config set':
  api.base_url                 REST API base URL
  realtime.base_url            Realtime store base URL
  exports.watch_dir            Directory scanned for chat exports
  ui.theme                     dark, light or auto
  log.level                    trace, debug, info, warn, error

Examples:
  chitter login
  chitter export 4f8a12 --format md
  chitter config set ui.theme light
`

// PrintUsage prints the usage text.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("chitter version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parse(os.Args[1:])
}

func parse(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "login":
		return CmdLogin, args

	case "logout":
		return CmdLogout, args

	case "status", "s":
		return CmdStatus, args

	case "config":
		parseConfigArgs(&args, remaining)
		return CmdConfig, args

	case "export":
		parseExportArgs(&args, remaining)
		return CmdExport, args

	case "version", "-v", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		return CmdHelp, args
	}
}

// parseGlobalFlags strips global flags from anywhere in the argument list.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var args Args
	var remaining []string
	for _, a := range argv {
		switch a {
		case "--json":
			args.JSON = true
		case "--verbose":
			args.Verbose = true
		case "--quiet", "-q":
			args.Quiet = true
		default:
			remaining = append(remaining, a)
		}
	}
	return remaining, args
}

// parseConfigArgs handles `config [show|set <key> <value>|reset|path]`.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = strings.ToLower(remaining[0])
	if args.Subcommand == "set" {
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}

// parseExportArgs handles `export <chat-id> [--format md|json] [--print]`.
func parseExportArgs(args *Args, remaining []string) {
	args.Format = "md"
	for i := 0; i < len(remaining); i++ {
		switch remaining[i] {
		case "--format":
			if i+1 < len(remaining) {
				args.Format = strings.ToLower(remaining[i+1])
				i++
			}
		case "--print":
			args.Print = true
		default:
			if args.ChatID == "" {
				args.ChatID = remaining[i]
			}
		}
	}
}
