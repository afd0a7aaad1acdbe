// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution for
// chitter.
//
// The TUI is the default command; everything else is plumbing around it:
// credential entry (login/logout), status and config inspection, and
// non-interactive export of a chat's wrapped summary.
//
// # Key Types
//
//   - Command: enumeration of the available CLI commands
//   - Args: parsed command-line arguments
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdLogin:
//	    return cli.HandleLogin(store)
//	case cli.CmdStatus:
//	    return cli.HandleStatus(cfg, args)
//	// ... other commands
//	}
//
// Secrets only enter the system through this package, read without echo
// on a real terminal and stored encrypted by internal/auth.
package cli
