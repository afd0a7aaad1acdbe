// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export.go - Export a chat's wrapped summary from the command line.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/morganforge/chitter-tui/internal/api"
	"github.com/morganforge/chitter-tui/internal/config"
	"github.com/morganforge/chitter-tui/internal/export"
)

// HandleExport fetches one record and writes its wrapped summary. With
// --print the markdown is rendered straight to the terminal instead.
func HandleExport(cfg *config.Config, client *api.Client, args Args) error {
	if args.ChatID == "" {
		return fmt.Errorf("usage: chitter export <chat-id> [--format md|json] [--print]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rec, err := client.GetChat(ctx, args.ChatID)
	if err != nil {
		return fmt.Errorf("fetch chat: %w", err)
	}

	opts := export.DefaultOptions()
	opts.Theme = cfg.UI.Theme

	if args.Print {
		rendered, err := export.RenderTerminal(rec, opts, GetTerminalWidth())
		if err != nil {
			return fmt.Errorf("render summary: %w", err)
		}
		fmt.Print(rendered)
		return nil
	}

	var exporter export.Exporter
	switch args.Format {
	case "", "md", "markdown":
		exporter = export.NewMarkdownExporter(opts)
	case "json":
		exporter = &export.JSONExporter{}
	default:
		return fmt.Errorf("unknown format %q, want md or json", args.Format)
	}

	path, err := export.ExportToFile(rec, exporter, opts)
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Println(SuccessStyle.Render("Saved " + path))
	return nil
}
