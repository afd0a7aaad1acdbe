// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the chitter TUI.

This package contains a collection of styled components built on top of
the Bubble Tea and Lip Gloss libraries. Each component is designed to be
visually polished and consistent with the chitter design language.

# Core Components

## Display Components

Header (header.go) - Application header with logo, signed-in email and tagline.
StatusBar (statusbar.go) - Bottom status bar with connection state, chat counts and shortcuts.
Card (card.go) - Dashboard card for one chat with platform icon, members and analysis state.
Leaderboard (leaderboard.go) - Ranked personality boards rendered from a completed analysis.
Preview (preview.go) - Excerpt view of a chat export file with a sender legend.

## Input and Flow

FilterBar (filterbar.go) - Search input plus platform and conversation-type filters.
Stepper (stepper.go) - Step indicator for the upload wizard.
Confirm (confirm.go) - Modal yes/no dialog that defaults to the safe choice.

# Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	header := components.NewHeader(theme)
	header.SetWidth(80)
	header.SetEmail("sam@example.com")
	view := header.View()

Stateful components (FilterBar, Confirm) follow the Bubble Tea shape and
return updated copies from Update; pure display components expose Render
methods that take the data to draw.

# Helper Functions

The package includes shared helper functions in helpers.go:
  - toStr() - Integer to string conversion without fmt
  - fmtNumber() - Thousands-separated message counts
  - truncate() - Safe string truncation with Unicode support
*/
package components
