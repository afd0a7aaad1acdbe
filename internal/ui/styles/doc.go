// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the chitter TUI
application.

This package defines the complete color palette, typography, and animation
system used throughout the application. All colors use Lip Gloss AdaptiveColor
for automatic light/dark terminal detection.

# Color System (colors.go)

## Primary Accent Colors

  - Coffee - Brand color for headers, scores, and key hints
  - Lavender - Secondary accent for selections and the chaos board
  - Mint - Success states, completed analyses, and the comedy board
  - Peach - Warnings, pending analyses, and the cringe board
  - Rose - Errors, red flags, and delete confirmations

## Board Accents

Each leaderboard has its own accent so the detail view reads at a glance:

	BoardChaos  - Lavender
	BoardComedy - Mint
	BoardTopics - Coffee
	BoardCringe - Peach

## Surface Colors

Layered surface system for depth:

	Surface       - Main background
	SurfaceDim    - Subtle backgrounds (headers, status bars)
	SurfaceBright - Highlighted elements
	Overlay       - Borders and separators

## Text Colors

Hierarchical text color system:

	TextPrimary   - Main content text
	TextSecondary - Supporting text
	TextMuted     - De-emphasized text
	TextInverse   - Text on colored backgrounds

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}
	if theme.HasTrueColor {
		// Terminal supports 16M colors
	}

Analysis states map to badge styles through BadgeFor:

	style, indicator := theme.BadgeFor("completed")

# Animation System (animations.go)

## Spinner Configurations

Pre-defined spinner styles:

	LineSpinner  - Simple line rotation
	DotsSpinner  - Classic three-dot animation
	BrewSpinner  - Pulsing cup shown while an upload is digested
	PhaseSpinner - Progress dots for the submission phases

## Status Indicators

ASCII indicators for various states:

	StatusIndicators.Success - [OK]
	StatusIndicators.Error   - [X]
	StatusIndicators.Warning - [!]
	StatusIndicators.Info    - [i]

# Usage Example

	import "github.com/morganforge/chitter-tui/internal/ui/styles"

	// Use adaptive colors
	headerStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextPrimary)

	// Use theme for runtime detection
	theme := styles.NewTheme()
	badge, indicator := theme.BadgeFor("processing")

	// Use spinner configuration
	spinner := styles.DotsSpinner
	frame := spinner.Frame(tick)
*/
package styles
