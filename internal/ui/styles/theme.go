// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for chitter TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	HeaderBrand    lipgloss.Style

	// ==========================================================================
	// CHAT CARD STYLES
	// ==========================================================================

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	CardPlatform lipgloss.Style
	CardMembers  lipgloss.Style
	CardMeta     lipgloss.Style

	// ==========================================================================
	// ANALYSIS STATUS BADGE STYLES
	// ==========================================================================

	BadgeCompleted  lipgloss.Style
	BadgePending    lipgloss.Style
	BadgeProcessing lipgloss.Style
	BadgeFailed     lipgloss.Style

	// ==========================================================================
	// FILTER BAR STYLES
	// ==========================================================================

	FilterBar           lipgloss.Style
	FilterLabel         lipgloss.Style
	FilterValue         lipgloss.Style
	FilterValueActive   lipgloss.Style
	SearchPrompt        lipgloss.Style
	SearchText          lipgloss.Style
	SearchPlaceholder   lipgloss.Style

	// ==========================================================================
	// WIZARD STYLES
	// ==========================================================================

	StepperDone    lipgloss.Style
	StepperCurrent lipgloss.Style
	StepperFuture  lipgloss.Style
	StepperLine    lipgloss.Style

	OptionButton       lipgloss.Style
	OptionButtonActive lipgloss.Style
	WizardTitle        lipgloss.Style
	WizardSubtitle     lipgloss.Style
	WizardHint         lipgloss.Style

	MemberChip     lipgloss.Style
	MemberChipSel  lipgloss.Style
	MappingArrow   lipgloss.Style
	PreviewBox     lipgloss.Style
	PreviewSender  lipgloss.Style

	// ==========================================================================
	// LEADERBOARD STYLES
	// ==========================================================================

	BoardBox       lipgloss.Style
	BoardTitle     lipgloss.Style
	BoardRank      lipgloss.Style
	BoardLeader    lipgloss.Style
	BoardMember    lipgloss.Style
	BoardScore     lipgloss.Style
	BoardTopic     lipgloss.Style
	PendingNotice  lipgloss.Style
	FailedNotice   lipgloss.Style

	// ==========================================================================
	// DETAIL VIEW STYLES
	// ==========================================================================

	SectionTitle lipgloss.Style
	AwardName    lipgloss.Style
	AwardReason  lipgloss.Style
	QuoteText    lipgloss.Style
	VibeBox      lipgloss.Style
	ChaosMeter   lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar     lipgloss.Style
	ConnLive      lipgloss.Style
	ConnCached    lipgloss.Style
	ConnOffline   lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner       lipgloss.Style
	PhaseText     lipgloss.Style
	PhaseDone     lipgloss.Style
	ProgressLabel lipgloss.Style

	// ==========================================================================
	// ERROR AND CONFIRM STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
	AlertInline  lipgloss.Style

	ConfirmBox          lipgloss.Style
	ConfirmTitle        lipgloss.Style
	ConfirmButton       lipgloss.Style
	ConfirmButtonActive lipgloss.Style

	// ==========================================================================
	// WELCOME / SIGN-IN STYLES
	// ==========================================================================

	WelcomeBox      lipgloss.Style
	WelcomeLogo     lipgloss.Style
	WelcomeVersion  lipgloss.Style
	WelcomeInfo     lipgloss.Style
	WelcomeKey      lipgloss.Style
	WelcomePressKey lipgloss.Style

	// ==========================================================================
	// STATISTICS STYLES
	// ==========================================================================

	StatsBar   lipgloss.Style
	StatsLabel lipgloss.Style
	StatsValue lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	// SuccessStyle - Used for success states with checkmark indicator
	SuccessStyle lipgloss.Style
	// ErrorStyle - Used for error states with X mark indicator
	ErrorStyle lipgloss.Style
	// WarningStyle - Used for warning states with warning triangle indicator
	WarningStyle lipgloss.Style
	// InfoStyle - Used for info states with info circle indicator
	InfoStyle lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Coffee).
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Lavender).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Lavender)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Coffee)

	// Chat cards
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.CardSelected = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(FocusRing).
		Background(SelectionBg).
		Padding(0, 2)

	t.CardTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.CardPlatform = lipgloss.NewStyle().
		Foreground(Coffee).
		Bold(true)

	t.CardMembers = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.CardMeta = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status badges
	t.BadgeCompleted = lipgloss.NewStyle().
		Foreground(StatusCompleted).
		Bold(true)

	t.BadgePending = lipgloss.NewStyle().
		Foreground(StatusPending)

	t.BadgeProcessing = lipgloss.NewStyle().
		Foreground(StatusProcessing)

	t.BadgeFailed = lipgloss.NewStyle().
		Foreground(StatusFailed).
		Bold(true)

	// Filter bar
	t.FilterBar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.FilterLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FilterValue = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FilterValueActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Lavender).
		Bold(true).
		Padding(0, 1)

	t.SearchPrompt = lipgloss.NewStyle().
		Foreground(Coffee).
		Bold(true)

	t.SearchText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.SearchPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Wizard stepper
	t.StepperDone = lipgloss.NewStyle().
		Foreground(Mint).
		Bold(true)

	t.StepperCurrent = lipgloss.NewStyle().
		Foreground(Lavender).
		Bold(true)

	t.StepperFuture = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StepperLine = lipgloss.NewStyle().
		Foreground(OverlayDim)

	// Wizard options
	t.OptionButton = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2).
		MarginRight(1)

	t.OptionButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Lavender).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Lavender).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)

	t.WizardTitle = lipgloss.NewStyle().
		Foreground(Coffee).
		Bold(true)

	t.WizardSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.WizardHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Member chips and name mapping
	t.MemberChip = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 1).
		MarginRight(1)

	t.MemberChipSel = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Mint).
		Bold(true).
		Padding(0, 1).
		MarginRight(1)

	t.MappingArrow = lipgloss.NewStyle().
		Foreground(Coffee).
		Bold(true)

	t.PreviewBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Background(SurfaceDim).
		Padding(0, 1)

	t.PreviewSender = lipgloss.NewStyle().
		Foreground(Mint).
		Bold(true)

	// Leaderboards
	t.BoardBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.BoardTitle = lipgloss.NewStyle().
		Bold(true)

	t.BoardRank = lipgloss.NewStyle().
		Foreground(TextMuted).
		Width(3).
		Align(lipgloss.Right).
		MarginRight(1)

	t.BoardLeader = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.BoardMember = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.BoardScore = lipgloss.NewStyle().
		Foreground(Coffee).
		Bold(true).
		Align(lipgloss.Right)

	t.BoardTopic = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.PendingNotice = lipgloss.NewStyle().
		Foreground(Peach).
		Italic(true)

	t.FailedNotice = lipgloss.NewStyle().
		Foreground(Rose).
		Italic(true)

	// Detail view
	t.SectionTitle = lipgloss.NewStyle().
		Foreground(Coffee).
		Bold(true).
		Underline(true)

	t.AwardName = lipgloss.NewStyle().
		Foreground(Peach).
		Bold(true)

	t.AwardReason = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(2)

	t.QuoteText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true).
		PaddingLeft(2)

	t.VibeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Lavender).
		Padding(0, 2)

	t.ChaosMeter = lipgloss.NewStyle().
		Foreground(Lavender).
		Bold(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Coffee).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ConnLive = lipgloss.NewStyle().
		Foreground(Mint).
		Bold(true)

	t.ConnCached = lipgloss.NewStyle().
		Foreground(Peach).
		Bold(true)

	t.ConnOffline = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Coffee).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner and loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(Lavender)

	t.PhaseText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.PhaseDone = lipgloss.NewStyle().
		Foreground(Mint)

	t.ProgressLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Error boxes and inline alerts
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Padding(1, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.AlertInline = lipgloss.NewStyle().
		Foreground(Rose).
		Italic(true)

	// Delete confirmation
	t.ConfirmBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Peach).
		Background(Surface).
		Padding(1, 2)

	t.ConfirmTitle = lipgloss.NewStyle().
		Foreground(Peach).
		Bold(true)

	t.ConfirmButton = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2).
		MarginRight(1)

	t.ConfirmButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Rose).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)

	// Welcome screen
	t.WelcomeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Lavender).
		Padding(2, 4).
		Align(lipgloss.Center)

	t.WelcomeLogo = lipgloss.NewStyle().
		Foreground(Coffee).
		Bold(true)

	t.WelcomeVersion = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.WelcomeInfo = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.WelcomeKey = lipgloss.NewStyle().
		Foreground(Coffee).
		Bold(true)

	t.WelcomePressKey = lipgloss.NewStyle().
		Foreground(Lavender).
		Blink(true)

	// Statistics
	t.StatsBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.StatsLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatsValue = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	// SuccessStyle - High contrast green with bold for colorblind accessibility
	// ACCESSIBILITY: Use with StatusIndicators.Success symbol
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	// ErrorStyle - High contrast red with bold for colorblind accessibility
	// ACCESSIBILITY: Use with StatusIndicators.Error symbol
	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	// WarningStyle - High contrast amber with bold for colorblind accessibility
	// ACCESSIBILITY: Use with StatusIndicators.Warning symbol
	t.WarningStyle = lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)

	// InfoStyle - High contrast blue with bold for colorblind accessibility
	// ACCESSIBILITY: Use with StatusIndicators.Info symbol
	t.InfoStyle = lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true)
}

// BadgeFor returns the style and indicator for an analysis state.
func (t *Theme) BadgeFor(status string) (lipgloss.Style, string) {
	switch status {
	case "completed":
		return t.BadgeCompleted, StatusIndicators.Success
	case "failed":
		return t.BadgeFailed, StatusIndicators.Error
	case "processing":
		return t.BadgeProcessing, StatusIndicators.Active
	default:
		return t.BadgePending, StatusIndicators.Pending
	}
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
