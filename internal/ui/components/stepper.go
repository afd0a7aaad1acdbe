// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for chitter TUI.
package components

import (
	"strings"

	"github.com/morganforge/chitter-tui/internal/ui/styles"
	"github.com/morganforge/chitter-tui/internal/wizard"
)

// =============================================================================
// STEPPER COMPONENT - Wizard progress indicator
// =============================================================================

// Stepper renders the wizard step trail.
type Stepper struct {
	theme *styles.Theme
}

// NewStepper creates a stepper renderer.
func NewStepper(theme *styles.Theme) *Stepper {
	return &Stepper{theme: theme}
}

// Render renders the trail for the current step.
// Wide terminals get labels, narrow ones get numbered dots.
func (s *Stepper) Render(current wizard.Step, width int) string {
	if width >= 80 {
		return s.renderLabeled(current)
	}
	return s.renderCompact(current)
}

// renderLabeled renders: [OK] Platform --- (2) Type --- ( ) Upload ...
func (s *Stepper) renderLabeled(current wizard.Step) string {
	connector := s.theme.StepperLine.Render(" " + strings.Repeat(styles.TreeChars.Dash, 3) + " ")

	parts := make([]string, 0, wizard.StepCount)
	for i := wizard.Step(0); i < wizard.StepCount; i++ {
		parts = append(parts, s.renderStep(i, current, true))
	}
	return strings.Join(parts, connector)
}

// renderCompact renders: (#)-(#)-(3)-( )-( )
func (s *Stepper) renderCompact(current wizard.Step) string {
	connector := s.theme.StepperLine.Render(styles.TreeChars.Dash)

	parts := make([]string, 0, wizard.StepCount)
	for i := wizard.Step(0); i < wizard.StepCount; i++ {
		parts = append(parts, s.renderStep(i, current, false))
	}
	return strings.Join(parts, connector)
}

func (s *Stepper) renderStep(step, current wizard.Step, labeled bool) string {
	var marker string
	var style = s.theme.StepperFuture

	switch {
	case step < current:
		marker = styles.StatusIndicators.Success
		style = s.theme.StepperDone
	case step == current:
		marker = "(" + toStr(int(step)+1) + ")"
		style = s.theme.StepperCurrent
	default:
		marker = "( )"
	}

	if labeled {
		return style.Render(marker + " " + step.Title())
	}
	return style.Render(marker)
}
