// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for chitter TUI.
package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// COLOR DEFINITION TESTS
// =============================================================================

func TestPrimaryColors(t *testing.T) {
	colors := []struct {
		name  string
		color lipgloss.AdaptiveColor
	}{
		{"Coffee", Coffee},
		{"CoffeeDeep", CoffeeDeep},
		{"Lavender", Lavender},
		{"LavenderDeep", LavenderDeep},
		{"Mint", Mint},
		{"MintDeep", MintDeep},
	}

	for _, c := range colors {
		if c.color.Light == "" || c.color.Dark == "" {
			t.Errorf("%s color should define both light and dark values", c.name)
		}
	}
}

func TestSemanticColors(t *testing.T) {
	colors := []struct {
		name  string
		color lipgloss.AdaptiveColor
	}{
		{"Rose", Rose},
		{"RoseDeep", RoseDeep},
		{"Peach", Peach},
		{"PeachDeep", PeachDeep},
	}

	for _, c := range colors {
		if c.color.Light == "" || c.color.Dark == "" {
			t.Errorf("%s color should define both light and dark values", c.name)
		}
	}
}

func TestSurfaceAndTextColors(t *testing.T) {
	colors := []struct {
		name  string
		color lipgloss.AdaptiveColor
	}{
		{"Surface", Surface},
		{"SurfaceDim", SurfaceDim},
		{"SurfaceBright", SurfaceBright},
		{"Overlay", Overlay},
		{"OverlayDim", OverlayDim},
		{"TextPrimary", TextPrimary},
		{"TextSecondary", TextSecondary},
		{"TextMuted", TextMuted},
		{"TextInverse", TextInverse},
	}

	for _, c := range colors {
		if c.color.Light == "" || c.color.Dark == "" {
			t.Errorf("%s color should define both light and dark values", c.name)
		}
	}
}

func TestBoardAccentsAreDistinct(t *testing.T) {
	accents := map[string]lipgloss.AdaptiveColor{
		"BoardChaos":  BoardChaos,
		"BoardComedy": BoardComedy,
		"BoardTopics": BoardTopics,
		"BoardCringe": BoardCringe,
	}

	seen := make(map[string]string)
	for name, c := range accents {
		key := c.Light + "/" + c.Dark
		if prev, ok := seen[key]; ok {
			t.Errorf("board accents %s and %s share color %s", name, prev, key)
		}
		seen[key] = name
	}
}

func TestAnalysisStateColors(t *testing.T) {
	// Pending and completed must not share a color; they carry meaning.
	if StatusCompleted == StatusPending {
		t.Error("completed and pending states should use distinct colors")
	}
	if StatusFailed == StatusCompleted {
		t.Error("failed and completed states should use distinct colors")
	}
}

// =============================================================================
// STATUS INDICATORS TESTS
// =============================================================================

func TestStatusIndicators(t *testing.T) {
	indicators := []struct {
		name  string
		value string
	}{
		{"Success", StatusIndicators.Success},
		{"Error", StatusIndicators.Error},
		{"Warning", StatusIndicators.Warning},
		{"Info", StatusIndicators.Info},
		{"Pending", StatusIndicators.Pending},
		{"Active", StatusIndicators.Active},
	}

	seen := make(map[string]string)
	for _, ind := range indicators {
		if ind.value == "" {
			t.Errorf("StatusIndicators.%s should be defined", ind.name)
		}
		if prev, ok := seen[ind.value]; ok {
			t.Errorf("Duplicate status indicator %q used for both %s and %s", ind.value, ind.name, prev)
		}
		seen[ind.value] = ind.name
	}
}

func TestStatusIndicatorsASCIIOnly(t *testing.T) {
	// ACCESSIBILITY: indicators must survive terminals without Unicode fonts.
	indicators := []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Pending,
		StatusIndicators.Active,
	}

	for _, ind := range indicators {
		for _, r := range ind {
			if r > 127 {
				t.Errorf("indicator %q contains non-ASCII rune %q", ind, r)
			}
		}
	}
}

// =============================================================================
// RENDER FUNCTION TESTS
// =============================================================================

func TestRenderSuccess(t *testing.T) {
	msg := "Chat uploaded"
	result := RenderSuccess(msg)

	if !strings.Contains(result, msg) {
		t.Errorf("RenderSuccess() = %q, should contain %q", result, msg)
	}
	if !strings.Contains(result, StatusIndicators.Success) {
		t.Error("RenderSuccess() should contain success indicator")
	}
}

func TestRenderError(t *testing.T) {
	msg := "Upload failed"
	result := RenderError(msg)

	if !strings.Contains(result, msg) {
		t.Errorf("RenderError() = %q, should contain %q", result, msg)
	}
	if !strings.Contains(result, StatusIndicators.Error) {
		t.Error("RenderError() should contain error indicator")
	}
}

func TestRenderWarning(t *testing.T) {
	msg := "Analysis still brewing"
	result := RenderWarning(msg)

	if !strings.Contains(result, msg) {
		t.Errorf("RenderWarning() = %q, should contain %q", result, msg)
	}
	if !strings.Contains(result, StatusIndicators.Warning) {
		t.Error("RenderWarning() should contain warning indicator")
	}
}

func TestRenderInfo(t *testing.T) {
	msg := "Signed in as dana@example.com"
	result := RenderInfo(msg)

	if !strings.Contains(result, msg) {
		t.Errorf("RenderInfo() = %q, should contain %q", result, msg)
	}
	if !strings.Contains(result, StatusIndicators.Info) {
		t.Error("RenderInfo() should contain info indicator")
	}
}

// =============================================================================
// EDGE CASE TESTS
// =============================================================================

func TestRenderFunctionsEmptyString(t *testing.T) {
	funcs := []struct {
		name   string
		result string
	}{
		{"RenderSuccess", RenderSuccess("")},
		{"RenderError", RenderError("")},
		{"RenderWarning", RenderWarning("")},
		{"RenderInfo", RenderInfo("")},
	}

	for _, f := range funcs {
		// Should still contain the indicator even with empty message
		if f.result == "" {
			t.Errorf("%s(\"\") should return non-empty (at least the indicator)", f.name)
		}
	}
}

func TestRenderFunctionsLongString(t *testing.T) {
	msg := strings.Repeat("Very long member name ", 100)

	funcs := []struct {
		name   string
		result string
	}{
		{"RenderSuccess", RenderSuccess(msg)},
		{"RenderError", RenderError(msg)},
		{"RenderWarning", RenderWarning(msg)},
		{"RenderInfo", RenderInfo(msg)},
	}

	for _, f := range funcs {
		if !strings.Contains(f.result, msg) {
			t.Errorf("%s() should handle long messages", f.name)
		}
	}
}

func TestRenderFunctionsSpecialCharacters(t *testing.T) {
	// Member names come from chat exports and can hold anything.
	messages := []string{
		"Tia \x00 Mowry",
		"symbols: @#$%^&*()",
		"unicode sender: 你好",
	}

	for _, msg := range messages {
		if result := RenderSuccess(msg); len(result) == 0 {
			t.Errorf("RenderSuccess() should produce output for %q", msg)
		}
		if result := RenderError(msg); len(result) == 0 {
			t.Errorf("RenderError() should produce output for %q", msg)
		}
	}
}
