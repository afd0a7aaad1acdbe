// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app holds the top-level Bubble Tea model for the chitter TUI.
//
// This file defines keyboard bindings for every screen. The dashboard,
// wizard, and detail screens share one KeyMap; bindings that make no sense
// on the current screen are simply not matched there.
package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chitter interface.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NewChat  key.Binding
	Search   key.Binding
	Platform key.Binding
	Type     key.Binding
	Delete   key.Binding
	Refresh  key.Binding
	Copy     key.Binding
	Export   key.Binding
	Submit   key.Binding
	DropLast key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new chat"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Platform: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "cycle platform"),
		),
		Type: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle type"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete chat"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh files"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy share link"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export markdown"),
		),
		Submit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "send for analysis"),
		),
		DropLast: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "remove last member"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the status bar hint line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewChat, k.Search, k.Enter, k.Quit}
}

// FullHelp groups the bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.Enter, k.Back},
		// Dashboard
		{k.NewChat, k.Search, k.Platform, k.Type, k.Delete},
		// Detail
		{k.Copy, k.Export},
		// Wizard
		{k.Refresh, k.Submit, k.DropLast},
		// Global
		{k.Quit},
	}
}
