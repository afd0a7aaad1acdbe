// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// login.go - Credential entry and removal.
//
// The TUI never prompts for secrets; tokens enter the system here, on a
// real terminal, and are stored encrypted at rest.
package cli

import (
	"fmt"
	"strings"

	"github.com/morganforge/chitter-tui/internal/auth"
)

// HandleLogin prompts for the account details and stores them encrypted.
// The token is read without echo.
func HandleLogin(store *auth.Store) error {
	if err := RequiresTTY("login"); err != nil {
		return err
	}

	fmt.Println(TitleStyle.Render("Sign in to ChitterChatter"))
	fmt.Println("Your user ID and access token are on the account page at")
	fmt.Println("https://chitterchatter.app/account")
	fmt.Println()

	email := promptInput("Email: ")
	if email == "" {
		return fmt.Errorf("email must not be empty")
	}
	userID := promptInput("User ID: ")
	if userID == "" {
		return fmt.Errorf("user ID must not be empty")
	}

	token, err := ReadSecret("Access token (hidden): ")
	if err != nil {
		return err
	}
	defer auth.ZeroBytes(token)
	if len(strings.TrimSpace(string(token))) == 0 {
		return fmt.Errorf("access token must not be empty")
	}

	creds := &auth.Credentials{
		UserID: userID,
		Email:  email,
		Token:  strings.TrimSpace(string(token)),
	}
	if err := store.Save(creds); err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}

	fmt.Println()
	fmt.Println(SuccessStyle.Render("Signed in as " + email))
	fmt.Println("Run chitter to open your dashboard.")
	return nil
}

// HandleLogout removes the stored credentials.
func HandleLogout(store *auth.Store) error {
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	fmt.Println(SuccessStyle.Render("Signed out."))
	return nil
}
