package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/contentmod/portal/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and attempts to create a new account.
// Registration never authenticates: on success the user still has to log in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.sessions.Register(ctx, username, email, string(password)); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Success! You can now login.")
	return nil
}

// Login prompts for credentials and authenticates against the backend.
// On success the session is persisted locally and survives restarts until
// its server-issued TTL runs out.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	user, err := a.sessions.Login(ctx, username, string(password))
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", user.Username))
	return nil
}

// Logout ends the session. The local record is gone even when the
// server-side call fails.
func (a *App) Logout(ctx context.Context) error {
	a.sessions.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// Profile fetches and prints the current profile from the server.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.sessions.FetchProfile(ctx)
	if err != nil {
		printlnFn("Could not fetch profile:", err.Error())
		return err
	}

	printlnFn("Username:", user.Username)
	printlnFn("Email:   ", user.Email)
	printlnFn("Active:  ", user.IsActive)
	printlnFn("Created: ", user.CreatedAt)
	return nil
}

// EditProfile prompts for new profile values; empty input keeps the current
// value. Only the changed fields are sent.
func (a *App) EditProfile(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "New username (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var patch models.ProfilePatch
	if username != "" {
		patch.Username = &username
	}
	if email != "" {
		patch.Email = &email
	}
	if patch.Empty() {
		printlnFn("Nothing to change.")
		return nil
	}

	if err := a.sessions.UpdateProfile(ctx, patch); err != nil {
		printlnFn("Profile update failed:", err.Error())
		return err
	}

	printlnFn("Profile updated.")
	return nil
}
