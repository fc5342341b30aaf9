// Package cli provides the interactive moderation-portal command-line client.
//
// It wires configuration, the local session store, the HTTP API client, and an
// interactive REPL. Typical flow: restore a persisted session, start a
// background watcher that re-validates the session, and execute user commands.
//
// Key features:
//   - Register / Login / Logout (session persisted across restarts)
//   - Profile view and edit
//   - API key management: list, create, status, rules, revoke
//   - Key validation, quota inspection, and text moderation calls
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartSessionWatcher, and runREPL for details.
package cli
