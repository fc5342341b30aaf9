package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ListKeys(ctx context.Context) error
	AddKey(ctx context.Context) error
	KeyStatus(ctx context.Context) error
	KeyRules(ctx context.Context) error
	DeleteKey(ctx context.Context) error
	ValidateKey(ctx context.Context) error
	Quota(ctx context.Context) error
	Moderate(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the portal CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands when not logged in: help, register, login, validate, exit.
// Commands when logged in: help, profile, edit, (k)eys, addkey, keystatus,
// keyrules, delkey, validate, quota, moderate, logout, exit.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("portal %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, edit, (k)eys, addkey, keystatus, keyrules, delkey, validate, quota, moderate, logout, exit")
			} else {
				printlnFn("Available commands: register, login, validate, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "k", "keys":
			_ = a.ListKeys(ctx)

		case "addkey":
			_ = a.AddKey(ctx)

		case "keystatus":
			_ = a.KeyStatus(ctx)

		case "keyrules":
			_ = a.KeyRules(ctx)

		case "delkey":
			_ = a.DeleteKey(ctx)

		case "validate":
			_ = a.ValidateKey(ctx)

		case "quota":
			_ = a.Quota(ctx)

		case "moderate":
			_ = a.Moderate(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
