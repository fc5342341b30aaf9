package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	snap := a.sessions.Snapshot()
	switch {
	case snap.Loading:
		return "(...)"
	case snap.Authenticated && snap.User != nil:
		return fmt.Sprintf("(%s)", snap.User.Username)
	default:
		return ""
	}
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the moderation portal CLI (type 'help' for commands)")

	// Rehydrate a stored session before the first prompt.
	if err := a.sessions.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}

	go a.watchSessionEnd(ctx)
	go a.StartSessionWatcher(ctx, a.config.ProfileRefreshInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
