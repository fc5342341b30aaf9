package cli

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/contentmod/portal/internal/client/client"
	"github.com/contentmod/portal/internal/client/config"
	"github.com/contentmod/portal/internal/client/models"
	"github.com/contentmod/portal/internal/client/session"
	"github.com/contentmod/portal/internal/client/services"
	"github.com/contentmod/portal/internal/logging"
)

// sessionService is the slice of the session lifecycle service the CLI uses.
// Satisfied by *services.SessionService; tests provide stubs.
type sessionService interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context)
	FetchProfile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) error
	Restore(ctx context.Context) error
	Snapshot() services.Snapshot
	Subscribe() chan services.Snapshot
	Unsubscribe(ch chan services.Snapshot)
}

// keyService is the slice of the API-key service the CLI uses.
type keyService interface {
	List(ctx context.Context) ([]*models.APIKey, error)
	Create(ctx context.Context, req models.CreateKeyRequest) (*models.CreatedKey, error)
	UpdateStatus(ctx context.Context, keyID, status string) error
	UpdateRules(ctx context.Context, keyID string, rules []string) (*models.APIKey, error)
	Delete(ctx context.Context, keyID string) error
	Validate(ctx context.Context, apiKey string) (bool, error)
	Quota(ctx context.Context, keyID string) (*models.QuotaStatus, error)
	Moderate(ctx context.Context, apiKey, text string) (*models.ModerationResult, error)
}

type App struct {
	config   *config.Config
	sessions sessionService
	keys     keyService
	api      client.Client
	log      logging.Logger
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing session database", "error", err)
		return nil, err
	}

	store := session.NewStore(db)
	api := client.NewHTTPClient(c.BaseURL, c.RequestTimeout, store)

	return &App{
		config:   c,
		sessions: services.NewSessionService(api, store, logger),
		keys:     services.NewKeyService(api, logger),
		api:      api,
		log:      logger,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Snapshot().Authenticated
}

// StartSessionWatcher periodically re-validates an authenticated session by
// refreshing the profile. Busy and superseded results are expected noise:
// the lifecycle service already guarantees a stale refresh cannot clobber a
// newer state.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.sessions.Snapshot().Authenticated {
				continue
			}

			cctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
			_, err := a.sessions.FetchProfile(cctx)
			cancel()

			if err != nil && !errors.Is(err, services.ErrBusy) && !errors.Is(err, services.ErrSuperseded) {
				a.log.Debug(ctx, "background profile refresh failed", "error", err)
			}

		case <-ctx.Done():
			return
		}
	}
}

// watchSessionEnd announces when an authenticated session ends outside an
// explicit user command (expiry or server-side invalidation).
func (a *App) watchSessionEnd(ctx context.Context) {
	ch := a.sessions.Subscribe()

	was := a.sessions.Snapshot().Authenticated
	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				return
			}
			if was && !snap.Authenticated && !snap.Loading {
				printlnFn("Session ended, please login again.")
			}
			was = snap.Authenticated

		case <-ctx.Done():
			a.sessions.Unsubscribe(ch)
			return
		}
	}
}
