package client

import (
	"context"

	"github.com/contentmod/portal/internal/client/models"
)

// TokenSource supplies the current bearer token for outbound requests.
// An empty token means "no credential"; the request is then sent bare.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the wire-level contract with the moderation backend.
// Implementations attach the bearer credential when one is available but do
// not judge its validity; the server is the final arbiter.
type Client interface {
	Close() error

	// Auth endpoints.
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) error

	// API-key endpoints.
	Keys(ctx context.Context) ([]*models.APIKey, error)
	CreateKey(ctx context.Context, req models.CreateKeyRequest) (*models.CreatedKey, error)
	UpdateKeyStatus(ctx context.Context, keyID, status string) error
	UpdateKeyRules(ctx context.Context, keyID string, rules []string) (*models.APIKey, error)
	DeleteKey(ctx context.Context, keyID string) error
	ValidateKey(ctx context.Context, apiKey string) (bool, error)
	Quota(ctx context.Context, keyID string) (*models.QuotaStatus, error)

	// Moderation endpoint, authenticated by API key rather than bearer token.
	Moderate(ctx context.Context, apiKey, text string) (*models.ModerationResult, error)
}
