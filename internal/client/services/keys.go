package services

import (
	"context"
	"errors"

	"github.com/contentmod/portal/internal/client/client"
	"github.com/contentmod/portal/internal/client/models"
	"github.com/contentmod/portal/internal/logging"
)

var (
	ErrKeyNameRequired = errors.New("key name is required")
	ErrNoRules         = errors.New("at least one moderation rule is required")
	ErrBadKeyStatus    = errors.New("status must be active or inactive")
)

// KeyService manages the user's moderation API keys. It is a thin layer over
// the wire client: input validation and logging only. Quota accounting and
// key hashing live in the backend.
type KeyService struct {
	client client.Client
	log    logging.Logger
}

func NewKeyService(c client.Client, log logging.Logger) *KeyService {
	return &KeyService{client: c, log: log.With("component", "apikeys")}
}

func (k *KeyService) List(ctx context.Context) ([]*models.APIKey, error) {
	return k.client.Keys(ctx)
}

// Create provisions a new API key. The returned CreatedKey carries the
// plaintext key; it is shown once and never retrievable again.
func (k *KeyService) Create(ctx context.Context, req models.CreateKeyRequest) (*models.CreatedKey, error) {
	if req.Name == "" {
		return nil, ErrKeyNameRequired
	}
	if len(req.Rules) == 0 {
		return nil, ErrNoRules
	}

	created, err := k.client.CreateKey(ctx, req)
	if err != nil {
		k.log.Warn(ctx, "key creation failed", "name", req.Name, "error", err)
		return nil, err
	}

	k.log.Info(ctx, "key created", "id", created.APIKey.ID, "name", created.APIKey.Name)
	return created, nil
}

// UpdateStatus toggles a key between active and inactive. Revocation is a
// separate, irreversible operation (Delete).
func (k *KeyService) UpdateStatus(ctx context.Context, keyID, status string) error {
	if status != models.KeyStatusActive && status != models.KeyStatusInactive {
		return ErrBadKeyStatus
	}

	if err := k.client.UpdateKeyStatus(ctx, keyID, status); err != nil {
		return err
	}
	k.log.Info(ctx, "key status updated", "id", keyID, "status", status)
	return nil
}

func (k *KeyService) UpdateRules(ctx context.Context, keyID string, rules []string) (*models.APIKey, error) {
	if len(rules) == 0 {
		return nil, ErrNoRules
	}

	key, err := k.client.UpdateKeyRules(ctx, keyID, rules)
	if err != nil {
		return nil, err
	}
	k.log.Info(ctx, "key rules updated", "id", keyID, "rules", len(rules))
	return key, nil
}

// Delete revokes a key permanently.
func (k *KeyService) Delete(ctx context.Context, keyID string) error {
	if err := k.client.DeleteKey(ctx, keyID); err != nil {
		return err
	}
	k.log.Info(ctx, "key revoked", "id", keyID)
	return nil
}

// Validate checks an API key against the public validation endpoint.
func (k *KeyService) Validate(ctx context.Context, apiKey string) (bool, error) {
	return k.client.ValidateKey(ctx, apiKey)
}

func (k *KeyService) Quota(ctx context.Context, keyID string) (*models.QuotaStatus, error) {
	return k.client.Quota(ctx, keyID)
}

// Moderate submits text to the moderation endpoint using a plaintext API key.
func (k *KeyService) Moderate(ctx context.Context, apiKey, text string) (*models.ModerationResult, error) {
	if text == "" {
		return nil, errors.New("text is required")
	}
	return k.client.Moderate(ctx, apiKey, text)
}
