// Package session implements the durable credential store of the portal
// client: one bearer token, one user snapshot, and one absolute expiry
// instant, persisted across restarts.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/contentmod/portal/internal/client/models"
	sessionrepo "github.com/contentmod/portal/internal/client/repositories/session"
	"github.com/contentmod/portal/internal/dbx"
)

// Keys of the credential record in the key-value medium.
const (
	keyToken  = "token"
	keyUser   = "user"
	keyExpiry = "expires_at"
)

// ErrInvalidRecord is returned by Save for records that would violate the
// all-or-nothing invariant (empty token, nil user, non-positive TTL).
var ErrInvalidRecord = errors.New("invalid credential record")

// timeNow is a test seam.
var timeNow = time.Now

// Store owns the persisted credential record. The record is either fully
// present or fully absent: Save writes all three keys in one transaction and
// Valid purges anything partial or expired before a caller can observe it.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo() sessionrepo.Repository {
	return sessionrepo.NewSQLiteRepository(s.db)
}

// Save persists a fresh credential record. The expiry instant is computed
// here, once, from the server-supplied TTL; it is never derived from the
// token itself (the token is opaque to the client).
func (s *Store) Save(ctx context.Context, token string, user *models.User, ttl time.Duration) error {
	if token == "" || user == nil || ttl <= 0 {
		return ErrInvalidRecord
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	expiry := timeNow().Add(ttl).UnixMilli()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := sessionrepo.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyUser, userJSON); err != nil {
			return err
		}
		return repo.Set(ctx, keyExpiry, []byte(strconv.FormatInt(expiry, 10)))
	})
}

// Token returns the stored bearer token, or "" when absent.
// It satisfies client.TokenSource.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, err := s.repo().Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// User returns the stored user snapshot, or nil when absent.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	v, err := s.repo().Get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	return &u, nil
}

// SetUser replaces only the user snapshot, leaving token and expiry as they
// are. Used after a successful profile update.
func (s *Store) SetUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return ErrInvalidRecord
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.repo().Set(ctx, keyUser, userJSON)
}

// Expiry returns the stored expiry instant, or the zero time when absent.
func (s *Store) Expiry(ctx context.Context) (time.Time, error) {
	v, err := s.repo().Get(ctx, keyExpiry)
	if err != nil {
		return time.Time{}, err
	}
	if v == nil {
		return time.Time{}, nil
	}

	millis, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode stored expiry: %w", err)
	}
	return time.UnixMilli(millis), nil
}

// Clear removes the whole credential record. Idempotent, safe on an empty
// store.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo().Clear(ctx)
}

// Valid reports whether a live credential record is present.
//
// A record with a token but no readable expiry is treated as invalid and
// cleared: a half-written or legacy record must not outlive the check. An
// expired record is likewise cleared, so callers never observe a token past
// its expiry.
func (s *Store) Valid(ctx context.Context) (bool, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	expiry, err := s.Expiry(ctx)
	if err != nil || expiry.IsZero() {
		if clearErr := s.Clear(ctx); clearErr != nil {
			return false, clearErr
		}
		return false, nil
	}

	if timeNow().After(expiry) {
		if err := s.Clear(ctx); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}
