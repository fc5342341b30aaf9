package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/contentmod/portal/internal/client/client"
	"github.com/contentmod/portal/internal/client/models"
	"github.com/contentmod/portal/internal/client/session"
	"github.com/contentmod/portal/internal/logging"
)

var (
	// ErrBusy is returned when a lifecycle call overlaps one already in
	// flight. Lifecycle operations are serialized; callers retry after the
	// current one settles.
	ErrBusy = errors.New("session operation already in flight")

	// ErrSuperseded is returned when an operation completed after the
	// session moved on (e.g. a logout raced it). Its result was discarded.
	ErrSuperseded = errors.New("session superseded")
)

// Snapshot is the consumer-facing view of the session.
type Snapshot struct {
	User          *models.User
	Loading       bool
	Authenticated bool
}

// SessionService is the only component that creates or destroys the persisted
// credential record. One instance per running application.
//
// Lifecycle calls (Register, Login, FetchProfile, UpdateProfile, Restore) are
// serialized through an in-flight guard. Logout is exempt: it always
// proceeds, bumps the session generation, and any in-flight call that settles
// afterwards has its result discarded instead of applied.
type SessionService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger

	mu   sync.Mutex
	busy bool
	gen  uint64
	cur  Snapshot
	subs map[chan Snapshot]struct{}
}

func NewSessionService(c client.Client, store *session.Store, log logging.Logger) *SessionService {
	return &SessionService{
		client: c,
		store:  store,
		log:    log.With("component", "session"),
		subs:   make(map[chan Snapshot]struct{}),
	}
}

// Snapshot returns the current view. The contained user must be treated as
// read-only.
func (s *SessionService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Subscribe registers a consumer. The returned channel is primed with the
// current snapshot and then receives the latest snapshot after every state
// change; intermediate states may be coalesced.
func (s *SessionService) Subscribe() chan Snapshot {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[ch] = struct{}{}
	ch <- s.cur
	return ch
}

// Unsubscribe removes and closes a channel obtained from Subscribe.
func (s *SessionService) Unsubscribe(ch chan Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
}

// notifyLocked pushes the current snapshot to every subscriber without
// blocking: a slow consumer keeps only the newest state.
func (s *SessionService) notifyLocked() {
	for ch := range s.subs {
		select {
		case ch <- s.cur:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s.cur:
			default:
			}
		}
	}
}

// begin claims the in-flight slot and flips the view to loading.
func (s *SessionService) begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return 0, ErrBusy
	}
	s.busy = true
	s.cur.Loading = true
	s.notifyLocked()
	return s.gen, nil
}

// commit releases the in-flight slot and, when the session generation still
// matches, applies fn (store mutation plus snapshot update) atomically with
// respect to other lifecycle calls. A stale generation means a logout won the
// race; the result is dropped and ErrSuperseded returned.
func (s *SessionService) commit(ctx context.Context, gen uint64, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.notifyLocked()

	s.busy = false
	s.cur.Loading = false

	if gen != s.gen {
		return ErrSuperseded
	}
	if fn != nil {
		return fn(ctx)
	}
	return nil
}

// Register creates a new account. It never touches the local session: a
// freshly registered user still has to log in.
func (s *SessionService) Register(ctx context.Context, username, email, password string) error {
	gen, err := s.begin()
	if err != nil {
		return err
	}

	regErr := s.client.Register(ctx, username, email, password)
	if err := s.commit(ctx, gen, nil); err != nil {
		return err
	}

	if regErr != nil {
		s.log.Warn(ctx, "registration failed", "username", username, "error", regErr)
		return regErr
	}
	s.log.Info(ctx, "registered", "username", username)
	return nil
}

// Login authenticates and, on success, persists the credential record and
// flips the view to authenticated. On any failure the store is left
// untouched.
func (s *SessionService) Login(ctx context.Context, username, password string) (*models.User, error) {
	gen, err := s.begin()
	if err != nil {
		return nil, err
	}

	result, loginErr := s.client.Login(ctx, username, password)
	if loginErr != nil {
		_ = s.commit(ctx, gen, nil)
		s.log.Warn(ctx, "login failed", "username", username, "error", loginErr)
		return nil, loginErr
	}

	ttl := time.Duration(result.ExpiresIn) * time.Second
	err = s.commit(ctx, gen, func(ctx context.Context) error {
		if err := s.store.Save(ctx, result.Token, result.User, ttl); err != nil {
			return err
		}
		s.cur.User = result.User
		s.cur.Authenticated = true
		return nil
	})
	if err != nil {
		s.log.Warn(ctx, "login result discarded", "username", username, "error", err)
		return nil, err
	}

	s.log.Info(ctx, "logged in", "username", result.User.Username, "expires_in_s", result.ExpiresIn)
	return result.User, nil
}

// Logout tells the server best-effort and then unconditionally clears the
// local record. It never fails from the caller's perspective: even when the
// server call or the local wipe errors, the in-memory session ends here, and
// any lifecycle call still in flight is superseded.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.log.Warn(ctx, "server-side logout failed, clearing locally anyway", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear session store", "error", err)
	}
	s.cur = Snapshot{}
	s.notifyLocked()

	s.log.Info(ctx, "logged out")
}

// FetchProfile refreshes the user snapshot from the server. A 401 or a
// malformed reply invalidates the session (self-healing); a transport
// failure leaves the local session alone.
func (s *SessionService) FetchProfile(ctx context.Context) (*models.User, error) {
	gen, err := s.begin()
	if err != nil {
		return nil, err
	}

	user, fetchErr := s.client.Profile(ctx)
	if fetchErr != nil {
		if errors.Is(fetchErr, client.ErrUnauthorized) || errors.Is(fetchErr, client.ErrMalformedResponse) {
			err = s.commit(ctx, gen, func(ctx context.Context) error {
				if err := s.store.Clear(ctx); err != nil {
					return err
				}
				s.cur.User = nil
				s.cur.Authenticated = false
				return nil
			})
			if err != nil {
				return nil, err
			}
			s.log.Info(ctx, "session invalidated by server", "error", fetchErr)
		} else {
			_ = s.commit(ctx, gen, nil)
		}
		return nil, fetchErr
	}

	err = s.commit(ctx, gen, func(ctx context.Context) error {
		s.cur.User = user
		s.cur.Authenticated = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial user update on the server and, on success,
// patches the stored user snapshot in place. Token and expiry are untouched.
func (s *SessionService) UpdateProfile(ctx context.Context, patch models.ProfilePatch) error {
	if patch.Empty() {
		return nil
	}

	gen, err := s.begin()
	if err != nil {
		return err
	}

	updateErr := s.client.UpdateProfile(ctx, patch)
	if updateErr != nil {
		_ = s.commit(ctx, gen, nil)
		s.log.Warn(ctx, "profile update failed", "error", updateErr)
		return updateErr
	}

	return s.commit(ctx, gen, func(ctx context.Context) error {
		stored, err := s.store.User(ctx)
		if err != nil {
			return err
		}
		if stored == nil {
			return nil
		}
		patch.Apply(stored)
		if err := s.store.SetUser(ctx, stored); err != nil {
			return err
		}
		s.cur.User = stored
		return nil
	})
}

// Restore rehydrates the session at startup: the stored record must pass the
// validity check and a profile refresh must confirm it, otherwise the view
// resolves to unauthenticated. A transport failure keeps the stored record
// for a later attempt but does not authenticate the view.
func (s *SessionService) Restore(ctx context.Context) error {
	gen, err := s.begin()
	if err != nil {
		return err
	}

	valid, validErr := s.store.Valid(ctx)
	if validErr != nil || !valid {
		if validErr != nil {
			s.log.Error(ctx, "session validity check failed", "error", validErr)
		}
		return s.commit(ctx, gen, func(ctx context.Context) error {
			s.cur.User = nil
			s.cur.Authenticated = false
			return nil
		})
	}

	user, fetchErr := s.client.Profile(ctx)
	if fetchErr != nil {
		if errors.Is(fetchErr, client.ErrUnauthorized) || errors.Is(fetchErr, client.ErrMalformedResponse) {
			s.log.Info(ctx, "stored session rejected by server", "error", fetchErr)
			return s.commit(ctx, gen, func(ctx context.Context) error {
				return s.store.Clear(ctx)
			})
		}
		s.log.Warn(ctx, "session restore deferred, server unreachable", "error", fetchErr)
		return s.commit(ctx, gen, nil)
	}

	err = s.commit(ctx, gen, func(ctx context.Context) error {
		s.cur.User = user
		s.cur.Authenticated = true
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "session restored", "username", user.Username)
	return nil
}
