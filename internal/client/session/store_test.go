package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/contentmod/portal/internal/client/models"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return NewStore(db)
}

func freezeTime(t *testing.T, at time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = orig })
}

func testUser() *models.User {
	return &models.User{
		ID:       "1",
		Username: "alice",
		Email:    "a@x.com",
		IsActive: true,
	}
}

func TestSave_RoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	freezeTime(t, now)

	require.NoError(t, s.Save(ctx, "t1", testUser(), 3600*time.Second))

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", token)

	u, err := s.User(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "a@x.com", u.Email)

	expiry, err := s.Expiry(ctx)
	require.NoError(t, err)
	assert.Equal(t, now.Add(3600*time.Second).UnixMilli(), expiry.UnixMilli())
}

func TestSave_RejectsPartialRecords(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.ErrorIs(t, s.Save(ctx, "", testUser(), time.Hour), ErrInvalidRecord)
	require.ErrorIs(t, s.Save(ctx, "t1", nil, time.Hour), ErrInvalidRecord)
	require.ErrorIs(t, s.Save(ctx, "t1", testUser(), 0), ErrInvalidRecord)

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestReads_EmptyStoreAreAbsent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	u, err := s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	expiry, err := s.Expiry(ctx)
	require.NoError(t, err)
	assert.True(t, expiry.IsZero())
}

func TestValid_NoToken(t *testing.T) {
	s := setupStore(t)

	valid, err := s.Valid(context.Background())
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestValid_BeforeAndAfterExpiry(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	freezeTime(t, now)
	require.NoError(t, s.Save(ctx, "t1", testUser(), time.Hour))

	// Just before the deadline the record is live.
	timeNow = func() time.Time { return now.Add(time.Hour - time.Millisecond) }
	valid, err := s.Valid(ctx)
	require.NoError(t, err)
	assert.True(t, valid)

	// Just after it the record is purged on first observation.
	timeNow = func() time.Time { return now.Add(time.Hour + time.Millisecond) }
	valid, err = s.Valid(ctx)
	require.NoError(t, err)
	assert.False(t, valid)

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestValid_TokenWithoutExpiryIsInvalidAndCleared(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	// Simulate a legacy/partial record: token present, expiry missing.
	require.NoError(t, s.repo().Set(ctx, keyToken, []byte("t1")))

	valid, err := s.Valid(ctx)
	require.NoError(t, err)
	assert.False(t, valid)

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestValid_UnreadableExpiryIsInvalidAndCleared(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.repo().Set(ctx, keyToken, []byte("t1")))
	require.NoError(t, s.repo().Set(ctx, keyExpiry, []byte("not-a-number")))

	valid, err := s.Valid(ctx)
	require.NoError(t, err)
	assert.False(t, valid)

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestClear_IdempotentOnEmptyStore(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
}

func TestSetUser_PatchesUserOnly(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	freezeTime(t, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))

	require.NoError(t, s.Save(ctx, "t1", testUser(), time.Hour))

	expiryBefore, err := s.Expiry(ctx)
	require.NoError(t, err)

	patched := testUser()
	patched.Email = "x@x.com"
	require.NoError(t, s.SetUser(ctx, patched))

	u, err := s.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x@x.com", u.Email)

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", token)

	expiryAfter, err := s.Expiry(ctx)
	require.NoError(t, err)
	assert.Equal(t, expiryBefore, expiryAfter)
}

func TestUser_MalformedJSONIsAnError(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.repo().Set(ctx, keyUser, []byte("{broken")))

	_, err := s.User(ctx)
	require.ErrorContains(t, err, "decode stored user")
}
