package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentmod/portal/internal/client/client"
	"github.com/contentmod/portal/internal/client/models"
)

func newKeyService(fc *fakeClient) *KeyService {
	return NewKeyService(fc, nopLogger())
}

func TestKeyCreate_Validation(t *testing.T) {
	svc := newKeyService(&fakeClient{})
	ctx := context.Background()

	_, err := svc.Create(ctx, models.CreateKeyRequest{Rules: []string{"no-spam"}})
	require.ErrorIs(t, err, ErrKeyNameRequired)

	_, err = svc.Create(ctx, models.CreateKeyRequest{Name: "prod"})
	require.ErrorIs(t, err, ErrNoRules)
}

func TestKeyCreate_Success(t *testing.T) {
	fc := &fakeClient{
		createdKey: &models.CreatedKey{
			APIKey: &models.APIKey{ID: "k1", Name: "prod"},
			Key:    "ak_secret",
		},
	}
	svc := newKeyService(fc)

	created, err := svc.Create(context.Background(), models.CreateKeyRequest{
		Name:  "prod",
		Rules: []string{"no-spam", "no-hate"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ak_secret", created.Key)
	assert.Equal(t, "k1", created.APIKey.ID)
}

func TestKeyCreate_BackendErrorPropagates(t *testing.T) {
	fc := &fakeClient{createErr: client.ErrBadRequest}
	svc := newKeyService(fc)

	_, err := svc.Create(context.Background(), models.CreateKeyRequest{
		Name:  "prod",
		Rules: []string{"no-spam"},
	})
	require.ErrorIs(t, err, client.ErrBadRequest)
}

func TestKeyUpdateStatus_Validation(t *testing.T) {
	fc := &fakeClient{}
	svc := newKeyService(fc)
	ctx := context.Background()

	err := svc.UpdateStatus(ctx, "k1", "revoked")
	require.ErrorIs(t, err, ErrBadKeyStatus)
	assert.Empty(t, fc.lastStatus)

	require.NoError(t, svc.UpdateStatus(ctx, "k1", models.KeyStatusInactive))
	assert.Equal(t, models.KeyStatusInactive, fc.lastStatus)
}

func TestKeyUpdateRules(t *testing.T) {
	fc := &fakeClient{rulesKey: &models.APIKey{ID: "k1", Rules: []string{"r1"}}}
	svc := newKeyService(fc)
	ctx := context.Background()

	_, err := svc.UpdateRules(ctx, "k1", nil)
	require.ErrorIs(t, err, ErrNoRules)

	key, err := svc.UpdateRules(ctx, "k1", []string{"r1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, key.Rules)
	assert.Equal(t, []string{"r1"}, fc.lastRules)
}

func TestKeyValidate_Passthrough(t *testing.T) {
	svc := newKeyService(&fakeClient{validRet: true})

	valid, err := svc.Validate(context.Background(), "ak_good")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestKeyQuota_Passthrough(t *testing.T) {
	fc := &fakeClient{quotaRet: &models.QuotaStatus{KeyID: "k1", RemainingQuota: 5}}
	svc := newKeyService(fc)

	quota, err := svc.Quota(context.Background(), "k1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), quota.RemainingQuota)
}

func TestModerate_RequiresText(t *testing.T) {
	fc := &fakeClient{moderateRet: &models.ModerationResult{Status: true}}
	svc := newKeyService(fc)
	ctx := context.Background()

	_, err := svc.Moderate(ctx, "ak_test", "")
	require.Error(t, err)

	result, err := svc.Moderate(ctx, "ak_test", "hello")
	require.NoError(t, err)
	assert.True(t, result.Status)
	assert.Equal(t, "ak_test", fc.lastModerateKey)
}
