package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitflex/config"
	"fitflex/internal/domain/entity"
)

func newTestTokenService(t *testing.T, ttl time.Duration) *jwtService {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{AccessTokenTTL: ttl}}
	cfg.SecretKey.Access = "test-access-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestJWTService_RequiresSecret(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{AccessTokenTTL: time.Minute}}

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t, time.Minute)
	accountID := uuid.New()

	token, err := svc.GenerateAccessToken(accountID, entity.AccountVariantStudio)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, entity.AccountVariantStudio, claims.Role)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newTestTokenService(t, time.Minute)

	token, err := svc.GenerateAccessToken(uuid.New(), entity.AccountVariantUser)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute)

	token, err := svc.GenerateAccessToken(uuid.New(), entity.AccountVariantUser)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := newTestTokenService(t, time.Minute)
	other := newTestTokenService(t, time.Minute)
	other.secret = []byte("different-secret")

	token, err := svc.GenerateAccessToken(uuid.New(), entity.AccountVariantUser)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
