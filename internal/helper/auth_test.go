package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/resthub/account_service/internal/apperr"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	auth := SetupAuth("test-secret", 15*time.Minute)

	token, err := auth.GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Greater(t, claims.Expiry, float64(time.Now().Unix()))
}

func TestVerifyTokenBearerPrefix(t *testing.T) {
	auth := SetupAuth("test-secret", 15*time.Minute)

	token, err := auth.GenerateToken(7)
	require.NoError(t, err)

	claims, err := auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestVerifyTokenFailures(t *testing.T) {
	auth := SetupAuth("test-secret", 15*time.Minute)

	_, err := auth.VerifyToken("")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = auth.VerifyToken("not-a-jwt")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	// signed with a different secret
	other := SetupAuth("other-secret", 15*time.Minute)
	token, err := other.GenerateToken(1)
	require.NoError(t, err)
	_, err = auth.VerifyToken(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	// already expired
	expired := SetupAuth("test-secret", -time.Minute)
	token, err = expired.GenerateToken(1)
	require.NoError(t, err)
	_, err = expired.VerifyToken(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestGenerateTokenRequiresUserID(t *testing.T) {
	auth := SetupAuth("test-secret", 15*time.Minute)

	_, err := auth.GenerateToken(0)
	assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
	a, err := NewRefreshToken()
	require.NoError(t, err)
	b, err := NewRefreshToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}

func TestVerifyPassword(t *testing.T) {
	auth := SetupAuth("test-secret", 15*time.Minute)

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	assert.NoError(t, auth.VerifyPassword("supersecret", string(hash)))
	assert.Error(t, auth.VerifyPassword("wrong-password", string(hash)))
}
