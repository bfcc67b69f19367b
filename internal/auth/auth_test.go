package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"roombook-backend/config"
)

func testManager(t *testing.T) *Manager {
	m, err := NewManager(config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BcryptCost:    bcrypt.MinCost,
	})
	require.NoError(t, err)
	return m
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(config.AuthConfig{TokenTTLHours: 1})
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	m := testManager(t)

	hash, err := m.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, m.VerifyPassword(hash, "s3cret-pass"))
	assert.ErrorIs(t, m.VerifyPassword(hash, "wrong-pass"), ErrInvalidCredentials)
	assert.ErrorIs(t, m.VerifyPassword("not-a-hash", "s3cret-pass"), ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager(t)

	token, err := m.IssueToken("alice@example.com", RoleUser)
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, RoleUser, claims.Role)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	m := testManager(t)
	other, err := NewManager(config.AuthConfig{JWTSecret: "other-secret", TokenTTLHours: 1})
	require.NoError(t, err)

	token, err := other.IssueToken("alice@example.com", RoleUser)
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	m := testManager(t)

	claims := Claims{
		Email: "alice@example.com",
		Role:  RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.ParseToken(signed)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejectsWrongMethod(t *testing.T) {
	m := testManager(t)

	// alg "none" style tokens must never verify.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Email: "alice@example.com",
		Role:  RoleAdmin,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.ParseToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = m.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
