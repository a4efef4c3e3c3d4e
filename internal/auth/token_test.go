package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bricksdeal/catalog-api/internal/config"
)

const testSecret = "unit-test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	raw, err := NewSessionToken(testSecret, "brickmaster", 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	sess, err := ParseSessionToken(testSecret, raw)
	require.NoError(t, err)
	assert.Equal(t, "1", sess.Subject)
	assert.Equal(t, "brickmaster", sess.Username)
	assert.Equal(t, RoleAdmin, sess.Role)
}

func TestParseSessionTokenFailsClosed(t *testing.T) {
	valid, err := NewSessionToken(testSecret, "brickmaster", time.Hour)
	require.NoError(t, err)
	expired, err := NewSessionToken(testSecret, "brickmaster", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		raw    string
	}{
		{"garbage token", testSecret, "not-a-token"},
		{"empty token", testSecret, ""},
		{"wrong secret", "some-other-secret", valid},
		{"expired token", testSecret, expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSessionToken(tt.secret, tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyAdminCredentialsPlaintext(t *testing.T) {
	cfg := config.Config{AdminUsername: "admin2000", AdminPassword: "brick-by-brick"}

	assert.True(t, VerifyAdminCredentials(cfg, "admin2000", "brick-by-brick"))
	assert.False(t, VerifyAdminCredentials(cfg, "admin2000", "wrong"))
	assert.False(t, VerifyAdminCredentials(cfg, "wrong", "brick-by-brick"))
	assert.False(t, VerifyAdminCredentials(cfg, "", ""))
}

func TestVerifyAdminCredentialsBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("brick-by-brick"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.Config{
		AdminUsername:     "admin2000",
		AdminPasswordHash: string(hash),
		AdminPassword:     "plaintext-is-ignored-when-hash-present",
	}

	assert.True(t, VerifyAdminCredentials(cfg, "admin2000", "brick-by-brick"))
	assert.False(t, VerifyAdminCredentials(cfg, "admin2000", "plaintext-is-ignored-when-hash-present"))
	assert.False(t, VerifyAdminCredentials(cfg, "admin2000", "wrong"))
}
