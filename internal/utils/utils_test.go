package utils

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := GenerateJWT("user-1", "secret", time.Hour, "simple-invoice", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := ParseAndValidateJWT(token, "secret", jwt.WithIssuer("simple-invoice"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "simple-invoice", claims.Issuer)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	now := time.Now()
	valid, _, err := GenerateJWT("user-1", "secret", time.Hour, "simple-invoice", now)
	require.NoError(t, err)
	expired, _, err := GenerateJWT("user-1", "secret", time.Hour, "simple-invoice", now.Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(valid, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAndValidateJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseAndValidateJWT(valid, "secret", jwt.WithIssuer("someone-else"))
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(unsigned, "secret")
	assert.Error(t, err)
}

func TestGenerateSecureRandomString(t *testing.T) {
	a, err := GenerateSecureRandomString(16)
	require.NoError(t, err)
	b, err := GenerateSecureRandomString(16)
	require.NoError(t, err)

	assert.Len(t, a, 22) // 16 bytes, unpadded base64
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "=")

	_, err = GenerateSecureRandomString(0)
	assert.Error(t, err)
}

func TestPosthogClientWrapper_NoKeyIsNoop(t *testing.T) {
	w := InitializePosthogClient("", "", discardLogger())
	assert.False(t, w.IsInitialized())
	assert.NotPanics(t, func() {
		w.Enqueue("user-1", "invoice_created", nil)
		w.Close()
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
