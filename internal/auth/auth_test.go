package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheelio/config"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestGenerateAndParseJWT(t *testing.T) {
	require.NoError(t, Init(config.JWTConfig{Secret: "test-secret", Expiration: "1h"}))

	token, err := GenerateJWT("USR-abc12345", "jane@example.com", "USER")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "USR-abc12345", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "jane@example.com", claims.Subject)
	assert.Equal(t, "USER", claims.Role)
}

func TestParseJWTExpired(t *testing.T) {
	require.NoError(t, Init(config.JWTConfig{Secret: "test-secret", Expiration: "1ns"}))

	token, err := GenerateJWT("USR-abc12345", "jane@example.com", "USER")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = ParseJWT(token)
	require.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	require.NoError(t, Init(config.JWTConfig{Secret: "test-secret", Expiration: "1h"}))

	_, err := ParseJWT("not-a-token")
	require.Error(t, err)
}

// Only HS256 tokens are accepted; an unsigned token carrying valid claims
// must not parse.
func TestParseJWTRejectsUnsignedAlgorithm(t *testing.T) {
	require.NoError(t, Init(config.JWTConfig{Secret: "test-secret", Expiration: "1h"}))

	claims := &JWTClaims{
		UserID: "USR-abc12345",
		Email:  "jane@example.com",
		Role:   "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "jane@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseJWT(token)
	require.Error(t, err)
}

func TestInitRequiresSecret(t *testing.T) {
	require.Error(t, Init(config.JWTConfig{Secret: ""}))
}
