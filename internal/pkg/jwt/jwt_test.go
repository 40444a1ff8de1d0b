package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "hr@example.com", "hr")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	userID, _ := token.Get("user_id")
	role, _ := token.Get("role")
	tokenType, _ := token.Get("type")
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "hr", role)
	assert.Equal(t, "access", tokenType)
}

func TestGenerateAccessTokenInvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "not-a-duration")

	_, _, err := svc.GenerateAccessToken("user-1", "hr@example.com", "hr")
	assert.Error(t, err)
}
