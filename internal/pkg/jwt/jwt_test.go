package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	fixed := time.Now().Truncate(time.Second)
	svc.now = func() time.Time { return fixed }

	company := "company-1"
	token, expiresAt, err := svc.GenerateAccessToken("user-1", &company, auth.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(time.Hour).Unix(), expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "company-1", claims["company_id"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, auth.TokenTypeAccess, claims["type"])
}

func TestDecode_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, _, err := issuer.GenerateAccessToken("user-1", nil, auth.RoleEmployee)
	require.NoError(t, err)

	_, err = verifier.JWTAuth().Decode(token)
	assert.Error(t, err)
}
