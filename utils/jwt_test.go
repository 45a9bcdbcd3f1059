package utils_test

import (
	"testing"
	"time"

	"tablenow/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpired(t *testing.T) {
	t.Run("expired claim", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
		require.True(t, utils.TokenExpired(token))
	})

	t.Run("future claim", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
		require.False(t, utils.TokenExpired(token))
	})

	t.Run("no expiry claim", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"sub": "u1"})
		require.False(t, utils.TokenExpired(token))
	})

	t.Run("opaque tokens are treated as live", func(t *testing.T) {
		require.False(t, utils.TokenExpired("not-a-jwt"))
	})
}

func TestSubjectFromToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "u1"})
	sub, err := utils.SubjectFromToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1", sub)

	_, err = utils.SubjectFromToken(signedToken(t, jwt.MapClaims{"aud": "x"}))
	require.Error(t, err)
}

func TestHashToken(t *testing.T) {
	require.Equal(t, utils.HashToken("abc"), utils.HashToken("abc"))
	require.NotEqual(t, utils.HashToken("abc"), utils.HashToken("abd"))
	require.Len(t, utils.HashToken("abc"), 64)
}
