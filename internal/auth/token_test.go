package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret"

func signHS256(t *testing.T, claims jwt.Claims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestParseToken(t *testing.T) {
	t.Run("valid token yields claims", func(t *testing.T) {
		token := signHS256(t, Claims{
			Email: "dev@example.com",
			Role:  "authenticated",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "auth-uid-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		claims, err := ParseToken(testSecret, token)
		require.NoError(t, err)
		assert.Equal(t, "auth-uid-1", claims.Subject)
		assert.Equal(t, "dev@example.com", claims.Email)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token := signHS256(t, jwt.RegisteredClaims{Subject: "u1"})
		_, err := ParseToken("other-secret", token)
		assert.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signHS256(t, jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		})
		_, err := ParseToken(testSecret, token)
		assert.Error(t, err)
	})

	t.Run("missing sub is rejected", func(t *testing.T) {
		token := signHS256(t, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		_, err := ParseToken(testSecret, token)
		assert.ErrorContains(t, err, "sub")
	})

	t.Run("non-HMAC alg is rejected", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ParseToken(testSecret, token)
		assert.Error(t, err)
	})

	t.Run("empty secret is rejected", func(t *testing.T) {
		token := signHS256(t, jwt.RegisteredClaims{Subject: "u1"})
		_, err := ParseToken("", token)
		assert.Error(t, err)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := ParseToken(testSecret, "not.a.jwt")
		assert.Error(t, err)
	})
}
