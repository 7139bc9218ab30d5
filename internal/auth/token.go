package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of a Supabase access token this service cares about.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken verifies an HS256 access token against the project JWT secret
// and returns its claims. Expired or otherwise invalid tokens are rejected.
func ParseToken(secret, token string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("SUPABASE_JWT_SECRET is not set")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token missing sub claim")
	}

	return claims, nil
}
