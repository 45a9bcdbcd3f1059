package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// InspectToken parses a token string without verifying its signature. The
// backend signs its own session tokens; the client only needs the claims.
func InspectToken(tokenString string) (jwt.MapClaims, error) {
	parser := new(jwt.Parser)
	claims := jwt.MapClaims{}
	_, _, err := parser.ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// TokenExpired reports whether the token carries an "exp" claim in the past.
// Tokens without an expiry claim, and opaque (non-JWT) tokens, are treated as
// live; the backend remains the authority on their validity.
func TokenExpired(tokenString string) bool {
	claims, err := InspectToken(tokenString)
	if err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return int64(exp) < time.Now().Unix()
}

// SubjectFromToken extracts the "sub" claim from a token string.
func SubjectFromToken(tokenString string) (string, error) {
	claims, err := InspectToken(tokenString)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}
