// Package auth implements the credential primitives of the service:
// signed session tokens and one-way password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the subject user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken issues a compact HS256-signed token bound to userID with an
// absolute expiry of now+validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken validates tokenString and returns the user id it is
// bound to. Expired tokens yield common.ErrTokenExpired; malformed tokens and
// signature mismatches yield common.ErrInvalidToken. The distinction matters
// for diagnostics only, callers at the transport boundary collapse both into
// a single unauthorized response.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
