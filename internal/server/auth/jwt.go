// Package auth issues and checks the service's access tokens and verifies
// login credentials.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/coursework/internal/common"
)

// Claims are the standard registered claims plus the caller's role.
// The subject holds the username.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// now is the token clock, replaced in tests.
var now = time.Now

// GenerateToken signs an HS256 token for username and role that expires
// after validityDuration. The expiry instant is returned with the token.
func GenerateToken(username, role string, secretKey []byte, validityDuration time.Duration) (string, time.Time, error) {
	issued := now()
	expiresAt := issued.Add(validityDuration)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseToken validates tokenString and returns the principal it names.
// Expired tokens yield common.ErrTokenExpired; every other failure,
// including a missing subject or role, yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" || claims.Role == "" {
		return nil, common.ErrInvalidToken
	}

	return &Principal{Username: claims.Subject, Role: claims.Role}, nil
}

// BearerToken extracts the token from an Authorization header value.
// It reports false when the "Bearer " prefix is missing.
func BearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(token), true
}
