// Package auth issues and validates the JWTs that gate the HTTP surface,
// and hashes account passwords.
package auth

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 72 * time.Hour

// Roles assignable to accounts.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Auth signs and verifies tokens with a shared HMAC secret.
type Auth struct {
	secret []byte
}

// New creates an Auth with the given signing secret.
func New(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// GenerateJWT issues an HS256 token carrying the user's ID and role.
func (a *Auth) GenerateJWT(userID int64, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(a.secret)
}

// ValidateJWT parses and verifies a token, returning its claims.
func (a *Auth) ValidateJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether email looks like an email address.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
