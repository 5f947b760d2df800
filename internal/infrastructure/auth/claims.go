package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Common introspection errors
var (
	ErrMalformedToken = errors.New("auth: malformed token")
)

// Claims is the subset of token claims the dashboard displays: who the
// session belongs to and when it expires.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Introspect decodes a bearer token WITHOUT verifying its signature. The
// result is display data only and must never gate authorization.
func Introspect(tokenString string) (*Claims, error) {
	parser := jwt.NewParser()
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

// ExpiresAt returns the expiry time; zero when the token carries none
func (c *Claims) ExpiresAt() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}

// Expired reports whether the token has expired as of now
func (c *Claims) Expired(now time.Time) bool {
	at := c.ExpiresAt()
	return !at.IsZero() && at.Before(now)
}
