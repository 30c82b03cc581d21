// Package auth issues and signs the bearer tokens consumed by the API's
// authentication middleware.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token issuer and audience, shared with the validating middleware.
const (
	Issuer   = "https://orange-blossom.app/"
	Audience = "orange-blossom-api"
)

// TokenService creates signed HS256 JWTs for authenticated accounts.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. The secret must match the one the
// middleware validates with; length is enforced at config load.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, errors.New("auth: JWT secret must be at least 32 characters")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// tokenClaims is the JWT payload: standard registered claims plus the account
// email, which the profile provisioner needs without a store lookup.
type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Generate creates and signs a token for the given account. The subject is
// the account id; expiry is the configured TTL.
func (s *TokenService) Generate(accountID uuid.UUID, email string) (string, error) {
	now := time.Now()

	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}
