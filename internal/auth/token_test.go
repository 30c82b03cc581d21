package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := NewTokenService("short", time.Hour)
	if err == nil {
		t.Fatal("Expected error for short secret, got nil")
	}
}

func TestGenerate_ClaimsRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	accountID := uuid.New()
	signed, err := svc.Generate(accountID, "jane@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	parsed, err := jwt.ParseWithClaims(signed, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithIssuer(Issuer), jwt.WithAudience(Audience))
	if err != nil {
		t.Fatalf("Expected token to parse, got %v", err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		t.Fatal("Expected valid token claims")
	}
	if claims.Subject != accountID.String() {
		t.Errorf("Expected subject %q, got %q", accountID.String(), claims.Subject)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("Expected email claim 'jane@example.com', got %q", claims.Email)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Error("Expected expiry within the configured TTL")
	}
}

func TestGenerate_WrongSecretRejected(t *testing.T) {
	svc, _ := NewTokenService(testSecret, time.Hour)
	signed, err := svc.Generate(uuid.New(), "jane@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = jwt.ParseWithClaims(signed, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		return []byte("ffffffffffffffffffffffffffffffff"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err == nil {
		t.Fatal("Expected signature validation to fail")
	}
}
