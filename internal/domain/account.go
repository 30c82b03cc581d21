package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email must be a valid address")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

// MinPasswordLength is the minimum accepted password length on sign-up.
const MinPasswordLength = 8

// Account is an authentication principal: the credentials record behind a
// profile. The profile's ID equals the account's ID.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidateCredentials checks sign-up input before any hashing or store call.
func ValidateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || strings.Contains(email, " ") {
		return ErrEmailInvalid
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	GetByID(id uuid.UUID) (*Account, error)
	GetByEmail(email string) (*Account, error)
	Create(email, passwordHash string) (*Account, error)
}
