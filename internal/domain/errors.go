package domain

import "errors"

// Domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrAccountNotFound = errors.New("account not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrIdeaNotFound    = errors.New("idea not found")

	// Uniqueness conflicts, translated from the store's constraint violations
	ErrEmailTaken    = errors.New("an account with this email already exists")
	ErrUsernameTaken = errors.New("this username is already taken")
	// ErrProfileExists signals the benign provisioning race: another request
	// inserted the profile row first. Callers treat it as success.
	ErrProfileExists = errors.New("profile already exists")

	ErrInvalidCredentials = errors.New("invalid email or password")
)
