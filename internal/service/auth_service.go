package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kjedmeade/orange-blossom-app/internal/auth"
	"github.com/kjedmeade/orange-blossom-app/internal/domain"
)

// AuthService handles sign-up and sign-in
type AuthService struct {
	accounts  domain.AccountRepository
	profiles  *ProfileService
	passwords *auth.PasswordService
	tokens    *auth.TokenService
}

// NewAuthService creates a new AuthService
func NewAuthService(accounts domain.AccountRepository, profiles *ProfileService, passwords *auth.PasswordService, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		accounts:  accounts,
		profiles:  profiles,
		passwords: passwords,
		tokens:    tokens,
	}
}

// AuthResult is a signed token plus the account it authenticates
type AuthResult struct {
	Token   string
	Account *domain.Account
}

// SignUp validates credentials, creates the account and provisions its
// profile. Profile provisioning is best effort here: a failure is logged and
// the lazy provisioning path covers it on the next authenticated access.
func (s *AuthService) SignUp(email, password string) (*AuthResult, error) {
	if err := domain.ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.Create(email, hash)
	if err != nil {
		return nil, err
	}

	if _, err := s.profiles.EnsureProfile(account.ID, account.Email); err != nil {
		log.Warn().Err(err).Str("account_id", account.ID.String()).Msg("Profile provisioning failed on sign-up")
	}

	token, err := s.tokens.Generate(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, Account: account}, nil
}

// SignIn verifies credentials and issues a token. An unknown email and a
// wrong password produce the same ErrInvalidCredentials.
func (s *AuthService) SignIn(email, password string) (*AuthResult, error) {
	account, err := s.accounts.GetByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.passwords.Verify(account.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, Account: account}, nil
}

// GetAccount retrieves an account by id
func (s *AuthService) GetAccount(id uuid.UUID) (*domain.Account, error) {
	return s.accounts.GetByID(id)
}
