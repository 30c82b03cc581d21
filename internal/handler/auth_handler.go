package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kjedmeade/orange-blossom-app/internal/domain"
	"github.com/kjedmeade/orange-blossom-app/internal/middleware"
	"github.com/kjedmeade/orange-blossom-app/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest represents the sign-up and login request body
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse represents the response to a successful sign-up or login
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SignUp registers a new account and returns a bearer token
// POST /auth/signup
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.authService.SignUp(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "email", Message: "Email is required"},
			})
		case errors.Is(err, domain.ErrEmailInvalid):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "email", Message: "Must be a valid email address"},
			})
		case errors.Is(err, domain.ErrPasswordTooShort):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "password", Message: "Password must be at least 8 characters"},
			})
		case errors.Is(err, domain.ErrEmailTaken):
			return NewConflictError(c, "An account with this email already exists")
		}
		log.Error().Err(err).Msg("Failed to sign up")
		return NewInternalError(c, "Failed to create account")
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Token: result.Token,
		User: UserResponse{
			ID:    result.Account.ID.String(),
			Email: result.Account.Email,
		},
	})
}

// Login verifies credentials and returns a bearer token
// POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.authService.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return NewUnauthorizedError(c, "Invalid email or password")
		}
		log.Error().Err(err).Msg("Failed to sign in")
		return NewInternalError(c, "Failed to sign in")
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Token: result.Token,
		User: UserResponse{
			ID:    result.Account.ID.String(),
			Email: result.Account.Email,
		},
	})
}

// Me returns the current authenticated principal
// GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	account, err := h.authService.GetAccount(accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to get account")
		return NewInternalError(c, "Failed to get account")
	}

	return c.JSON(http.StatusOK, UserResponse{
		ID:    account.ID.String(),
		Email: account.Email,
	})
}

// LogoutResponse represents the response from logout
type LogoutResponse struct {
	Message string `json:"message"`
}

// Logout handles user logout. Tokens are stateless, so this is an audit log
// entry; expiry bounds the token's remaining lifetime.
// POST /auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	log.Info().Str("account_id", accountID.String()).Msg("User logged out")

	return c.JSON(http.StatusOK, LogoutResponse{
		Message: "Logged out successfully",
	})
}
