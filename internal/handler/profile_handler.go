package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kjedmeade/orange-blossom-app/internal/domain"
	"github.com/kjedmeade/orange-blossom-app/internal/middleware"
	"github.com/kjedmeade/orange-blossom-app/internal/service"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
	avatarService  *service.AvatarService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService, avatarService *service.AvatarService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, avatarService: avatarService}
}

// ProfileResponse represents the profile response
type ProfileResponse struct {
	ID        string                  `json:"id"`
	Username  string                  `json:"username"`
	FullName  *string                 `json:"fullName"`
	Email     string                  `json:"email"`
	Avatar    *service.AvatarMetadata `json:"avatar"`
	CreatedAt string                  `json:"createdAt"`
	UpdatedAt string                  `json:"updatedAt"`
}

// UpdateProfileRequest represents the update profile request
type UpdateProfileRequest struct {
	Username string  `json:"username"`
	FullName *string `json:"fullName"`
}

func (h *ProfileHandler) profileResponse(c echo.Context, profile *domain.Profile) ProfileResponse {
	var avatar *service.AvatarMetadata
	if h.avatarService != nil {
		avatar = h.avatarService.URLs(c.Request().Context(), profile.AvatarPath)
	}
	return ProfileResponse{
		ID:        profile.ID.String(),
		Username:  profile.Username,
		FullName:  profile.FullName,
		Email:     profile.Email,
		Avatar:    avatar,
		CreatedAt: profile.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: profile.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// PublicProfileResponse represents another user's profile as seen by an
// authenticated viewer. Email is omitted.
type PublicProfileResponse struct {
	ID        string                  `json:"id"`
	Username  string                  `json:"username"`
	FullName  *string                 `json:"fullName"`
	Avatar    *service.AvatarMetadata `json:"avatar"`
	CreatedAt string                  `json:"createdAt"`
}

// GetProfileByUsername handles GET /profiles/:username
func (h *ProfileHandler) GetProfileByUsername(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	username := c.Param("username")
	profile, err := h.profileService.GetProfileByUsername(username)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return NewNotFoundError(c, "Profile not found")
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to get profile")
		return NewInternalError(c, "Failed to get profile")
	}

	var avatar *service.AvatarMetadata
	if h.avatarService != nil {
		avatar = h.avatarService.URLs(c.Request().Context(), profile.AvatarPath)
	}

	return c.JSON(http.StatusOK, PublicProfileResponse{
		ID:        profile.ID.String(),
		Username:  profile.Username,
		FullName:  profile.FullName,
		Avatar:    avatar,
		CreatedAt: profile.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GetProfile handles GET /profile. The profile row is created on first
// access when the account has none yet.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	profile, err := h.profileService.EnsureProfile(accountID, middleware.GetEmail(c))
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to get profile")
		return NewInternalError(c, "Failed to get profile")
	}

	return c.JSON(http.StatusOK, h.profileResponse(c, profile))
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		if trimmed == "" {
			req.FullName = nil
		} else {
			req.FullName = &trimmed
		}
	}

	profile, err := h.profileService.UpdateProfile(accountID, req.Username, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameRequired),
			errors.Is(err, domain.ErrUsernameTooLong),
			errors.Is(err, domain.ErrUsernameInvalid):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "username", Message: err.Error()},
			})
		case errors.Is(err, domain.ErrFullNameTooLong):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "fullName", Message: err.Error()},
			})
		case errors.Is(err, domain.ErrUsernameTaken):
			return NewConflictError(c, "Username is already taken")
		case errors.Is(err, domain.ErrProfileNotFound):
			return NewNotFoundError(c, "Profile not found")
		default:
			log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to update profile")
			return NewInternalError(c, "Failed to update profile")
		}
	}

	log.Info().Str("account_id", accountID.String()).Str("username", profile.Username).Msg("Profile updated")

	return c.JSON(http.StatusOK, h.profileResponse(c, profile))
}

// UploadAvatar handles POST /profile/avatar
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	// If storage isn't configured, don't attempt to process/upload.
	if h.avatarService == nil || !h.avatarService.IsEnabled() {
		return NewServiceUnavailableError(c, "Avatar uploads are disabled (storage not configured)")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	metadata, err := h.avatarService.Upload(c.Request().Context(), accountID, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAvatarTooLarge),
			errors.Is(err, service.ErrAvatarInvalidFormat),
			errors.Is(err, service.ErrAvatarTooSmall),
			errors.Is(err, service.ErrAvatarInvalidData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: err.Error()},
			})
		case errors.Is(err, domain.ErrProfileNotFound):
			return NewNotFoundError(c, "Profile not found")
		default:
			log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to upload avatar")
			return NewInternalError(c, "Failed to upload avatar")
		}
	}

	log.Info().Str("account_id", accountID.String()).Msg("Avatar uploaded")

	return c.JSON(http.StatusCreated, metadata)
}

// DeleteAvatar handles DELETE /profile/avatar
func (h *ProfileHandler) DeleteAvatar(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if h.avatarService == nil || !h.avatarService.IsEnabled() {
		return NewServiceUnavailableError(c, "Avatar deletion is disabled (storage not configured)")
	}

	if err := h.avatarService.Delete(c.Request().Context(), accountID); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return NewNotFoundError(c, "Profile not found")
		}
		log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to delete avatar")
		return NewInternalError(c, "Failed to delete avatar")
	}

	log.Info().Str("account_id", accountID.String()).Msg("Avatar deleted")

	return c.NoContent(http.StatusNoContent)
}
