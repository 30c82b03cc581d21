package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kjedmeade/orange-blossom-app/internal/domain"
	"github.com/kjedmeade/orange-blossom-app/internal/middleware"
	"github.com/kjedmeade/orange-blossom-app/internal/service"
)

// IdeaHandler handles idea-related HTTP requests
type IdeaHandler struct {
	ideaService *service.IdeaService
}

// NewIdeaHandler creates a new IdeaHandler
func NewIdeaHandler(ideaService *service.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideaService: ideaService}
}

// IdeaRequest represents the create/update idea request body
type IdeaRequest struct {
	Title        string  `json:"title"`
	Category     *string `json:"category,omitempty"`
	Description  string  `json:"description"`
	Supplies     *string `json:"supplies,omitempty"`
	TimeRequired int32   `json:"timeRequired"`
}

// IdeaResponse represents an idea in API responses
type IdeaResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Category       *string `json:"category"`
	Description    string  `json:"description"`
	Supplies       *string `json:"supplies"`
	TimeRequired   int32   `json:"timeRequired"`
	OwnerID        string  `json:"ownerId"`
	AuthorUsername string  `json:"authorUsername,omitempty"`
	IsOwner        bool    `json:"isOwner"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// IdeaListResponse represents a page of ideas
type IdeaListResponse struct {
	Items    []IdeaResponse `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	HasMore  bool           `json:"hasMore"`
}

func ideaInput(req IdeaRequest) service.IdeaInput {
	return service.IdeaInput{
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		Supplies:     req.Supplies,
		TimeRequired: req.TimeRequired,
	}
}

func ideaResponse(idea *domain.Idea, authorUsername string, viewerID uuid.UUID) IdeaResponse {
	return IdeaResponse{
		ID:             idea.ID.String(),
		Title:          idea.Title,
		Category:       idea.Category,
		Description:    idea.Description,
		Supplies:       idea.Supplies,
		TimeRequired:   idea.TimeRequired,
		OwnerID:        idea.OwnerID.String(),
		AuthorUsername: authorUsername,
		IsOwner:        idea.OwnerID == viewerID,
		CreatedAt:      idea.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      idea.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ListIdeas handles GET /ideas
func (h *IdeaHandler) ListIdeas(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filter := domain.IdeaFilter{
		Search: strings.TrimSpace(c.QueryParam("search")),
	}

	if category := c.QueryParam("category"); category != "" {
		if !domain.IsValidCategory(category) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category", Message: domain.ErrInvalidCategory.Error()},
			})
		}
		filter.Category = category
	}

	if timeParam := c.QueryParam("time"); timeParam != "" {
		band, err := domain.ParseTimeBand(timeParam)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "time", Message: err.Error()},
			})
		}
		filter.TimeBand = band
	}

	// A malformed or negative page falls back to the first page.
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if page, err := strconv.Atoi(pageParam); err == nil && page > 0 {
			filter.Page = page
		}
	}

	ideas, err := h.ideaService.List(filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list ideas")
		return NewInternalError(c, "Failed to list ideas")
	}

	items := make([]IdeaResponse, 0, len(ideas))
	for _, idea := range ideas {
		items = append(items, ideaResponse(&idea.Idea, idea.AuthorUsername, accountID))
	}

	return c.JSON(http.StatusOK, IdeaListResponse{
		Items:    items,
		Page:     filter.Page,
		PageSize: domain.IdeaPageSize,
		HasMore:  len(ideas) == domain.IdeaPageSize,
	})
}

// GetIdea handles GET /ideas/:id
func (h *IdeaHandler) GetIdea(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewNotFoundError(c, "Idea not found")
	}

	idea, err := h.ideaService.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrIdeaNotFound) {
			return NewNotFoundError(c, "Idea not found")
		}
		log.Error().Err(err).Str("idea_id", id.String()).Msg("Failed to get idea")
		return NewInternalError(c, "Failed to get idea")
	}

	return c.JSON(http.StatusOK, ideaResponse(&idea.Idea, idea.AuthorUsername, accountID))
}

// CreateIdea handles POST /ideas
func (h *IdeaHandler) CreateIdea(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req IdeaRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	idea, err := h.ideaService.Create(accountID, middleware.GetEmail(c), ideaInput(req))
	if err != nil {
		if fieldErrs := ideaValidationErrors(err); fieldErrs != nil {
			return NewValidationError(c, "Validation failed", fieldErrs)
		}
		log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to create idea")
		return NewInternalError(c, "Failed to create idea")
	}

	log.Info().Str("account_id", accountID.String()).Str("idea_id", idea.ID.String()).Msg("Idea created")

	return c.JSON(http.StatusCreated, ideaResponse(idea, "", accountID))
}

// UpdateIdea handles PUT /ideas/:id
func (h *IdeaHandler) UpdateIdea(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewNotFoundError(c, "Idea not found")
	}

	var req IdeaRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	idea, err := h.ideaService.Update(accountID, id, ideaInput(req))
	if err != nil {
		if fieldErrs := ideaValidationErrors(err); fieldErrs != nil {
			return NewValidationError(c, "Validation failed", fieldErrs)
		}
		if errors.Is(err, domain.ErrIdeaNotFound) {
			return NewNotFoundError(c, "Idea not found")
		}
		log.Error().Err(err).Str("idea_id", id.String()).Msg("Failed to update idea")
		return NewInternalError(c, "Failed to update idea")
	}

	log.Info().Str("account_id", accountID.String()).Str("idea_id", id.String()).Msg("Idea updated")

	return c.JSON(http.StatusOK, ideaResponse(idea, "", accountID))
}

// DeleteIdea handles DELETE /ideas/:id
func (h *IdeaHandler) DeleteIdea(c echo.Context) error {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewNotFoundError(c, "Idea not found")
	}

	if err := h.ideaService.Delete(accountID, id); err != nil {
		if errors.Is(err, domain.ErrIdeaNotFound) {
			return NewNotFoundError(c, "Idea not found")
		}
		log.Error().Err(err).Str("idea_id", id.String()).Msg("Failed to delete idea")
		return NewInternalError(c, "Failed to delete idea")
	}

	log.Info().Str("account_id", accountID.String()).Str("idea_id", id.String()).Msg("Idea deleted")

	return c.NoContent(http.StatusNoContent)
}

// ideaValidationErrors maps idea validation failures to field errors.
// It returns nil for errors that are not validation related.
func ideaValidationErrors(err error) []ValidationError {
	switch {
	case errors.Is(err, domain.ErrTitleRequired), errors.Is(err, domain.ErrTitleTooLong):
		return []ValidationError{{Field: "title", Message: err.Error()}}
	case errors.Is(err, domain.ErrDescriptionRequired):
		return []ValidationError{{Field: "description", Message: err.Error()}}
	case errors.Is(err, domain.ErrInvalidCategory):
		return []ValidationError{{Field: "category", Message: err.Error()}}
	case errors.Is(err, domain.ErrInvalidTimeRequired):
		return []ValidationError{{Field: "timeRequired", Message: err.Error()}}
	default:
		return nil
	}
}
