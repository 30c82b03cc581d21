package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kjedmeade/orange-blossom-app/internal/domain"
)

// IdeaService handles idea CRUD business logic
type IdeaService struct {
	ideas    domain.IdeaRepository
	profiles *ProfileService
}

// NewIdeaService creates a new IdeaService
func NewIdeaService(ideas domain.IdeaRepository, profiles *ProfileService) *IdeaService {
	return &IdeaService{ideas: ideas, profiles: profiles}
}

// IdeaInput carries the mutable fields for create and update
type IdeaInput struct {
	Title        string
	Category     *string
	Description  string
	Supplies     *string
	TimeRequired int32
}

// List returns one page of ideas under the filter, newest first
func (s *IdeaService) List(filter domain.IdeaFilter) ([]*domain.IdeaWithAuthor, error) {
	return s.ideas.List(filter)
}

// Get retrieves a single idea with its owner's username
func (s *IdeaService) Get(id uuid.UUID) (*domain.IdeaWithAuthor, error) {
	return s.ideas.GetByID(id)
}

// Create validates the input and inserts a new idea owned by the acting
// principal. Validation failures return before any store call. The owner
// profile is provisioned first so the owner reference always resolves.
func (s *IdeaService) Create(ownerID uuid.UUID, ownerEmail string, input IdeaInput) (*domain.Idea, error) {
	idea := buildIdea(input)
	idea.OwnerID = ownerID
	if err := idea.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.profiles.EnsureProfile(ownerID, ownerEmail); err != nil {
		return nil, err
	}

	return s.ideas.Create(idea)
}

// Update validates the input and rewrites the idea. Ownership is enforced by
// the repository predicate; a non-owner gets domain.ErrIdeaNotFound.
func (s *IdeaService) Update(ownerID, id uuid.UUID, input IdeaInput) (*domain.Idea, error) {
	idea := buildIdea(input)
	idea.ID = id
	if err := idea.Validate(); err != nil {
		return nil, err
	}

	return s.ideas.Update(ownerID, idea)
}

// Delete removes an idea owned by the acting principal
func (s *IdeaService) Delete(ownerID, id uuid.UUID) error {
	return s.ideas.Delete(ownerID, id)
}

func buildIdea(input IdeaInput) *domain.Idea {
	idea := &domain.Idea{
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		TimeRequired: input.TimeRequired,
	}
	if input.Category != nil && *input.Category != "" {
		idea.Category = input.Category
	}
	if input.Supplies != nil && strings.TrimSpace(*input.Supplies) != "" {
		idea.Supplies = input.Supplies
	}
	return idea
}
