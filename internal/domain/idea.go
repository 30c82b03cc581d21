package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title must be 255 characters or less")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidCategory     = errors.New("category is not one of the allowed values")
	ErrInvalidTimeRequired = errors.New("time required must be between 1 and 240 minutes")
	ErrInvalidTimeBand     = errors.New("time filter must be one of: 15, 30, 60+")
)

// Validation constants
const (
	MaxTitleLength  = 255
	MinTimeRequired = 1
	MaxTimeRequired = 240
)

// IdeaPageSize is the fixed page size for idea list queries.
const IdeaPageSize = 20

// Categories is the fixed set of idea categories.
var Categories = []string{
	"Creative",
	"Relaxing",
	"Mindful",
	"Energizing",
	"Restorative",
	"Social",
	"Financial",
	"Nourishing",
	"Organizing",
	"Learning",
	"Nature-based",
	"Reflective",
	"Playful",
	"Confidence-building",
	"Gratifying",
}

// IsValidCategory reports whether c is one of the fixed category values.
func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// TimeBand filters ideas by the time they require.
type TimeBand string

const (
	TimeBandAny      TimeBand = ""
	TimeBandQuick    TimeBand = "15"  // 15 minutes or less
	TimeBandShort    TimeBand = "30"  // 30 minutes or less
	TimeBandExtended TimeBand = "60+" // 60 minutes or more
)

// ParseTimeBand validates a raw time filter value.
func ParseTimeBand(s string) (TimeBand, error) {
	switch TimeBand(s) {
	case TimeBandAny, TimeBandQuick, TimeBandShort, TimeBandExtended:
		return TimeBand(s), nil
	}
	return TimeBandAny, ErrInvalidTimeBand
}

// Idea is a self-care suggestion owned by a profile.
type Idea struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Category     *string   `json:"category"`
	Description  string    `json:"description"`
	Supplies     *string   `json:"supplies"`
	TimeRequired int32     `json:"timeRequired"`
	OwnerID      uuid.UUID `json:"ownerId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IdeaWithAuthor joins the owner's username for list and detail views.
type IdeaWithAuthor struct {
	Idea
	AuthorUsername string `json:"authorUsername"`
}

// Validate checks the idea's fields. Title and description must be non-empty
// after trimming, time required must lie in [1, 240], and the category, when
// present, must be one of the fixed values.
func (i *Idea) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return ErrTitleRequired
	}
	if len(i.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(i.Description) == "" {
		return ErrDescriptionRequired
	}
	if i.TimeRequired < MinTimeRequired || i.TimeRequired > MaxTimeRequired {
		return ErrInvalidTimeRequired
	}
	if i.Category != nil && *i.Category != "" && !IsValidCategory(*i.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// IdeaFilter is the predicate for list queries. Search matches title or
// description case-insensitively as a substring. Page is zero-based.
type IdeaFilter struct {
	Search   string
	Category string
	TimeBand TimeBand
	Page     int
}

// IdeaRepository defines the interface for idea persistence operations
type IdeaRepository interface {
	// List returns one page of ideas matching the filter, newest first,
	// joined with the owner's username. Length is at most IdeaPageSize.
	List(filter IdeaFilter) ([]*IdeaWithAuthor, error)
	GetByID(id uuid.UUID) (*IdeaWithAuthor, error)
	Create(idea *Idea) (*Idea, error)
	// Update and Delete match on both id and owner, so a non-owner sees
	// ErrIdeaNotFound rather than a distinguishable forbidden state.
	Update(ownerID uuid.UUID, idea *Idea) (*Idea, error)
	Delete(ownerID, id uuid.UUID) error
}
