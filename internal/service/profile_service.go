package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/kjedmeade/orange-blossom-app/internal/domain"
	"github.com/kjedmeade/orange-blossom-app/internal/util"
)

// ProfileService handles profile lookup, updates and lazy provisioning
type ProfileService struct {
	profiles domain.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles domain.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// EnsureProfile makes sure a profile row exists for the principal. Idempotent
// and safe to call concurrently: the check-then-insert race is resolved by
// the primary key constraint, whose violation is treated as "already
// provisioned" rather than an error.
//
// Any lookup error other than "not found" is returned without attempting an
// insert.
func (s *ProfileService) EnsureProfile(accountID uuid.UUID, email string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(accountID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	username := util.DeriveUsername(email, accountID.String())
	created, err := s.profiles.Create(&domain.Profile{
		ID:       accountID,
		Username: username,
		FullName: nil,
		Email:    email,
	})
	if err == nil {
		return created, nil
	}
	if errors.Is(err, domain.ErrProfileExists) {
		// Lost the provisioning race; the row is there now.
		return s.profiles.GetByID(accountID)
	}
	if errors.Is(err, domain.ErrUsernameTaken) {
		// A different principal holds the derived name. One retry with a
		// suffix from the account id keeps this principal provisioned.
		return s.createWithSuffix(accountID, email, username)
	}
	return nil, err
}

func (s *ProfileService) createWithSuffix(accountID uuid.UUID, email, base string) (*domain.Profile, error) {
	suffix := strings.ReplaceAll(accountID.String(), "-", "")[:4]
	if limit := domain.MaxUsernameLength - len(suffix) - 1; len(base) > limit {
		base = base[:limit]
	}
	created, err := s.profiles.Create(&domain.Profile{
		ID:       accountID,
		Username: base + "_" + suffix,
		FullName: nil,
		Email:    email,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProfileExists) {
			return s.profiles.GetByID(accountID)
		}
		return nil, err
	}
	return created, nil
}

// GetProfile retrieves a profile by account id
func (s *ProfileService) GetProfile(accountID uuid.UUID) (*domain.Profile, error) {
	return s.profiles.GetByID(accountID)
}

// GetProfileByUsername retrieves a profile by its username. The lookup is
// case-insensitive since stored usernames are always lower-cased.
func (s *ProfileService) GetProfileByUsername(username string) (*domain.Profile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, domain.ErrProfileNotFound
	}
	return s.profiles.GetByUsername(username)
}

// UpdateProfile changes the username and full name. The username is trimmed
// and lower-cased before validation; email is read-only.
func (s *ProfileService) UpdateProfile(accountID uuid.UUID, username string, fullName *string) (*domain.Profile, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	candidate := &domain.Profile{ID: accountID, Username: username, FullName: fullName}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	return s.profiles.Update(accountID, username, fullName)
}
