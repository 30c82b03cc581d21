package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username must be 32 characters or less")
	ErrUsernameInvalid  = errors.New("username may only contain lowercase letters, digits and underscores")
	ErrFullNameTooLong  = errors.New("full name must be 100 characters or less")
)

// Validation constants
const (
	MaxUsernameLength = 32
	MaxFullNameLength = 100
)

// Profile is a user's public identity. It is bound 1:1 to an account: the ID
// is the account's ID, not separately generated. Email is a denormalized copy
// of the account email and is never updated through the profile.
type Profile struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	FullName   *string   `json:"fullName"`
	Email      string    `json:"email"`
	AvatarPath *string   `json:"avatarPath,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Validate checks the profile's mutable fields.
func (p *Profile) Validate() error {
	if p.Username == "" {
		return ErrUsernameRequired
	}
	if len(p.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	for _, r := range p.Username {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return ErrUsernameInvalid
		}
	}
	if p.FullName != nil && len(*p.FullName) > MaxFullNameLength {
		return ErrFullNameTooLong
	}
	return nil
}

// ProfileRepository defines the interface for profile persistence operations
type ProfileRepository interface {
	GetByID(id uuid.UUID) (*Profile, error)
	GetByUsername(username string) (*Profile, error)
	// Create inserts a new profile row. It returns ErrProfileExists when the
	// primary key is already present and ErrUsernameTaken when only the
	// username collides.
	Create(profile *Profile) (*Profile, error)
	// Update changes username and full name. Email is read-only.
	Update(id uuid.UUID, username string, fullName *string) (*Profile, error)
	UpdateAvatar(id uuid.UUID, avatarPath *string) (*Profile, error)
}
