package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kjedmeade/orange-blossom-app/internal/domain"
)

// ProfileRepository implements domain.ProfileRepository using PostgreSQL
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = "id, username, full_name, email, avatar_path, created_at, updated_at"

// GetByID retrieves a profile by its UUID (equal to the account id)
func (r *ProfileRepository) GetByID(id uuid.UUID) (*domain.Profile, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+profileColumns+" FROM profiles WHERE id = $1", id)
	return scanProfile(row)
}

// GetByUsername retrieves a profile by username
func (r *ProfileRepository) GetByUsername(username string) (*domain.Profile, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+profileColumns+" FROM profiles WHERE username = $1", username)
	return scanProfile(row)
}

// Create inserts a new profile row. The two unique constraints are reported
// separately: a primary key conflict means another request provisioned this
// principal first (benign), a username conflict means the derived name is
// held by a different principal.
func (r *ProfileRepository) Create(profile *domain.Profile) (*domain.Profile, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO profiles (id, username, full_name, email)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+profileColumns,
		profile.ID, profile.Username, profile.FullName, profile.Email)

	created, err := scanProfile(row)
	if err != nil {
		if isUniqueViolation(err, "profiles_pkey") {
			return nil, domain.ErrProfileExists
		}
		if isUniqueViolation(err, "profiles_username_key") {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}
	return created, nil
}

// Update changes username and full name. Email stays read-only.
func (r *ProfileRepository) Update(id uuid.UUID, username string, fullName *string) (*domain.Profile, error) {
	row := r.pool.QueryRow(context.Background(),
		`UPDATE profiles
		 SET username = $2, full_name = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+profileColumns,
		id, username, fullName)

	updated, err := scanProfile(row)
	if err != nil {
		if isUniqueViolation(err, "profiles_username_key") {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}
	return updated, nil
}

// UpdateAvatar sets or clears the stored avatar object path
func (r *ProfileRepository) UpdateAvatar(id uuid.UUID, avatarPath *string) (*domain.Profile, error) {
	row := r.pool.QueryRow(context.Background(),
		`UPDATE profiles
		 SET avatar_path = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+profileColumns,
		id, avatarPath)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.ID, &p.Username, &p.FullName, &p.Email, &p.AvatarPath, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}
