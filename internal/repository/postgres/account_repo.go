package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kjedmeade/orange-blossom-app/internal/domain"
)

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = "id, email, password_hash, created_at, updated_at"

// GetByID retrieves an account by its UUID
func (r *AccountRepository) GetByID(id uuid.UUID) (*domain.Account, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+accountColumns+" FROM accounts WHERE id = $1", id)
	return scanAccount(row)
}

// GetByEmail retrieves an account by email, matched case-insensitively
func (r *AccountRepository) GetByEmail(email string) (*domain.Account, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+accountColumns+" FROM accounts WHERE email = lower($1)", strings.TrimSpace(email))
	return scanAccount(row)
}

// Create inserts a new account. A duplicate email maps to ErrEmailTaken.
func (r *AccountRepository) Create(email, passwordHash string) (*domain.Account, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO accounts (email, password_hash)
		 VALUES (lower($1), $2)
		 RETURNING `+accountColumns,
		strings.TrimSpace(email), passwordHash)

	account, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err, "accounts_email_key") {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return account, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}
