package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kjedmeade/orange-blossom-app/internal/domain"
)

// IdeaRepository implements domain.IdeaRepository using PostgreSQL
type IdeaRepository struct {
	pool *pgxpool.Pool
}

// NewIdeaRepository creates a new IdeaRepository
func NewIdeaRepository(pool *pgxpool.Pool) *IdeaRepository {
	return &IdeaRepository{pool: pool}
}

const (
	ideaColumns   = "i.id, i.title, i.category, i.description, i.supplies, i.time_required, i.owner_id, i.created_at, i.updated_at"
	ideaReturning = "id, title, category, description, supplies, time_required, owner_id, created_at, updated_at"
)

// List returns one page of ideas matching the filter, newest first, joined
// with the owner's username. The page is zero-based and at most
// domain.IdeaPageSize rows long; no total count is computed.
func (r *IdeaRepository) List(filter domain.IdeaFilter) ([]*domain.IdeaWithAuthor, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + ideaColumns + ", p.username FROM ideas i JOIN profiles p ON p.id = i.owner_id")

	var conds []string
	var args []any

	if search := strings.TrimSpace(filter.Search); search != "" {
		// The term is not escaped, so % and _ inside it act as ILIKE wildcards.
		args = append(args, "%"+search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(i.title ILIKE $%d OR i.description ILIKE $%d)", n, n))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("i.category = $%d", len(args)))
	}
	switch filter.TimeBand {
	case domain.TimeBandQuick:
		conds = append(conds, "i.time_required <= 15")
	case domain.TimeBandShort:
		conds = append(conds, "i.time_required <= 30")
	case domain.TimeBandExtended:
		conds = append(conds, "i.time_required >= 60")
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	page := filter.Page
	if page < 0 {
		page = 0
	}
	args = append(args, domain.IdeaPageSize, page*domain.IdeaPageSize)
	sb.WriteString(" ORDER BY i.created_at DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	rows, err := r.pool.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ideas := make([]*domain.IdeaWithAuthor, 0, domain.IdeaPageSize)
	for rows.Next() {
		idea, err := scanIdeaWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ideas, nil
}

// GetByID retrieves a single idea with its owner's username
func (r *IdeaRepository) GetByID(id uuid.UUID) (*domain.IdeaWithAuthor, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+ideaColumns+", p.username FROM ideas i JOIN profiles p ON p.id = i.owner_id WHERE i.id = $1", id)

	idea, err := scanIdeaWithAuthor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIdeaNotFound
		}
		return nil, err
	}
	return idea, nil
}

// Create inserts a new idea. The store generates id and timestamps; the owner
// id comes stamped by the caller.
func (r *IdeaRepository) Create(idea *domain.Idea) (*domain.Idea, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO ideas (title, category, description, supplies, time_required, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+ideaReturning,
		idea.Title, idea.Category, idea.Description, idea.Supplies, idea.TimeRequired, idea.OwnerID)

	var created domain.Idea
	err := row.Scan(&created.ID, &created.Title, &created.Category, &created.Description,
		&created.Supplies, &created.TimeRequired, &created.OwnerID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update rewrites an idea's mutable fields and refreshes updated_at. The
// predicate matches both id and owner so a non-owner gets ErrIdeaNotFound.
func (r *IdeaRepository) Update(ownerID uuid.UUID, idea *domain.Idea) (*domain.Idea, error) {
	row := r.pool.QueryRow(context.Background(),
		`UPDATE ideas
		 SET title = $3, category = $4, description = $5, supplies = $6, time_required = $7, updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING `+ideaReturning,
		idea.ID, ownerID, idea.Title, idea.Category, idea.Description, idea.Supplies, idea.TimeRequired)

	var updated domain.Idea
	err := row.Scan(&updated.ID, &updated.Title, &updated.Category, &updated.Description,
		&updated.Supplies, &updated.TimeRequired, &updated.OwnerID, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIdeaNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes an idea. Hard delete, owner-scoped.
func (r *IdeaRepository) Delete(ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(),
		"DELETE FROM ideas WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdeaNotFound
	}
	return nil
}

func scanIdeaWithAuthor(row pgx.Row) (*domain.IdeaWithAuthor, error) {
	var idea domain.IdeaWithAuthor
	err := row.Scan(&idea.ID, &idea.Title, &idea.Category, &idea.Description, &idea.Supplies,
		&idea.TimeRequired, &idea.OwnerID, &idea.CreatedAt, &idea.UpdatedAt, &idea.AuthorUsername)
	if err != nil {
		return nil, err
	}
	return &idea, nil
}
