// Package postgres provides the PostgreSQL implementation of the
// roles repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkravets/userhub/internal/domain"
	"github.com/mkravets/userhub/internal/roles"
)

const uniqueViolation = "23505"

// Repository implements roles.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new role row.
func (r *Repository) Create(ctx context.Context, role *domain.Role) error {
	query := `
		INSERT INTO roles (id, name)
		VALUES ($1, $2)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, role.ID, role.Name).Scan(&role.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return roles.ErrRoleExists
		}
		return fmt.Errorf("create role: %w", err)
	}
	return nil
}

// GetByName retrieves a role by name, case-insensitively.
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	query := `
		SELECT id, name, created_at
		FROM roles
		WHERE lower(name) = lower($1)
	`
	var role domain.Role
	err := r.db.QueryRow(ctx, query, name).Scan(&role.ID, &role.Name, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, roles.ErrRoleNotFound
		}
		return nil, fmt.Errorf("get role by name: %w", err)
	}
	return &role, nil
}

// List retrieves all roles ordered by name.
func (r *Repository) List(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	list := make([]domain.Role, 0)
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return list, nil
}
