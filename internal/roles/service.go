// Package roles provides management of authorization roles.
package roles

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mkravets/userhub/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upperCaser = cases.Upper(language.Und)

// CanonicalName folds a role name to its stored form: trimmed and
// upper-cased with full Unicode case mapping, so lookups are
// case-insensitive by construction.
func CanonicalName(name string) string {
	return upperCaser.String(strings.TrimSpace(name))
}

// Service implements role management business logic.
type Service struct {
	repo Repository
}

// NewService creates a new roles service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a new role under its canonical name.
func (s *Service) Create(ctx context.Context, name string) (*domain.Role, error) {
	role := &domain.Role{
		ID:   uuid.NewString(),
		Name: CanonicalName(name),
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// List returns all roles.
func (s *Service) List(ctx context.Context) ([]domain.Role, error) {
	return s.repo.List(ctx)
}

// GetByName returns the role with the given name, ignoring case and
// surrounding whitespace.
func (s *Service) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	return s.repo.GetByName(ctx, CanonicalName(name))
}
