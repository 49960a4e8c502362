package users

import (
	"context"

	"github.com/mkravets/userhub/internal/domain"
)

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// RoleResolver resolves role names to roles. Implemented by the roles
// service.
type RoleResolver interface {
	GetByName(ctx context.Context, name string) (*domain.Role, error)
}
