package roles

import (
	"context"

	"github.com/mkravets/userhub/internal/domain"
)

// Repository defines the interface for role data operations.
type Repository interface {
	Create(ctx context.Context, role *domain.Role) error
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
}
