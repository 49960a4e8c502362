package identity

import (
	"context"

	"github.com/mkravets/userhub/internal/domain"
)

// Repository defines the credential-store surface the identity module
// consumes.
type Repository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetRoleByName(ctx context.Context, name string) (*domain.Role, error)
}

// Authenticator issues and validates bearer tokens.
type Authenticator interface {
	Issue(ctx context.Context, subject, role string) (string, error)
	ValidateToken(ctx context.Context, token string) (subject string, role string, err error)
}
