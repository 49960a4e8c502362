// Package users provides management of user accounts.
package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkravets/userhub/internal/domain"
	"github.com/mkravets/userhub/internal/identity"
)

// Service implements user management business logic.
type Service struct {
	repo   Repository
	roles  RoleResolver
	hasher *identity.Hasher
}

// NewService creates a new users service.
func NewService(repo Repository, roles RoleResolver, hasher *identity.Hasher) *Service {
	return &Service{
		repo:   repo,
		roles:  roles,
		hasher: hasher,
	}
}

// CreateInput contains the fields required to create a user.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	RoleName string
}

// Create adds a new user with a hashed password and a resolved role.
// Same policy as registration: unique email, minimum password length.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	if len(in.Password) < identity.MinPasswordLength {
		return nil, identity.ErrPasswordTooShort
	}

	role, err := s.roles.GetByName(ctx, in.RoleName)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		RoleID:       role.ID,
		RoleName:     role.Name,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns all users with their role names.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Get returns the user with the given ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateInput contains the fields that may be changed on a user.
// Password and RoleName are optional: a blank password keeps the
// stored digest, an empty role name keeps the current role.
type UpdateInput struct {
	Name     string
	Email    string
	Password string
	RoleName string
}

// Update modifies an existing user. Changing the email re-checks
// uniqueness. Reassigning the role does not touch outstanding tokens:
// their role claim is a snapshot from issuance and lags until the
// user logs in again.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != user.Email {
		exists, err := s.repo.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return nil, fmt.Errorf("check email exists: %w", err)
		}
		if exists {
			return nil, ErrEmailExists
		}
	}

	user.Name = in.Name
	user.Email = in.Email

	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if in.RoleName != "" {
		role, err := s.roles.GetByName(ctx, in.RoleName)
		if err != nil {
			return nil, err
		}
		user.RoleID = role.ID
		user.RoleName = role.Name
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user with the given ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
