// Package identity provides registration, login, and token validation.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkravets/userhub/internal/domain"
	"github.com/mkravets/userhub/internal/pkg/metrics"
)

// MinPasswordLength is the registration password policy. It is
// enforced here rather than in the hasher so the hasher stays a pure
// digest function.
const MinPasswordLength = 5

// Service implements the authentication entry point.
type Service struct {
	repo   Repository
	auth   Authenticator
	hasher *Hasher
}

// NewService creates a new identity service.
func NewService(repo Repository, auth Authenticator, hasher *Hasher) *Service {
	return &Service{
		repo:   repo,
		auth:   auth,
		hasher: hasher,
	}
}

// RegisterInput contains the fields required to register an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	RoleName string
}

// Register creates a new user and issues a token for it.
//
// The existence pre-check and the insert are separate statements, so
// two concurrent registrations for the same email can both pass the
// check; the unique constraint decides the race and the repository
// surfaces the loser as ErrEmailExists, the same kind as the pre-check.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	exists, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, "", ErrEmailExists
	}

	if len(in.Password) < MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	role, err := s.repo.GetRoleByName(ctx, in.RoleName)
	if err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		RoleID:       role.ID,
		RoleName:     role.Name,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.auth.Issue(ctx, user.Email, role.Name)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and issues a token carrying the user's
// current role. An unknown email and a wrong password fail with the
// same error so callers cannot tell which part was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			metrics.AuthLoginAttempts.WithLabelValues("failure").Inc()
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.AuthLoginAttempts.WithLabelValues("failure").Inc()
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.auth.Issue(ctx, user.Email, user.RoleName)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	metrics.AuthLoginAttempts.WithLabelValues("success").Inc()
	return user, token, nil
}

// GetUserByEmail returns the user identified by email. Used by /me,
// where the email comes from a validated token subject.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}

// ValidateToken verifies a bearer token and returns its subject and
// role claims. Satisfies httputil.TokenValidator.
func (s *Service) ValidateToken(ctx context.Context, token string) (string, string, error) {
	return s.auth.ValidateToken(ctx, token)
}
