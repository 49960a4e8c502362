package identity

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mkravets/userhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	users         map[string]*domain.User
	roles         map[string]*domain.Role
	createUserErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users: make(map[string]*domain.User),
		roles: map[string]*domain.Role{
			"MEMBER": {ID: "role-member-id", Name: "MEMBER"},
			"ADMIN":  {ID: "role-admin-id", Name: "ADMIN"},
		},
	}
}

func (m *mockRepository) CreateUser(_ context.Context, user *domain.User) error {
	if m.createUserErr != nil {
		return m.createUserErr
	}
	if _, ok := m.users[user.Email]; ok {
		return ErrEmailExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockRepository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.users[email]
	return ok, nil
}

func (m *mockRepository) GetRoleByName(_ context.Context, name string) (*domain.Role, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if r, ok := m.roles[key]; ok {
		return r, nil
	}
	return nil, ErrRoleNotFound
}

// mockAuthenticator implements Authenticator for testing.
type mockAuthenticator struct {
	issueErr error
}

func (m *mockAuthenticator) Issue(_ context.Context, subject, role string) (string, error) {
	if m.issueErr != nil {
		return "", m.issueErr
	}
	return "token-for-" + subject + "-" + role, nil
}

func (m *mockAuthenticator) ValidateToken(_ context.Context, _ string) (string, string, error) {
	return "", "", nil
}

func newTestService(repo Repository, auth Authenticator) *Service {
	return NewService(repo, auth, NewHasherWithCost(bcrypt.MinCost))
}

func TestRegister_CreatesUserAndIssuesToken(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	service := newTestService(repo, &mockAuthenticator{})

	// Act
	user, token, err := service.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		RoleName: "MEMBER",
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "MEMBER", user.RoleName)
	assert.Equal(t, "role-member-id", user.RoleID)
	assert.Equal(t, "token-for-alice@example.com-MEMBER", token)

	// Stored digest is not the plaintext password
	stored := repo.users["alice@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_EmailAlreadyExists(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	repo.users["existing@example.com"] = &domain.User{Email: "existing@example.com"}
	service := newTestService(repo, &mockAuthenticator{})

	// Act
	user, token, err := service.Register(context.Background(), RegisterInput{
		Name:     "Bob",
		Email:    "existing@example.com",
		Password: "password123",
		RoleName: "MEMBER",
	})

	// Assert
	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegister_PasswordTooShort(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	service := newTestService(repo, &mockAuthenticator{})

	// Act
	user, _, err := service.Register(context.Background(), RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "1234", // one below the minimum
		RoleName: "MEMBER",
	})

	// Assert
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Empty(t, repo.users)
}

func TestRegister_UnknownRole(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	service := newTestService(repo, &mockAuthenticator{})

	// Act
	user, _, err := service.Register(context.Background(), RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "password123",
		RoleName: "WIZARD",
	})

	// Assert
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestRegister_RoleNameIsCaseInsensitive(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	service := newTestService(repo, &mockAuthenticator{})

	// Act
	user, _, err := service.Register(context.Background(), RegisterInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "password123",
		RoleName: "  member ",
	})

	// Assert — the stored role is the canonical one
	require.NoError(t, err)
	assert.Equal(t, "MEMBER", user.RoleName)
}

func TestRegister_CreateUserRace(t *testing.T) {
	// Arrange — the pre-check passes but the insert hits the unique
	// constraint, as when two registrations race.
	repo := newMockRepository()
	repo.createUserErr = ErrEmailExists
	service := newTestService(repo, &mockAuthenticator{})

	// Act
	user, _, err := service.Register(context.Background(), RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "password123",
		RoleName: "MEMBER",
	})

	// Assert
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin_Succeeds(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	service := newTestService(repo, &mockAuthenticator{})
	_, _, err := service.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		RoleName: "ADMIN",
	})
	require.NoError(t, err)

	// Act
	user, token, err := service.Login(context.Background(), "alice@example.com", "password123")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "token-for-alice@example.com-ADMIN", token)
}

func TestLogin_WrongPassword(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	service := newTestService(repo, &mockAuthenticator{})
	_, _, err := service.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		RoleName: "MEMBER",
	})
	require.NoError(t, err)

	// Act
	user, token, err := service.Login(context.Background(), "alice@example.com", "wrongpassword")

	// Assert
	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	service := newTestService(repo, &mockAuthenticator{})
	_, _, err := service.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		RoleName: "MEMBER",
	})
	require.NoError(t, err)

	// Act — unknown email and wrong password must be indistinguishable
	_, _, errUnknown := service.Login(context.Background(), "nobody@example.com", "password123")
	_, _, errWrongPw := service.Login(context.Background(), "alice@example.com", "wrongpassword")

	// Assert
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLogin_IssueFails(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	auth := &mockAuthenticator{}
	service := newTestService(repo, auth)
	_, _, err := service.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		RoleName: "MEMBER",
	})
	require.NoError(t, err)
	auth.issueErr = errors.New("signing error")

	// Act
	user, token, err := service.Login(context.Background(), "alice@example.com", "password123")

	// Assert
	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
