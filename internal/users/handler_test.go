package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mkravets/userhub/internal/domain"
	"github.com/mkravets/userhub/internal/pkg/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func updateRequest(t *testing.T, id, body, callerRole string) *http.Request {
	t.Helper()
	req := httptest.NewRequest("PUT", "/users/"+id, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), httputil.RoleKey, callerRole)
	return req.WithContext(ctx)
}

func TestUpdateHandler_RoleReassignmentRequiresAdmin(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	service := newTestService(repo)
	created, err := service.Create(context.Background(), CreateInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		RoleName: "MEMBER",
	})
	require.NoError(t, err)

	router := chi.NewRouter()
	NewHandler(service).RegisterRoutes(router)

	// Act — a member tries to grant themselves ADMIN
	body := `{"name":"Alice","email":"alice@example.com","role_name":"ADMIN"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, updateRequest(t, created.ID, body, domain.RoleMember))

	// Assert
	assert.Equal(t, http.StatusForbidden, rec.Code)
	stored, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "MEMBER", stored.RoleName, "role must be unchanged")
}

func TestUpdateHandler_MemberMayUpdateWithoutRole(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	service := newTestService(repo)
	created, err := service.Create(context.Background(), CreateInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		RoleName: "MEMBER",
	})
	require.NoError(t, err)

	router := chi.NewRouter()
	NewHandler(service).RegisterRoutes(router)

	// Act — no role_name in the body, plain profile update
	body := `{"name":"Alice Renamed","email":"alice@example.com"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, updateRequest(t, created.ID, body, domain.RoleMember))

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	stored, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", stored.Name)
	assert.Equal(t, "MEMBER", stored.RoleName)
}

func TestUpdateHandler_AdminMayReassignRole(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	service := newTestService(repo)
	created, err := service.Create(context.Background(), CreateInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		RoleName: "MEMBER",
	})
	require.NoError(t, err)

	router := chi.NewRouter()
	NewHandler(service).RegisterRoutes(router)

	// Act
	body := `{"name":"Alice","email":"alice@example.com","role_name":"ADMIN"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, updateRequest(t, created.ID, body, domain.RoleAdmin))

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	stored, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", stored.RoleName)
}
