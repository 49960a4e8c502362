//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/mkravets/userhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_AdminCreatesUser(t *testing.T) {
	admin := newAdminClient(t)

	email := testutil.RandomEmail()
	resp, err := admin.POST("/api/v1/users", map[string]string{
		"name":      "Created User",
		"email":     email,
		"password":  "password123",
		"role_name": "member",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Data userPayload `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.NotEmpty(t, result.Data.ID)
	assert.Equal(t, email, result.Data.Email)
	assert.Equal(t, "MEMBER", result.Data.Role)

	// The created account can log in with the assigned password.
	login := newTestClient(t)
	login.LoginAs(t, email, "password123")
}

func TestUsers_CreateRequiresAdmin(t *testing.T) {
	member, _ := newMemberClient(t)

	resp, err := member.POST("/api/v1/users", map[string]string{
		"name":      "Should Fail",
		"email":     testutil.RandomEmail(),
		"password":  "password123",
		"role_name": "MEMBER",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestUsers_CreateDuplicateEmail(t *testing.T) {
	admin := newAdminClient(t)
	created := createTestUser(t, admin, "MEMBER")

	resp, err := admin.POST("/api/v1/users", map[string]string{
		"name":      "Duplicate",
		"email":     created.Email,
		"password":  "password123",
		"role_name": "MEMBER",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestUsers_ListAndGet(t *testing.T) {
	admin := newAdminClient(t)
	created := createTestUser(t, admin, "MEMBER")

	resp, err := admin.GET("/api/v1/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listResult struct {
		Data []userPayload `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &listResult)

	var found bool
	for _, u := range listResult.Data {
		if u.ID == created.ID {
			found = true
			assert.Equal(t, created.Email, u.Email)
		}
	}
	assert.True(t, found, "created user should appear in the list")

	resp, err = admin.GET("/api/v1/users/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var getResult struct {
		Data userPayload `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &getResult)
	assert.Equal(t, created.ID, getResult.Data.ID)
	assert.Equal(t, created.Email, getResult.Data.Email)
}

func TestUsers_GetUnknownID(t *testing.T) {
	admin := newAdminClient(t)

	resp, err := admin.GET("/api/v1/users/00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUsers_Update(t *testing.T) {
	admin := newAdminClient(t)
	created := createTestUser(t, admin, "MEMBER")

	resp, err := admin.PUT("/api/v1/users/"+created.ID, map[string]string{
		"name":      "Renamed User",
		"email":     created.Email,
		"role_name": "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data userPayload `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, "Renamed User", result.Data.Name)
	assert.Equal(t, "ADMIN", result.Data.Role)
}

func TestUsers_MemberCannotReassignOwnRole(t *testing.T) {
	member, _ := newMemberClient(t)

	resp, err := member.GET("/api/v1/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		Data userPayload `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &me)

	resp, err = member.PUT("/api/v1/users/"+me.Data.ID, map[string]string{
		"name":      me.Data.Name,
		"email":     me.Data.Email,
		"role_name": "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Without a role_name the same caller may still update their profile.
	resp, err = member.PUT("/api/v1/users/"+me.Data.ID, map[string]string{
		"name":  "Renamed Member",
		"email": me.Data.Email,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data userPayload `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, "Renamed Member", result.Data.Name)
	assert.Equal(t, "MEMBER", result.Data.Role)
}

func TestUsers_UpdateBlankPasswordKeepsOld(t *testing.T) {
	admin := newAdminClient(t)
	created := createTestUser(t, admin, "MEMBER")

	// Update without a password field.
	resp, err := admin.PUT("/api/v1/users/"+created.ID, map[string]string{
		"name":  created.Name,
		"email": created.Email,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The original password still works.
	login := newTestClient(t)
	login.LoginAs(t, created.Email, "password123")
}

func TestUsers_UpdateEmailConflict(t *testing.T) {
	admin := newAdminClient(t)
	first := createTestUser(t, admin, "MEMBER")
	second := createTestUser(t, admin, "MEMBER")

	resp, err := admin.PUT("/api/v1/users/"+second.ID, map[string]string{
		"name":  second.Name,
		"email": first.Email,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestUsers_Delete(t *testing.T) {
	admin := newAdminClient(t)
	created := createTestUser(t, admin, "MEMBER")

	resp, err := admin.DELETE("/api/v1/users/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = admin.GET("/api/v1/users/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Deleting again reports not found.
	resp, err = admin.DELETE("/api/v1/users/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUsers_DeleteRequiresAdmin(t *testing.T) {
	admin := newAdminClient(t)
	created := createTestUser(t, admin, "MEMBER")

	member, _ := newMemberClient(t)
	resp, err := member.DELETE("/api/v1/users/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestUsers_ListRequiresAuth(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
