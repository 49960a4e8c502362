//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/mkravets/userhub/internal/testutil"
	"github.com/stretchr/testify/require"
)

// userPayload is the decoded user object returned inside envelopes.
type userPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// newAdminClient registers a fresh admin account and returns a client
// authenticated as it.
func newAdminClient(t *testing.T) *testutil.Client {
	t.Helper()
	client := newTestClient(t)
	client.RegisterAs(t, "Test Admin", testutil.RandomEmail(), "admin-password", "ADMIN")
	return client
}

// newMemberClient registers a fresh member account and returns a client
// authenticated as it, along with the account's email.
func newMemberClient(t *testing.T) (*testutil.Client, string) {
	t.Helper()
	client := newTestClient(t)
	email := testutil.RandomEmail()
	client.RegisterAs(t, "Test Member", email, "member-password", "MEMBER")
	return client, email
}

// createTestUser creates a user through the admin API and returns it.
func createTestUser(t *testing.T, admin *testutil.Client, roleName string) userPayload {
	t.Helper()

	resp, err := admin.POST("/api/v1/users", map[string]string{
		"name":      testutil.RandomName("user"),
		"email":     testutil.RandomEmail(),
		"password":  "password123",
		"role_name": roleName,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Data userPayload `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.Data.ID)
	return result.Data
}
