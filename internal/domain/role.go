package domain

import "time"

// Role is a named authorization tier. Every user references exactly
// one role; tokens embed the role name as a snapshot taken at issuance.
type Role struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Well-known role names seeded by the initial migration. Roles are
// ordinary rows, so deployments may add their own beyond these.
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)
