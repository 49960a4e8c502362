// Package domain contains the core entities shared across modules.
package domain

import "time"

// User is a registered account. PasswordHash holds the bcrypt digest;
// plaintext passwords are never stored or logged.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleID       string    `json:"-"`
	RoleName     string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
