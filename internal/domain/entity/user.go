// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the LedgerBook system.
//
// Superadmin is a global operational flag, not a team membership: it grants
// cross-team listing and lifecycle overrides but never implicit access to a
// team's data. Inactive users cannot authenticate.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Superadmin   bool
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new active, non-superadmin User.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Superadmin:   false,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
