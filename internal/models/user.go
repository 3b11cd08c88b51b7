package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRole is assigned to users registered without an explicit role set.
const DefaultRole = "Employee"

// User is the identity record owned by the credential store.
// PasswordHash is never serialized to callers.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
