package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a platform user managed from the admin screen.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	Name         string    `json:"name" validate:"required"`
	Role         string    `json:"role" validate:"required,oneof=admin manager agent employee"`
	Department   string    `json:"department"`
	Active       bool      `json:"active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
