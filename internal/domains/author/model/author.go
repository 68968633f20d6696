package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Author represents the core Author entity
type Author struct {
	// Identity - assigned by the database
	ID uuid.UUID `json:"id" db:"id"`

	Name        string  `json:"name" db:"name"`                 // Required, globally unique
	PhoneNumber *string `json:"phone_number" db:"phone_number"` // Optional, 10 digits

	// Audit timestamps
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"` // nil until first update
}

func (a Author) String() string {
	return fmt.Sprintf("Author(id=%s, name=%s)", a.ID, a.Name)
}
