package account

import (
	"time"

	"github.com/google/uuid"
)

// Owner is the single account every entity in the system belongs to.
type Owner struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	BusinessName string    `json:"business_name"`
	Phone        string    `json:"phone,omitempty"`
	Currency     string    `json:"currency"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	BusinessName string `json:"business_name" validate:"required"`
}

// LoginRequest is the payload for obtaining a token.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest patches mutable profile fields.
type UpdateProfileRequest struct {
	BusinessName *string `json:"business_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Currency     *string `json:"currency,omitempty"`
}
