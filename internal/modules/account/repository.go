package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for owner accounts.
type Repository interface {
	Create(ctx context.Context, o *Owner) error
	GetByID(ctx context.Context, id uuid.UUID) (*Owner, error)
	GetByEmail(ctx context.Context, email string) (*Owner, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch UpdateProfileRequest) error
}
