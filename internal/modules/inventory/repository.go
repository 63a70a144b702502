package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for products. Every operation is scoped
// by owner; a row belonging to another owner behaves as if it did not
// exist.
type Repository interface {
	// Create persists a new product.
	Create(ctx context.Context, p *Product) error

	// GetByID returns a product regardless of its tombstone state.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Product, error)

	// List returns non-deleted products matching the filter, newest first.
	List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Product, error)

	// Update applies a field patch to a non-deleted product.
	Update(ctx context.Context, ownerID, id uuid.UUID, patch UpdateProductRequest) error

	// AdjustStock atomically applies delta with a conditional update that
	// refuses to drive stock below zero. Returns apperr.ErrInsufficientStock
	// when the condition fails on an existing row.
	AdjustStock(ctx context.Context, ownerID, id uuid.UUID, delta int) error

	// SetDeleted flips the tombstone. deleted=true only affects live rows,
	// deleted=false only tombstoned ones; anything else is ErrNotFound.
	SetDeleted(ctx context.Context, ownerID, id uuid.UUID, deleted bool) error

	// ListDeleted returns tombstoned products, newest first.
	ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Product, error)

	// Purge physically removes an already-tombstoned product.
	Purge(ctx context.Context, ownerID, id uuid.UUID) error
}
