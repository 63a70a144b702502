package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRef is the slice of a product the workflow needs for validation
// and price snapshotting.
type ProductRef struct {
	ID            uuid.UUID
	Name          string
	UnitPrice     decimal.Decimal
	StockQuantity int
}

// Repository defines data access for orders. All operations are scoped by
// owner.
type Repository interface {
	// GetProductRef returns a non-deleted product owned by ownerID, or
	// apperr.ErrNotFound.
	GetProductRef(ctx context.Context, ownerID, productID uuid.UUID) (*ProductRef, error)

	// CreateOrder persists the order with its lines and decrements stock
	// for every line inside a single transaction. The decrement is
	// conditional on sufficient stock; if any line fails, nothing is
	// written and apperr.ErrInsufficientStock is returned.
	CreateOrder(ctx context.Context, o *Order) error

	// GetByID returns an order with its lines regardless of tombstone state.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Order, error)

	// List returns non-deleted orders matching the filter, newest first.
	List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Order, error)

	// UpdateStatus moves a non-deleted order to a new status.
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status Status) error

	// SetDeleted flips the tombstone (true only on live rows, false only
	// on tombstoned ones).
	SetDeleted(ctx context.Context, ownerID, id uuid.UUID, deleted bool) error

	// ListDeleted returns tombstoned orders, newest first.
	ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Order, error)

	// Purge physically removes an already-tombstoned order and its lines.
	Purge(ctx context.Context, ownerID, id uuid.UUID) error
}
