package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for ledger transactions.
type Repository interface {
	// Create appends a transaction.
	Create(ctx context.Context, t *Transaction) error

	// List returns non-deleted transactions, newest first, optionally
	// filtered by type.
	List(ctx context.Context, ownerID uuid.UUID, typ TransactionType) ([]*Transaction, error)

	// Balance aggregates signed amounts over non-deleted transactions.
	Balance(ctx context.Context, ownerID uuid.UUID) (*BalanceResponse, error)

	// SetDeleted flips the tombstone (true only on live rows, false only
	// on tombstoned ones).
	SetDeleted(ctx context.Context, ownerID, id uuid.UUID, deleted bool) error

	// ListDeleted returns tombstoned transactions, newest first.
	ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Transaction, error)

	// Purge physically removes an already-tombstoned transaction.
	Purge(ctx context.Context, ownerID, id uuid.UUID) error
}
