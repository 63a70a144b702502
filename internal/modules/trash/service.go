package trash

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
	"github.com/ranimhaddad/tijara-backend/internal/modules/inventory"
	"github.com/ranimhaddad/tijara-backend/internal/modules/ledger"
	"github.com/ranimhaddad/tijara-backend/internal/modules/order"
)

// EntityType names a trash-capable collection in URLs and payloads.
type EntityType string

const (
	EntityProducts     EntityType = "products"
	EntityOrders       EntityType = "orders"
	EntityTransactions EntityType = "transactions"
)

// View is the combined trash listing across all collections.
type View struct {
	Products     []*inventory.Product  `json:"products"`
	Orders       []*order.Order        `json:"orders"`
	Transactions []*ledger.Transaction `json:"transactions"`
}

// Service is the single entry point for tombstone management. It owns no
// storage of its own; each collection keeps its tombstones and this
// service dispatches on entity type.
type Service interface {
	// List returns everything currently in the trash.
	List(ctx context.Context, ownerID uuid.UUID) (*View, error)

	// Restore clears a tombstone in the named collection.
	Restore(ctx context.Context, ownerID uuid.UUID, entity EntityType, id uuid.UUID) error

	// Purge irreversibly removes a tombstoned item from the named
	// collection. Live items cannot be purged.
	Purge(ctx context.Context, ownerID uuid.UUID, entity EntityType, id uuid.UUID) error
}

type service struct {
	products     inventory.Service
	orders       order.Service
	transactions ledger.Service
}

// NewService creates a trash service over the three trash-capable modules.
func NewService(products inventory.Service, orders order.Service, transactions ledger.Service) Service {
	return &service{products: products, orders: orders, transactions: transactions}
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) (*View, error) {
	products, err := s.products.ListDeleted(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list deleted products: %w", err)
	}
	orders, err := s.orders.ListDeleted(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list deleted orders: %w", err)
	}
	transactions, err := s.transactions.ListDeleted(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list deleted transactions: %w", err)
	}
	v := &View{Products: products, Orders: orders, Transactions: transactions}
	if v.Products == nil {
		v.Products = []*inventory.Product{}
	}
	if v.Orders == nil {
		v.Orders = []*order.Order{}
	}
	if v.Transactions == nil {
		v.Transactions = []*ledger.Transaction{}
	}
	return v, nil
}

func (s *service) Restore(ctx context.Context, ownerID uuid.UUID, entity EntityType, id uuid.UUID) error {
	switch entity {
	case EntityProducts:
		return s.products.Restore(ctx, ownerID, id)
	case EntityOrders:
		return s.orders.Restore(ctx, ownerID, id)
	case EntityTransactions:
		return s.transactions.Restore(ctx, ownerID, id)
	default:
		return apperr.Validation("type", "must be products, orders or transactions")
	}
}

func (s *service) Purge(ctx context.Context, ownerID uuid.UUID, entity EntityType, id uuid.UUID) error {
	switch entity {
	case EntityProducts:
		return s.products.Purge(ctx, ownerID, id)
	case EntityOrders:
		return s.orders.Purge(ctx, ownerID, id)
	case EntityTransactions:
		return s.transactions.Purge(ctx, ownerID, id)
	default:
		return apperr.Validation("type", "must be products, orders or transactions")
	}
}
