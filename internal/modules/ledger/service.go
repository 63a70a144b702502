package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
)

// Service defines financial ledger business logic. The balance is always
// recomputed from the surviving rows — transaction volume is small and a
// cached running total would just be one more thing to keep consistent.
type Service interface {
	// RecordTransaction validates and appends a ledger entry.
	RecordTransaction(ctx context.Context, ownerID uuid.UUID, req RecordTransactionRequest) (*Transaction, error)

	// ListTransactions returns non-deleted entries, newest first.
	ListTransactions(ctx context.Context, ownerID uuid.UUID, typ TransactionType) ([]*Transaction, error)

	// GetBalance returns Σ(income) − Σ(expenses) over non-deleted entries.
	GetBalance(ctx context.Context, ownerID uuid.UUID) (*BalanceResponse, error)

	// SoftDelete tombstones an entry, removing it from the balance.
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error

	// Restore clears the tombstone, returning the entry to the balance.
	Restore(ctx context.Context, ownerID, id uuid.UUID) error

	// Purge irreversibly removes a tombstoned entry.
	Purge(ctx context.Context, ownerID, id uuid.UUID) error

	// ListDeleted returns the trash view for transactions.
	ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Transaction, error)
}

type service struct {
	repo Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RecordTransaction(ctx context.Context, ownerID uuid.UUID, req RecordTransactionRequest) (*Transaction, error) {
	typ := TransactionType(req.Type)
	if typ != TypeIncome && typ != TypeExpense {
		return nil, apperr.Validation("type", "must be income or expense")
	}
	if !req.Amount.IsPositive() {
		return nil, apperr.Validation("amount", "must be greater than zero")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperr.Validation("description", "required")
	}

	t := &Transaction{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Type:        typ,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}
	return t, nil
}

func (s *service) ListTransactions(ctx context.Context, ownerID uuid.UUID, typ TransactionType) ([]*Transaction, error) {
	if typ != "" && typ != TypeIncome && typ != TypeExpense {
		return nil, apperr.Validation("type", "must be income or expense")
	}
	return s.repo.List(ctx, ownerID, typ)
}

func (s *service) GetBalance(ctx context.Context, ownerID uuid.UUID) (*BalanceResponse, error) {
	return s.repo.Balance(ctx, ownerID)
}

func (s *service) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.SetDeleted(ctx, ownerID, id, true)
}

func (s *service) Restore(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.SetDeleted(ctx, ownerID, id, false)
}

func (s *service) Purge(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Purge(ctx, ownerID, id)
}

func (s *service) ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Transaction, error) {
	return s.repo.ListDeleted(ctx, ownerID)
}
