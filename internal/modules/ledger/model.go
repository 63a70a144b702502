package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry's effect on the balance.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is an append-only ledger entry. Once written, only the
// tombstone flag ever changes.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"` // always positive
	Description string          `json:"description"`
	Deleted     bool            `json:"deleted"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Signed returns the transaction's contribution to the balance:
// +amount for income, -amount for expense.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// RecordTransactionRequest is the payload for appending a ledger entry.
type RecordTransactionRequest struct {
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Description string          `json:"description" validate:"required"`
}

// BalanceResponse is the aggregate view of the ledger.
type BalanceResponse struct {
	Balance       decimal.Decimal `json:"balance"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
}
