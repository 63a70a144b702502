package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
)

// stubRepo keeps transactions in insertion order and lists them newest
// first, like the store does.
type stubRepo struct {
	entries []*Transaction
}

func (r *stubRepo) Create(_ context.Context, t *Transaction) error {
	cp := *t
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *stubRepo) List(_ context.Context, _ uuid.UUID, typ TransactionType) ([]*Transaction, error) {
	var out []*Transaction
	for i := len(r.entries) - 1; i >= 0; i-- {
		t := r.entries[i]
		if t.Deleted {
			continue
		}
		if typ != "" && t.Type != typ {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *stubRepo) Balance(_ context.Context, _ uuid.UUID) (*BalanceResponse, error) {
	b := &BalanceResponse{
		Balance:       decimal.Zero,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, t := range r.entries {
		if t.Deleted {
			continue
		}
		b.Balance = b.Balance.Add(t.Signed())
		if t.Type == TypeIncome {
			b.TotalIncome = b.TotalIncome.Add(t.Amount)
		} else {
			b.TotalExpenses = b.TotalExpenses.Add(t.Amount)
		}
	}
	return b, nil
}

func (r *stubRepo) SetDeleted(_ context.Context, _, id uuid.UUID, deleted bool) error {
	for _, t := range r.entries {
		if t.ID == id && t.Deleted != deleted {
			t.Deleted = deleted
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (r *stubRepo) ListDeleted(_ context.Context, _ uuid.UUID) ([]*Transaction, error) {
	var out []*Transaction
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].Deleted {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *stubRepo) Purge(_ context.Context, _, id uuid.UUID) error {
	for i, t := range r.entries {
		if t.ID == id && t.Deleted {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func record(t *testing.T, svc Service, owner uuid.UUID, typ string, amount int64, desc string) *Transaction {
	t.Helper()
	tx, err := svc.RecordTransaction(context.Background(), owner, RecordTransactionRequest{
		Type: typ, Amount: decimal.NewFromInt(amount), Description: desc,
	})
	require.NoError(t, err)
	return tx
}

func TestRecordTransaction_Validation(t *testing.T) {
	svc := NewService(&stubRepo{})
	owner := uuid.New()

	cases := []struct {
		name  string
		req   RecordTransactionRequest
		field string
	}{
		{"unknown type", RecordTransactionRequest{Type: "transfer", Amount: decimal.NewFromInt(100), Description: "x"}, "type"},
		{"zero amount", RecordTransactionRequest{Type: "income", Amount: decimal.Zero, Description: "x"}, "amount"},
		{"negative amount", RecordTransactionRequest{Type: "expense", Amount: decimal.NewFromInt(-500), Description: "x"}, "amount"},
		{"blank description", RecordTransactionRequest{Type: "income", Amount: decimal.NewFromInt(100), Description: "  "}, "description"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordTransaction(context.Background(), owner, tc.req)
			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestGetBalance(t *testing.T) {
	svc := NewService(&stubRepo{})
	owner := uuid.New()

	record(t, svc, owner, "income", 100000, "dress sale")
	record(t, svc, owner, "expense", 40000, "fabric purchase")

	b, err := svc.GetBalance(context.Background(), owner)
	require.NoError(t, err)
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(60000)), "balance = %s", b.Balance)
	assert.True(t, b.TotalIncome.Equal(decimal.NewFromInt(100000)))
	assert.True(t, b.TotalExpenses.Equal(decimal.NewFromInt(40000)))
}

func TestSoftDeleteRemovesFromBalance(t *testing.T) {
	svc := NewService(&stubRepo{})
	owner := uuid.New()

	record(t, svc, owner, "income", 100000, "dress sale")
	expense := record(t, svc, owner, "expense", 40000, "fabric purchase")

	require.NoError(t, svc.SoftDelete(context.Background(), owner, expense.ID))
	b, err := svc.GetBalance(context.Background(), owner)
	require.NoError(t, err)
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(100000)),
		"trashed expense must not count, got %s", b.Balance)

	require.NoError(t, svc.Restore(context.Background(), owner, expense.ID))
	b, err = svc.GetBalance(context.Background(), owner)
	require.NoError(t, err)
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(60000)),
		"restored expense counts again, got %s", b.Balance)
}

func TestListTransactions(t *testing.T) {
	svc := NewService(&stubRepo{})
	owner := uuid.New()

	record(t, svc, owner, "income", 100000, "dress sale")
	record(t, svc, owner, "expense", 40000, "fabric purchase")
	record(t, svc, owner, "income", 25000, "scarf sale")

	all, err := svc.ListTransactions(context.Background(), owner, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "scarf sale", all[0].Description, "newest first")

	income, err := svc.ListTransactions(context.Background(), owner, TypeIncome)
	require.NoError(t, err)
	assert.Len(t, income, 2)

	_, err = svc.ListTransactions(context.Background(), owner, "transfer")
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestTransactionTrashLifecycle(t *testing.T) {
	svc := NewService(&stubRepo{})
	owner := uuid.New()

	tx := record(t, svc, owner, "expense", 40000, "fabric purchase")

	// Purging a live entry must fail.
	assert.ErrorIs(t, svc.Purge(context.Background(), owner, tx.ID), apperr.ErrNotFound)

	require.NoError(t, svc.SoftDelete(context.Background(), owner, tx.ID))
	deleted, err := svc.ListDeleted(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, deleted, 1)

	require.NoError(t, svc.Purge(context.Background(), owner, tx.ID))
	assert.ErrorIs(t, svc.Purge(context.Background(), owner, tx.ID), apperr.ErrNotFound)
}

func TestSigned(t *testing.T) {
	income := &Transaction{Type: TypeIncome, Amount: decimal.NewFromInt(500)}
	expense := &Transaction{Type: TypeExpense, Amount: decimal.NewFromInt(500)}
	assert.True(t, income.Signed().Equal(decimal.NewFromInt(500)))
	assert.True(t, expense.Signed().Equal(decimal.NewFromInt(-500)))
}
