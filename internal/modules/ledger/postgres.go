package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const txColumns = `id,owner_id,type,amount,description,deleted,created_at`

func (r *postgresRepo) Create(ctx context.Context, t *Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id,owner_id,type,amount,description,deleted)
		VALUES ($1,$2,$3,$4,$5,false)`,
		t.ID, t.OwnerID, t.Type, t.Amount, t.Description)
	return apperr.Storage(err)
}

func (r *postgresRepo) List(ctx context.Context, ownerID uuid.UUID, typ TransactionType) ([]*Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE owner_id=$1 AND deleted=false`
	args := []interface{}{ownerID}
	if typ != "" {
		args = append(args, typ)
		query += fmt.Sprintf(` AND type=$%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`
	return r.queryTransactions(ctx, query, args...)
}

// Balance aggregates in SQL so the figure reflects exactly the rows the
// store considers live, not whatever the process last fetched.
func (r *postgresRepo) Balance(ctx context.Context, ownerID uuid.UUID) (*BalanceResponse, error) {
	b := &BalanceResponse{}
	err := r.db.QueryRowContext(ctx, `
		SELECT
		  COALESCE(SUM(CASE WHEN type='income'  THEN amount ELSE -amount END), 0),
		  COALESCE(SUM(CASE WHEN type='income'  THEN amount ELSE 0 END), 0),
		  COALESCE(SUM(CASE WHEN type='expense' THEN amount ELSE 0 END), 0)
		FROM transactions WHERE owner_id=$1 AND deleted=false`, ownerID).
		Scan(&b.Balance, &b.TotalIncome, &b.TotalExpenses)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return b, nil
}

func (r *postgresRepo) SetDeleted(ctx context.Context, ownerID, id uuid.UUID, deleted bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET deleted=$1
		WHERE id=$2 AND owner_id=$3 AND deleted=$4`,
		deleted, id, ownerID, !deleted)
	if err != nil {
		return apperr.Storage(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Transaction, error) {
	return r.queryTransactions(ctx, `
		SELECT `+txColumns+` FROM transactions
		WHERE owner_id=$1 AND deleted=true ORDER BY created_at DESC`, ownerID)
}

func (r *postgresRepo) Purge(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM transactions WHERE id=$1 AND owner_id=$2 AND deleted=true`, id, ownerID)
	if err != nil {
		return apperr.Storage(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]*Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()
	var transactions []*Transaction
	for rows.Next() {
		t := &Transaction{}
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Type, &t.Amount,
			&t.Description, &t.Deleted, &t.CreatedAt); err != nil {
			return nil, apperr.Storage(err)
		}
		transactions = append(transactions, t)
	}
	return transactions, apperr.Storage(rows.Err())
}
