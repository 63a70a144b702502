package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const productColumns = `id,owner_id,name,kind,unit_price,stock_quantity,photo_url,deleted,created_at,updated_at`

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id,owner_id,name,kind,unit_price,stock_quantity,photo_url,deleted)
		VALUES ($1,$2,$3,$4,$5,$6,$7,false)`,
		p.ID, p.OwnerID, p.Name, p.Kind, p.UnitPrice, p.StockQuantity, p.PhotoURL)
	return apperr.Storage(err)
}

func (r *postgresRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+` FROM products WHERE id=$1 AND owner_id=$2`, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return p, nil
}

func (r *postgresRepo) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id=$1 AND deleted=false`
	args := []interface{}{ownerID}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		query += fmt.Sprintf(` AND kind=$%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`
	return r.queryProducts(ctx, query, args...)
}

func (r *postgresRepo) Update(ctx context.Context, ownerID, id uuid.UUID, patch UpdateProductRequest) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET
		  name       = COALESCE($1, name),
		  unit_price = COALESCE($2, unit_price),
		  photo_url  = COALESCE($3, photo_url),
		  updated_at = NOW()
		WHERE id=$4 AND owner_id=$5 AND deleted=false`,
		patch.Name, patch.UnitPrice, patch.PhotoURL, id, ownerID)
	if err != nil {
		return apperr.Storage(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// AdjustStock relies on the storage layer for atomicity: the WHERE clause
// rejects any delta that would leave stock negative, so two concurrent
// order placements cannot oversell the same product.
func (r *postgresRepo) AdjustStock(ctx context.Context, ownerID, id uuid.UUID, delta int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET stock_quantity = stock_quantity + $1, updated_at = NOW()
		WHERE id=$2 AND owner_id=$3 AND deleted=false AND stock_quantity + $1 >= 0`,
		delta, id, ownerID)
	if err != nil {
		return apperr.Storage(err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}
	// Condition failed: distinguish a missing row from an insufficient one.
	var exists bool
	err = r.db.QueryRowContext(ctx, `
		SELECT true FROM products WHERE id=$1 AND owner_id=$2 AND deleted=false`, id, ownerID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}
	if err != nil {
		return apperr.Storage(err)
	}
	return apperr.ErrInsufficientStock
}

func (r *postgresRepo) SetDeleted(ctx context.Context, ownerID, id uuid.UUID, deleted bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET deleted=$1, updated_at=NOW()
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

func (r *postgresRepo) ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Product, error) {
	return r.queryProducts(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE owner_id=$1 AND deleted=true ORDER BY updated_at DESC`, ownerID)
}

func (r *postgresRepo) Purge(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM products WHERE id=$1 AND owner_id=$2 AND deleted=true`, id, ownerID)
	if err != nil {
		return apperr.Storage(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanProduct(row rowScanner) (*Product, error) {
	p := &Product{}
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Kind, &p.UnitPrice,
		&p.StockQuantity, &p.PhotoURL, &p.Deleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		products = append(products, p)
	}
	return products, apperr.Storage(rows.Err())
}
