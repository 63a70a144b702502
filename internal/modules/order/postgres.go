package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const orderColumns = `id,owner_id,customer_name,phone,shipping_location,deadline,
       total_amount,status,notes,attachments,deleted,created_at,updated_at`

func (r *postgresRepo) GetProductRef(ctx context.Context, ownerID, productID uuid.UUID) (*ProductRef, error) {
	p := &ProductRef{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, unit_price, stock_quantity
		FROM products WHERE id=$1 AND owner_id=$2 AND deleted=false`,
		productID, ownerID).
		Scan(&p.ID, &p.Name, &p.UnitPrice, &p.StockQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return p, nil
}

// CreateOrder inserts the order and its lines and decrements stock for
// every line inside one transaction. Each decrement is conditional on
// remaining stock, so a concurrent placement can never oversell: the
// losing transaction rolls back entirely and the order is not written.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Storage(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, owner_id, customer_name, phone, shipping_location, deadline,
		   total_amount, status, notes, attachments, deleted)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,false)`,
		o.ID, o.OwnerID, o.CustomerName, o.Phone, o.ShippingLocation, o.Deadline,
		o.TotalAmount, o.Status, o.Notes, pq.Array(o.Attachments))
	if err != nil {
		return apperr.Storage(fmt.Errorf("insert order: %w", err))
	}

	for _, line := range o.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_lines
			  (id, order_id, product_id, product_name, quantity, unit_price, line_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			line.ID, o.ID, line.ProductID, line.ProductName,
			line.Quantity, line.UnitPrice, line.LineTotal)
		if err != nil {
			return apperr.Storage(fmt.Errorf("insert order line: %w", err))
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE products SET stock_quantity = stock_quantity - $1, updated_at = NOW()
			WHERE id=$2 AND owner_id=$3 AND deleted=false AND stock_quantity >= $1`,
			line.Quantity, line.ProductID, o.OwnerID)
		if err != nil {
			return apperr.Storage(fmt.Errorf("reserve stock: %w", err))
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("product %q: %w", line.ProductName, apperr.ErrInsufficientStock)
		}
	}

	return apperr.Storage(tx.Commit())
}

func (r *postgresRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE id=$1 AND owner_id=$2`, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	o.Lines, err = r.listLines(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE owner_id=$1 AND deleted=false`
	args := []interface{}{ownerID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status=$%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(` AND (customer_name ILIKE $%d OR phone LIKE $%d)`, len(args), len(args))
	}
	query += ` ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, args...)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status=$1, updated_at=NOW()
		WHERE id=$2 AND owner_id=$3 AND deleted=false`,
		status, id, ownerID)
	if err != nil {
		return apperr.Storage(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetDeleted(ctx context.Context, ownerID, id uuid.UUID, deleted bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET deleted=$1, updated_at=NOW()
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

func (r *postgresRepo) ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE owner_id=$1 AND deleted=true ORDER BY updated_at DESC`, ownerID)
}

func (r *postgresRepo) Purge(ctx context.Context, ownerID, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Storage(err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM orders WHERE id=$1 AND owner_id=$2 AND deleted=true`, id, ownerID)
	if err != nil {
		return apperr.Storage(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id=$1`, id); err != nil {
		return apperr.Storage(err)
	}
	return apperr.Storage(tx.Commit())
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	var deadline sql.NullTime
	err := row.Scan(&o.ID, &o.OwnerID, &o.CustomerName, &o.Phone, &o.ShippingLocation,
		&deadline, &o.TotalAmount, &o.Status, &o.Notes,
		pq.Array(&o.Attachments), &o.Deleted, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if deadline.Valid {
		d := deadline.Time
		o.Deadline = &d
	}
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	for _, o := range orders {
		if o.Lines, err = r.listLines(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) listLines(ctx context.Context, orderID uuid.UUID) ([]*Line, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, line_total
		FROM order_lines WHERE order_id=$1 ORDER BY product_name ASC`, orderID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()
	var lines []*Line
	for rows.Next() {
		line := &Line{}
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.ProductName,
			&line.Quantity, &line.UnitPrice, &line.LineTotal); err != nil {
			return nil, apperr.Storage(err)
		}
		lines = append(lines, line)
	}
	return lines, apperr.Storage(rows.Err())
}
