package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const ownerColumns = `id,email,password_hash,business_name,phone,currency,created_at,updated_at`

func (r *postgresRepo) Create(ctx context.Context, o *Owner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (id,email,password_hash,business_name,phone,currency)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.Email, o.PasswordHash, o.BusinessName, o.Phone, o.Currency)
	return apperr.Storage(err)
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Owner, error) {
	return r.scanOwner(r.db.QueryRowContext(ctx, `
		SELECT `+ownerColumns+` FROM owners WHERE id=$1`, id))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*Owner, error) {
	return r.scanOwner(r.db.QueryRowContext(ctx, `
		SELECT `+ownerColumns+` FROM owners WHERE email=$1`, email))
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, id uuid.UUID, patch UpdateProfileRequest) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE owners SET
		  business_name = COALESCE($1, business_name),
		  phone         = COALESCE($2, phone),
		  currency      = COALESCE($3, currency),
		  updated_at    = NOW()
		WHERE id=$4`,
		patch.BusinessName, patch.Phone, patch.Currency, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanOwner(row *sql.Row) (*Owner, error) {
	o := &Owner{}
	err := row.Scan(&o.ID, &o.Email, &o.PasswordHash, &o.BusinessName,
		&o.Phone, &o.Currency, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return o, nil
}
