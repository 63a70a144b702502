package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductKind distinguishes sellable goods from workshop inputs.
type ProductKind string

const (
	KindReadyProduct ProductKind = "ready_product"
	KindRawMaterial  ProductKind = "raw_material"
)

// Product is a stocked item owned by a single account. A soft-deleted
// product keeps its row (and stock figure) but disappears from every
// normal listing until restored.
type Product struct {
	ID            uuid.UUID       `json:"id"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	Name          string          `json:"name"`
	Kind          ProductKind     `json:"kind"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	PhotoURL      string          `json:"photo_url,omitempty"` // required for ready products
	Deleted       bool            `json:"deleted"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AddProductRequest is the payload for creating a product.
type AddProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	Kind          string          `json:"kind" validate:"required,oneof=ready_product raw_material"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"min=0"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	PhotoURL      string          `json:"photo_url,omitempty"`
}

// UpdateProductRequest patches mutable product fields. Nil pointers leave
// the current value untouched.
type UpdateProductRequest struct {
	Name      *string          `json:"name,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	PhotoURL  *string          `json:"photo_url,omitempty"`
}

// AdjustStockRequest applies a signed delta to stock_quantity.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ListFilter narrows ListProducts results.
type ListFilter struct {
	Kind   ProductKind // empty = all kinds
	Search string      // case-insensitive substring on name
}
