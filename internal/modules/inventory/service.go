package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
)

// Service defines inventory business logic.
type Service interface {
	// AddProduct validates and persists a new product.
	AddProduct(ctx context.Context, ownerID uuid.UUID, req AddProductRequest) (*Product, error)

	// GetProduct returns a single non-deleted product.
	GetProduct(ctx context.Context, ownerID, id uuid.UUID) (*Product, error)

	// ListProducts returns non-deleted products, optionally filtered by
	// kind and a case-insensitive name search.
	ListProducts(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Product, error)

	// UpdateProduct patches name, price, or photo on a live product.
	UpdateProduct(ctx context.Context, ownerID, id uuid.UUID, req UpdateProductRequest) (*Product, error)

	// AdjustStock applies a signed delta, failing with InsufficientStock
	// if the result would be negative.
	AdjustStock(ctx context.Context, ownerID, id uuid.UUID, delta int) (*Product, error)

	// SoftDelete tombstones a product without touching its stock.
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error

	// Restore clears the tombstone, leaving all other fields intact.
	Restore(ctx context.Context, ownerID, id uuid.UUID) error

	// Purge irreversibly removes a tombstoned product.
	Purge(ctx context.Context, ownerID, id uuid.UUID) error

	// ListDeleted returns the trash view for products.
	ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Product, error)
}

type service struct {
	repo Repository
}

// NewService creates a new inventory service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AddProduct(ctx context.Context, ownerID uuid.UUID, req AddProductRequest) (*Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("name", "required")
	}
	kind := ProductKind(req.Kind)
	if kind != KindReadyProduct && kind != KindRawMaterial {
		return nil, apperr.Validation("kind", "must be ready_product or raw_material")
	}
	if req.UnitPrice.IsNegative() {
		return nil, apperr.Validation("unit_price", "must not be negative")
	}
	if req.StockQuantity < 0 {
		return nil, apperr.Validation("stock_quantity", "must not be negative")
	}
	// Ready products are displayed with an image; raw materials never are.
	if kind == KindReadyProduct && req.PhotoURL == "" {
		return nil, apperr.Validation("photo_url", "required for ready products")
	}
	if kind == KindRawMaterial && req.PhotoURL != "" {
		return nil, apperr.Validation("photo_url", "not allowed for raw materials")
	}

	p := &Product{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Name:          strings.TrimSpace(req.Name),
		Kind:          kind,
		UnitPrice:     req.UnitPrice,
		StockQuantity: req.StockQuantity,
		PhotoURL:      req.PhotoURL,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, ownerID, id uuid.UUID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if p.Deleted {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Product, error) {
	return s.repo.List(ctx, ownerID, filter)
}

func (s *service) UpdateProduct(ctx context.Context, ownerID, id uuid.UUID, req UpdateProductRequest) (*Product, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, apperr.Validation("name", "required")
	}
	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return nil, apperr.Validation("unit_price", "must not be negative")
	}
	if err := s.repo.Update(ctx, ownerID, id, req); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, ownerID, id)
}

func (s *service) AdjustStock(ctx context.Context, ownerID, id uuid.UUID, delta int) (*Product, error) {
	if err := s.repo.AdjustStock(ctx, ownerID, id, delta); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, ownerID, id)
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

func (s *service) ListDeleted(ctx context.Context, ownerID uuid.UUID) ([]*Product, error) {
	return s.repo.ListDeleted(ctx, ownerID)
}
