package inventory

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
)

type stubRepo struct {
	products map[uuid.UUID]*Product
}

func newStubRepo() *stubRepo {
	return &stubRepo{products: map[uuid.UUID]*Product{}}
}

func (r *stubRepo) Create(_ context.Context, p *Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, _, id uuid.UUID) (*Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubRepo) List(_ context.Context, _ uuid.UUID, filter ListFilter) ([]*Product, error) {
	var out []*Product
	for _, p := range r.products {
		if p.Deleted {
			continue
		}
		if filter.Kind != "" && p.Kind != filter.Kind {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubRepo) Update(_ context.Context, _, id uuid.UUID, patch UpdateProductRequest) error {
	p, ok := r.products[id]
	if !ok || p.Deleted {
		return apperr.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.UnitPrice != nil {
		p.UnitPrice = *patch.UnitPrice
	}
	if patch.PhotoURL != nil {
		p.PhotoURL = *patch.PhotoURL
	}
	return nil
}

func (r *stubRepo) AdjustStock(_ context.Context, _, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok || p.Deleted {
		return apperr.ErrNotFound
	}
	if p.StockQuantity+delta < 0 {
		return apperr.ErrInsufficientStock
	}
	p.StockQuantity += delta
	return nil
}

func (r *stubRepo) SetDeleted(_ context.Context, _, id uuid.UUID, deleted bool) error {
	p, ok := r.products[id]
	if !ok || p.Deleted == deleted {
		return apperr.ErrNotFound
	}
	p.Deleted = deleted
	return nil
}

func (r *stubRepo) ListDeleted(_ context.Context, _ uuid.UUID) ([]*Product, error) {
	var out []*Product
	for _, p := range r.products {
		if p.Deleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubRepo) Purge(_ context.Context, _, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok || !p.Deleted {
		return apperr.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func readyProduct(name string, price int64, stock int) AddProductRequest {
	return AddProductRequest{
		Name:          name,
		Kind:          "ready_product",
		UnitPrice:     decimal.NewFromInt(price),
		StockQuantity: stock,
		PhotoURL:      "https://cdn.example.com/p.jpg",
	}
}

func TestAddProduct(t *testing.T) {
	svc := NewService(newStubRepo())
	owner := uuid.New()

	p, err := svc.AddProduct(context.Background(), owner, readyProduct("  Blue Dress ", 52000, 5))
	require.NoError(t, err)
	assert.Equal(t, "Blue Dress", p.Name, "name is trimmed")
	assert.Equal(t, KindReadyProduct, p.Kind)
	assert.Equal(t, 5, p.StockQuantity)
	assert.Equal(t, owner, p.OwnerID)
}

func TestAddProduct_PhotoRules(t *testing.T) {
	svc := NewService(newStubRepo())
	owner := uuid.New()

	// Ready products need a photo.
	req := readyProduct("Blue Dress", 52000, 5)
	req.PhotoURL = ""
	_, err := svc.AddProduct(context.Background(), owner, req)
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "photo_url")

	// Raw materials must not carry one.
	_, err = svc.AddProduct(context.Background(), owner, AddProductRequest{
		Name: "Cotton Fabric", Kind: "raw_material",
		UnitPrice: decimal.NewFromInt(8000), StockQuantity: 40,
		PhotoURL: "https://cdn.example.com/fabric.jpg",
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "photo_url")

	// And without one they are fine.
	_, err = svc.AddProduct(context.Background(), owner, AddProductRequest{
		Name: "Cotton Fabric", Kind: "raw_material",
		UnitPrice: decimal.NewFromInt(8000), StockQuantity: 40,
	})
	assert.NoError(t, err)
}

func TestAddProduct_Validation(t *testing.T) {
	svc := NewService(newStubRepo())
	owner := uuid.New()

	cases := []struct {
		name   string
		mutate func(*AddProductRequest)
		field  string
	}{
		{"blank name", func(r *AddProductRequest) { r.Name = "   " }, "name"},
		{"unknown kind", func(r *AddProductRequest) { r.Kind = "service" }, "kind"},
		{"negative price", func(r *AddProductRequest) { r.UnitPrice = decimal.NewFromInt(-1) }, "unit_price"},
		{"negative stock", func(r *AddProductRequest) { r.StockQuantity = -1 }, "stock_quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := readyProduct("Blue Dress", 52000, 5)
			tc.mutate(&req)
			_, err := svc.AddProduct(context.Background(), owner, req)
			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestListProducts_Filter(t *testing.T) {
	svc := NewService(newStubRepo())
	owner := uuid.New()

	_, err := svc.AddProduct(context.Background(), owner, readyProduct("Blue Dress", 52000, 5))
	require.NoError(t, err)
	_, err = svc.AddProduct(context.Background(), owner, readyProduct("Red Dress", 48000, 2))
	require.NoError(t, err)
	_, err = svc.AddProduct(context.Background(), owner, AddProductRequest{
		Name: "Cotton Fabric", Kind: "raw_material",
		UnitPrice: decimal.NewFromInt(8000), StockQuantity: 40,
	})
	require.NoError(t, err)

	all, err := svc.ListProducts(context.Background(), owner, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ready, err := svc.ListProducts(context.Background(), owner, ListFilter{Kind: KindReadyProduct})
	require.NoError(t, err)
	assert.Len(t, ready, 2)

	dresses, err := svc.ListProducts(context.Background(), owner, ListFilter{Search: "dress"})
	require.NoError(t, err)
	assert.Len(t, dresses, 2)
}

func TestUpdateProduct_PartialPatch(t *testing.T) {
	svc := NewService(newStubRepo())
	owner := uuid.New()

	p, err := svc.AddProduct(context.Background(), owner, readyProduct("Blue Dress", 52000, 5))
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(60000)
	got, err := svc.UpdateProduct(context.Background(), owner, p.ID, UpdateProductRequest{UnitPrice: &newPrice})
	require.NoError(t, err)
	assert.True(t, got.UnitPrice.Equal(newPrice))
	assert.Equal(t, "Blue Dress", got.Name, "untouched fields survive the patch")
	assert.Equal(t, 5, got.StockQuantity)

	blank := " "
	_, err = svc.UpdateProduct(context.Background(), owner, p.ID, UpdateProductRequest{Name: &blank})
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAdjustStock(t *testing.T) {
	svc := NewService(newStubRepo())
	owner := uuid.New()

	p, err := svc.AddProduct(context.Background(), owner, readyProduct("Blue Dress", 52000, 5))
	require.NoError(t, err)

	got, err := svc.AdjustStock(context.Background(), owner, p.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 2, got.StockQuantity)

	_, err = svc.AdjustStock(context.Background(), owner, p.ID, -3)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)

	got, err = svc.GetProduct(context.Background(), owner, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.StockQuantity, "failed adjustment leaves stock untouched")

	got, err = svc.AdjustStock(context.Background(), owner, p.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, got.StockQuantity)
}

func TestProductTrashLifecycle(t *testing.T) {
	svc := NewService(newStubRepo())
	owner := uuid.New()

	p, err := svc.AddProduct(context.Background(), owner, readyProduct("Blue Dress", 52000, 5))
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(context.Background(), owner, p.ID))

	_, err = svc.GetProduct(context.Background(), owner, p.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	live, err := svc.ListProducts(context.Background(), owner, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, live)

	// Deleting twice is a no-op target, so it reports not found.
	assert.ErrorIs(t, svc.SoftDelete(context.Background(), owner, p.ID), apperr.ErrNotFound)

	require.NoError(t, svc.Restore(context.Background(), owner, p.ID))
	got, err := svc.GetProduct(context.Background(), owner, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.StockQuantity, "restore brings the product back intact")

	// Only trashed products can be purged.
	assert.ErrorIs(t, svc.Purge(context.Background(), owner, p.ID), apperr.ErrNotFound)
	require.NoError(t, svc.SoftDelete(context.Background(), owner, p.ID))
	require.NoError(t, svc.Purge(context.Background(), owner, p.ID))
	assert.ErrorIs(t, svc.Purge(context.Background(), owner, p.ID), apperr.ErrNotFound)
}
