package trash

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
	"github.com/ranimhaddad/tijara-backend/internal/modules/inventory"
	"github.com/ranimhaddad/tijara-backend/internal/modules/ledger"
	"github.com/ranimhaddad/tijara-backend/internal/modules/order"
)

// The trash service only dispatches; these fakes record which collection
// was asked to restore or purge what.

type fakeInventory struct {
	inventory.Service
	deleted  []*inventory.Product
	restored []uuid.UUID
	purged   []uuid.UUID
}

func (f *fakeInventory) ListDeleted(_ context.Context, _ uuid.UUID) ([]*inventory.Product, error) {
	return f.deleted, nil
}

func (f *fakeInventory) Restore(_ context.Context, _, id uuid.UUID) error {
	f.restored = append(f.restored, id)
	return nil
}

func (f *fakeInventory) Purge(_ context.Context, _, id uuid.UUID) error {
	f.purged = append(f.purged, id)
	return nil
}

type fakeOrders struct {
	order.Service
	deleted  []*order.Order
	restored []uuid.UUID
}

func (f *fakeOrders) ListDeleted(_ context.Context, _ uuid.UUID) ([]*order.Order, error) {
	return f.deleted, nil
}

func (f *fakeOrders) Restore(_ context.Context, _, id uuid.UUID) error {
	f.restored = append(f.restored, id)
	return nil
}

type fakeLedger struct {
	ledger.Service
	deleted []*ledger.Transaction
	purged  []uuid.UUID
}

func (f *fakeLedger) ListDeleted(_ context.Context, _ uuid.UUID) ([]*ledger.Transaction, error) {
	return f.deleted, nil
}

func (f *fakeLedger) Purge(_ context.Context, _, id uuid.UUID) error {
	f.purged = append(f.purged, id)
	return nil
}

func TestList_CombinesAllCollections(t *testing.T) {
	products := &fakeInventory{deleted: []*inventory.Product{{ID: uuid.New(), Name: "Blue Dress"}}}
	orders := &fakeOrders{deleted: []*order.Order{{ID: uuid.New()}, {ID: uuid.New()}}}
	transactions := &fakeLedger{}
	svc := NewService(products, orders, transactions)

	v, err := svc.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Len(t, v.Products, 1)
	assert.Len(t, v.Orders, 2)
	assert.NotNil(t, v.Transactions, "empty collections serialize as [], not null")
	assert.Empty(t, v.Transactions)
}

func TestRestore_DispatchesByEntityType(t *testing.T) {
	products := &fakeInventory{}
	orders := &fakeOrders{}
	svc := NewService(products, orders, &fakeLedger{})
	owner := uuid.New()

	pid, oid := uuid.New(), uuid.New()
	require.NoError(t, svc.Restore(context.Background(), owner, EntityProducts, pid))
	require.NoError(t, svc.Restore(context.Background(), owner, EntityOrders, oid))

	assert.Equal(t, []uuid.UUID{pid}, products.restored)
	assert.Equal(t, []uuid.UUID{oid}, orders.restored)
}

func TestPurge_DispatchesByEntityType(t *testing.T) {
	products := &fakeInventory{}
	transactions := &fakeLedger{}
	svc := NewService(products, &fakeOrders{}, transactions)
	owner := uuid.New()

	pid, tid := uuid.New(), uuid.New()
	require.NoError(t, svc.Purge(context.Background(), owner, EntityProducts, pid))
	require.NoError(t, svc.Purge(context.Background(), owner, EntityTransactions, tid))

	assert.Equal(t, []uuid.UUID{pid}, products.purged)
	assert.Equal(t, []uuid.UUID{tid}, transactions.purged)
}

func TestUnknownEntityType(t *testing.T) {
	svc := NewService(&fakeInventory{}, &fakeOrders{}, &fakeLedger{})
	owner, id := uuid.New(), uuid.New()

	var verr *apperr.ValidationError
	assert.ErrorAs(t, svc.Restore(context.Background(), owner, "customers", id), &verr)
	assert.ErrorAs(t, svc.Purge(context.Background(), owner, "customers", id), &verr)
}
