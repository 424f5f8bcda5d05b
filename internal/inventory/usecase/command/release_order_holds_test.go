package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/stock-reservation/internal/inventory/domain"
)

func TestReleaseOrderHolds_ReleasesEveryHoldForTheOrder(t *testing.T) {
	store := newMemStore()
	store.addProduct(domain.Product{ID: 1, Name: "Mug", VendorID: 2, Available: 10, InventoryType: domain.InStock})
	store.addProduct(domain.Product{ID: 2, Name: "Pot", VendorID: 2, Available: 10, InventoryType: domain.InStock})
	uow := newMemUnitOfWork(store)

	reserve := NewReserveStockHandler(uow, testConfig(), &fakeAlerter{})
	for _, cmd := range []ReserveStockCommand{
		{ProductID: 1, OrderID: "order-a", Quantity: 2},
		{ProductID: 2, OrderID: "order-a", Quantity: 3},
		{ProductID: 1, OrderID: "order-b", Quantity: 1},
	} {
		_, err := reserve.Handle(context.Background(), cmd)
		require.NoError(t, err)
	}

	release := NewReleaseReservationHandler(uow, testConfig(), &fakeAlerter{})
	h := NewReleaseOrderHoldsHandler(&memReservationRepo{store: store}, release)

	released, err := h.Handle(context.Background(), ReleaseOrderHoldsCommand{OrderID: "order-a"})
	require.NoError(t, err)
	assert.Equal(t, 2, released)

	// order-a's holds are back on the shelf, order-b's hold survives
	assert.Equal(t, 9, store.products[1].Available)
	assert.Equal(t, 1, store.products[1].ReservedTotal)
	assert.Equal(t, 10, store.products[2].Available)
	assert.Len(t, store.reservations, 1)
}

func TestReleaseOrderHolds_UnknownOrderReleasesNothing(t *testing.T) {
	store := newMemStore()
	store.addProduct(domain.Product{ID: 1, Name: "Mug", VendorID: 2, Available: 5, InventoryType: domain.InStock})
	uow := newMemUnitOfWork(store)

	release := NewReleaseReservationHandler(uow, testConfig(), &fakeAlerter{})
	h := NewReleaseOrderHoldsHandler(&memReservationRepo{store: store}, release)

	released, err := h.Handle(context.Background(), ReleaseOrderHoldsCommand{OrderID: "order-z"})
	require.NoError(t, err)
	assert.Equal(t, 0, released)

	_, err = h.Handle(context.Background(), ReleaseOrderHoldsCommand{})
	assert.Error(t, err)
}

func TestReleaseOrderHolds_KeepsGoingPastBrokenHolds(t *testing.T) {
	store := newMemStore()
	store.addProduct(domain.Product{ID: 1, Name: "Mug", VendorID: 2, Available: 10, InventoryType: domain.InStock})
	store.addProduct(domain.Product{ID: 2, Name: "Pot", VendorID: 2, Available: 10, InventoryType: domain.InStock})
	uow := newMemUnitOfWork(store)

	reserve := NewReserveStockHandler(uow, testConfig(), &fakeAlerter{})
	_, err := reserve.Handle(context.Background(), ReserveStockCommand{ProductID: 1, OrderID: "order-a", Quantity: 2})
	require.NoError(t, err)
	_, err = reserve.Handle(context.Background(), ReserveStockCommand{ProductID: 2, OrderID: "order-a", Quantity: 3})
	require.NoError(t, err)

	// One hold now points at a vanished product
	delete(store.products, 1)

	release := NewReleaseReservationHandler(uow, testConfig(), &fakeAlerter{})
	h := NewReleaseOrderHoldsHandler(&memReservationRepo{store: store}, release)

	released, err := h.Handle(context.Background(), ReleaseOrderHoldsCommand{OrderID: "order-a"})
	require.NoError(t, err)
	assert.Equal(t, 1, released)
	assert.Equal(t, 10, store.products[2].Available)
}
