package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/stock-reservation/internal/inventory/domain"
)

func reserveOne(t *testing.T, uow domain.UnitOfWork, productID uint, qty int) *domain.Reservation {
	t.Helper()
	h := NewReserveStockHandler(uow, testConfig(), &fakeAlerter{})
	reservation, err := h.Handle(context.Background(), ReserveStockCommand{
		ProductID: productID,
		OrderID:   "order-1",
		Quantity:  qty,
	})
	require.NoError(t, err)
	return reservation
}

func TestReleaseReservation_CreditsLedgerExactlyOnce(t *testing.T) {
	store := newMemStore()
	store.addProduct(domain.Product{ID: 1, Name: "Tea", VendorID: 3, Available: 10, InventoryType: domain.InStock})
	uow := newMemUnitOfWork(store)
	reservation := reserveOne(t, uow, 1, 4)

	h := NewReleaseReservationHandler(uow, testConfig(), &fakeAlerter{})

	require.NoError(t, h.Handle(context.Background(), ReleaseReservationCommand{ReservationID: reservation.ID}))
	assert.Equal(t, 10, store.products[1].Available)
	assert.Equal(t, 0, store.products[1].ReservedTotal)
	assert.Empty(t, store.reservations)

	// Double release is a no-op, not a double credit
	require.NoError(t, h.Handle(context.Background(), ReleaseReservationCommand{ReservationID: reservation.ID}))
	assert.Equal(t, 10, store.products[1].Available)
	assert.Equal(t, 0, store.products[1].ReservedTotal)
}

func TestReleaseReservation_UnknownIDIsSuccess(t *testing.T) {
	store := newMemStore()
	store.addProduct(domain.Product{ID: 1, Name: "Tea", VendorID: 3, Available: 10, InventoryType: domain.InStock})
	h := NewReleaseReservationHandler(newMemUnitOfWork(store), testConfig(), &fakeAlerter{})

	assert.NoError(t, h.Handle(context.Background(), ReleaseReservationCommand{ReservationID: "nope"}))
	assert.Equal(t, 10, store.products[1].Available)
}

func TestReleaseReservation_MissingProductRollsBack(t *testing.T) {
	store := newMemStore()
	store.addProduct(domain.Product{ID: 1, Name: "Tea", VendorID: 3, Available: 10, InventoryType: domain.InStock})
	uow := newMemUnitOfWork(store)
	reservation := reserveOne(t, uow, 1, 2)

	delete(store.products, 1)

	h := NewReleaseReservationHandler(uow, testConfig(), &fakeAlerter{})
	err := h.Handle(context.Background(), ReleaseReservationCommand{ReservationID: reservation.ID})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// The rollback kept the reservation for a later repair pass
	assert.Len(t, store.reservations, 1)
}

func TestConfirmReservation_ConvertsHoldToSale(t *testing.T) {
	store := newMemStore()
	store.addProduct(domain.Product{ID: 1, Name: "Tea", VendorID: 3, Available: 10, InventoryType: domain.InStock})
	uow := newMemUnitOfWork(store)
	reservation := reserveOne(t, uow, 1, 4)

	h := NewConfirmReservationHandler(uow, testConfig())
	require.NoError(t, h.Handle(context.Background(), ConfirmReservationCommand{ReservationID: reservation.ID}))

	product := store.products[1]
	assert.Equal(t, 6, product.Available, "confirm must not credit the ledger")
	assert.Equal(t, 0, product.ReservedTotal)
	assert.Equal(t, 4, product.SoldTotal)
	assert.Empty(t, store.reservations)

	// A second confirm has nothing to convert
	err := h.Handle(context.Background(), ConfirmReservationCommand{ReservationID: reservation.ID})
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestRestock_CreditsAvailable(t *testing.T) {
	store := newMemStore()
	store.addProduct(domain.Product{ID: 1, Name: "Tea", VendorID: 3, Available: 0, InventoryType: domain.OutOfStock})
	alerter := &fakeAlerter{}
	h := NewRestockHandler(newMemUnitOfWork(store), testConfig(), alerter)

	product, err := h.Handle(context.Background(), RestockCommand{ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, product.Available)
	assert.Equal(t, domain.LowStock, product.InventoryType)
	// Stock came back but barely: that transition is alert-worthy
	assert.Equal(t, 1, alerter.count())

	_, err = h.Handle(context.Background(), RestockCommand{ProductID: 9, Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = h.Handle(context.Background(), RestockCommand{ProductID: 1, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestConservationLaw(t *testing.T) {
	const provisioned = 30

	store := newMemStore()
	store.addProduct(domain.Product{ID: 1, Name: "Tea", VendorID: 3, Available: provisioned, InventoryType: domain.InStock})
	uow := newMemUnitOfWork(store)
	cfg := testConfig()

	reserve := NewReserveStockHandler(uow, cfg, &fakeAlerter{})
	release := NewReleaseReservationHandler(uow, cfg, &fakeAlerter{})
	confirm := NewConfirmReservationHandler(uow, cfg)

	check := func(step string) {
		t.Helper()
		p := store.products[1]
		total := p.Available + p.ReservedTotal + p.SoldTotal
		assert.Equal(t, provisioned, total, "conservation violated after %s", step)
	}

	r1, err := reserve.Handle(context.Background(), ReserveStockCommand{ProductID: 1, OrderID: "o1", Quantity: 5})
	require.NoError(t, err)
	check("reserve r1")

	r2, err := reserve.Handle(context.Background(), ReserveStockCommand{ProductID: 1, OrderID: "o2", Quantity: 3})
	require.NoError(t, err)
	check("reserve r2")

	require.NoError(t, confirm.Handle(context.Background(), ConfirmReservationCommand{ReservationID: r1.ID}))
	check("confirm r1")

	require.NoError(t, release.Handle(context.Background(), ReleaseReservationCommand{ReservationID: r2.ID}))
	check("release r2")

	require.NoError(t, release.Handle(context.Background(), ReleaseReservationCommand{ReservationID: r2.ID}))
	check("double release r2")

	p := store.products[1]
	assert.Equal(t, 25, p.Available)
	assert.Equal(t, 0, p.ReservedTotal)
	assert.Equal(t, 5, p.SoldTotal)
}
