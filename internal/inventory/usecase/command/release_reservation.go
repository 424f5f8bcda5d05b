package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/stock-reservation/internal/config"
	"github.com/tair/stock-reservation/internal/inventory/domain"
)

// ReleaseReservationCommand ends a hold and returns its quantity to the shelf
type ReleaseReservationCommand struct {
	ReservationID string
}

// ReleaseReservationHandler handles the release reservation command
type ReleaseReservationHandler struct {
	uow     domain.UnitOfWork
	cfg     *config.Config
	alerter domain.StockAlerter
}

// NewReleaseReservationHandler creates a new release reservation handler
func NewReleaseReservationHandler(uow domain.UnitOfWork, cfg *config.Config, alerter domain.StockAlerter) *ReleaseReservationHandler {
	return &ReleaseReservationHandler{uow: uow, cfg: cfg, alerter: alerter}
}

// Handle releases the hold. It is idempotent: a reservation that is already
// gone is a success, and the ledger is credited only when this call is the one
// that deleted the row, so a double release can never double-credit.
func (h *ReleaseReservationHandler) Handle(ctx context.Context, cmd ReleaseReservationCommand) error {
	if cmd.ReservationID == "" {
		return fmt.Errorf("reservation_id is required: %w", domain.ErrReservationNotFound)
	}

	var snapshot domain.Product
	var alert bool

	err := h.uow.WithinTx(ctx, func(repos domain.RepoSet) error {
		reservation, err := repos.Reservations().FindByID(ctx, cmd.ReservationID)
		if err != nil {
			if errors.Is(err, domain.ErrReservationNotFound) {
				// Already confirmed or released
				return nil
			}
			return err
		}

		affected, err := repos.Reservations().DeleteByID(ctx, reservation.ID)
		if err != nil {
			return fmt.Errorf("failed to delete reservation: %w", err)
		}
		if affected != 1 {
			return nil
		}

		product, err := repos.Ledger().LockByID(ctx, reservation.ProductID)
		if err != nil {
			return err
		}

		prev := product.InventoryType
		if err := product.Release(reservation.Quantity); err != nil {
			return err
		}
		product.Reclassify(h.cfg.LowStockThreshold)

		if err := repos.Ledger().Save(ctx, product); err != nil {
			return fmt.Errorf("failed to save ledger state: %w", err)
		}

		snapshot = *product
		alert = domain.ShouldAlertLowStock(prev, product.InventoryType, product.Available)
		return nil
	})
	if err != nil {
		return err
	}

	if alert {
		h.alerter.LowStock(ctx, snapshot, h.cfg.LowStockThreshold)
	}
	return nil
}
