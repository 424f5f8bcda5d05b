package command

import (
	"context"
	"fmt"

	"github.com/tair/stock-reservation/internal/config"
	"github.com/tair/stock-reservation/internal/inventory/domain"
)

// ConfirmReservationCommand turns a hold into a permanent sale
type ConfirmReservationCommand struct {
	ReservationID string
}

// ConfirmReservationHandler handles the confirm reservation command
type ConfirmReservationHandler struct {
	uow domain.UnitOfWork
	cfg *config.Config
}

// NewConfirmReservationHandler creates a new confirm reservation handler
func NewConfirmReservationHandler(uow domain.UnitOfWork, cfg *config.Config) *ConfirmReservationHandler {
	return &ConfirmReservationHandler{uow: uow, cfg: cfg}
}

// Handle deletes the reservation without crediting the ledger: the available
// debit from reserve time is what the sale consumes. Confirming a hold that no
// longer exists is an error, since the stock may already have been resold.
func (h *ConfirmReservationHandler) Handle(ctx context.Context, cmd ConfirmReservationCommand) error {
	if cmd.ReservationID == "" {
		return fmt.Errorf("reservation_id is required: %w", domain.ErrReservationNotFound)
	}

	return h.uow.WithinTx(ctx, func(repos domain.RepoSet) error {
		reservation, err := repos.Reservations().FindByID(ctx, cmd.ReservationID)
		if err != nil {
			return err
		}

		affected, err := repos.Reservations().DeleteByID(ctx, reservation.ID)
		if err != nil {
			return fmt.Errorf("failed to delete reservation: %w", err)
		}
		if affected != 1 {
			return domain.ErrReservationNotFound
		}

		product, err := repos.Ledger().LockByID(ctx, reservation.ProductID)
		if err != nil {
			return err
		}

		if err := product.Commit(reservation.Quantity); err != nil {
			return err
		}
		product.Reclassify(h.cfg.LowStockThreshold)

		if err := repos.Ledger().Save(ctx, product); err != nil {
			return fmt.Errorf("failed to save ledger state: %w", err)
		}
		return nil
	})
}
