package command

import (
	"context"
	"fmt"

	"github.com/tair/stock-reservation/internal/inventory/domain"
	"github.com/tair/stock-reservation/pkg/logger"
)

// ReleaseOrderHoldsCommand releases every reservation still held by an order
type ReleaseOrderHoldsCommand struct {
	OrderID string
}

// ReleaseOrderHoldsHandler handles the release order holds command. It exists
// for the abandoned-order sweep, which releases defensively: the expiry sweep
// has usually reclaimed these holds already, and releasing twice is harmless.
type ReleaseOrderHoldsHandler struct {
	reservations domain.ReservationRepository
	release      *ReleaseReservationHandler
}

// NewReleaseOrderHoldsHandler creates a new release order holds handler
func NewReleaseOrderHoldsHandler(reservations domain.ReservationRepository, release *ReleaseReservationHandler) *ReleaseOrderHoldsHandler {
	return &ReleaseOrderHoldsHandler{reservations: reservations, release: release}
}

// Handle executes the release order holds command and reports how many holds
// it released
func (h *ReleaseOrderHoldsHandler) Handle(ctx context.Context, cmd ReleaseOrderHoldsCommand) (int, error) {
	if cmd.OrderID == "" {
		return 0, fmt.Errorf("order_id is required")
	}

	reservations, err := h.reservations.FindByOrderID(ctx, cmd.OrderID)
	if err != nil {
		return 0, fmt.Errorf("failed to list reservations for order: %w", err)
	}

	released := 0
	for _, reservation := range reservations {
		if err := h.release.Handle(ctx, ReleaseReservationCommand{ReservationID: reservation.ID}); err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("order_id", cmd.OrderID).
				Str("reservation_id", reservation.ID).
				Msg("Failed to release order hold")
			continue
		}
		released++
	}
	return released, nil
}
