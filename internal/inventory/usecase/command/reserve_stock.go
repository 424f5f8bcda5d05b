package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tair/stock-reservation/internal/config"
	"github.com/tair/stock-reservation/internal/inventory/domain"
)

// ReserveStockCommand represents a purchase intent: hold Quantity units of
// ProductID until the order confirms or the TTL runs out.
type ReserveStockCommand struct {
	ProductID uint
	OrderID   string
	Quantity  int
	// TTL overrides the configured reservation timeout when positive
	TTL time.Duration
}

// ReserveStockHandler handles the reserve stock command
type ReserveStockHandler struct {
	uow     domain.UnitOfWork
	cfg     *config.Config
	alerter domain.StockAlerter
}

// NewReserveStockHandler creates a new reserve stock handler
func NewReserveStockHandler(uow domain.UnitOfWork, cfg *config.Config, alerter domain.StockAlerter) *ReserveStockHandler {
	return &ReserveStockHandler{uow: uow, cfg: cfg, alerter: alerter}
}

// Handle debits the ledger and records the hold as one atomic unit. On
// insufficient stock nothing is written and the caller must not create the
// order.
func (h *ReserveStockHandler) Handle(ctx context.Context, cmd ReserveStockCommand) (*domain.Reservation, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required: %w", domain.ErrProductNotFound)
	}
	if cmd.Quantity < 1 || cmd.Quantity > h.cfg.MaxPurchaseQuantity {
		return nil, fmt.Errorf("quantity must be between 1 and %d: %w",
			h.cfg.MaxPurchaseQuantity, domain.ErrInvalidQuantity)
	}

	ttl := cmd.TTL
	if ttl <= 0 {
		ttl = h.cfg.ReservationTTL
	}

	reservation := &domain.Reservation{
		ID:        uuid.NewString(),
		ProductID: cmd.ProductID,
		OrderID:   cmd.OrderID,
		Quantity:  cmd.Quantity,
		ExpiresAt: time.Now().Add(ttl),
	}

	var snapshot domain.Product
	var alert bool

	err := h.uow.WithinTx(ctx, func(repos domain.RepoSet) error {
		product, err := repos.Ledger().LockByID(ctx, cmd.ProductID)
		if err != nil {
			return err
		}

		prev := product.InventoryType
		if err := product.Reserve(cmd.Quantity); err != nil {
			return err
		}
		product.Reclassify(h.cfg.LowStockThreshold)

		if err := repos.Ledger().Save(ctx, product); err != nil {
			return fmt.Errorf("failed to save ledger state: %w", err)
		}
		if err := repos.Reservations().Create(ctx, reservation); err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		snapshot = *product
		alert = domain.ShouldAlertLowStock(prev, product.InventoryType, product.Available)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if alert {
		h.alerter.LowStock(ctx, snapshot, h.cfg.LowStockThreshold)
	}
	return reservation, nil
}
