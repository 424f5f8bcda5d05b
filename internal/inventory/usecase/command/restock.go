package command

import (
	"context"
	"fmt"

	"github.com/tair/stock-reservation/internal/config"
	"github.com/tair/stock-reservation/internal/inventory/domain"
)

// RestockCommand provisions additional sellable quantity for a product
type RestockCommand struct {
	ProductID uint
	Quantity  int
}

// RestockHandler handles the restock command
type RestockHandler struct {
	uow     domain.UnitOfWork
	cfg     *config.Config
	alerter domain.StockAlerter
}

// NewRestockHandler creates a new restock handler
func NewRestockHandler(uow domain.UnitOfWork, cfg *config.Config, alerter domain.StockAlerter) *RestockHandler {
	return &RestockHandler{uow: uow, cfg: cfg, alerter: alerter}
}

// Handle executes the restock command
func (h *RestockHandler) Handle(ctx context.Context, cmd RestockCommand) (*domain.Product, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required: %w", domain.ErrProductNotFound)
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", domain.ErrInvalidQuantity)
	}

	var snapshot domain.Product
	var alert bool

	err := h.uow.WithinTx(ctx, func(repos domain.RepoSet) error {
		product, err := repos.Ledger().LockByID(ctx, cmd.ProductID)
		if err != nil {
			return err
		}

		prev := product.InventoryType
		if err := product.Restock(cmd.Quantity); err != nil {
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
		return nil, err
	}

	if alert {
		h.alerter.LowStock(ctx, snapshot, h.cfg.LowStockThreshold)
	}
	return &snapshot, nil
}
