package command

import (
	"context"
	"fmt"

	"github.com/tair/stock-reservation/internal/config"
	"github.com/tair/stock-reservation/internal/inventory/domain"
)

// CreateProductCommand provisions a new stock-bearing product
type CreateProductCommand struct {
	Name         string
	VendorID     uint
	InitialStock int
}

// CreateProductHandler handles the create product command
type CreateProductHandler struct {
	uow domain.UnitOfWork
	cfg *config.Config
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(uow domain.UnitOfWork, cfg *config.Config) *CreateProductHandler {
	return &CreateProductHandler{uow: uow, cfg: cfg}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.VendorID == 0 {
		return nil, fmt.Errorf("vendor_id is required")
	}
	if cmd.InitialStock < 0 {
		return nil, fmt.Errorf("initial stock cannot be negative: %w", domain.ErrInvalidQuantity)
	}

	product := &domain.Product{
		Name:          cmd.Name,
		VendorID:      cmd.VendorID,
		Available:     cmd.InitialStock,
		InventoryType: domain.Classify(cmd.InitialStock, h.cfg.LowStockThreshold),
	}

	err := h.uow.WithinTx(ctx, func(repos domain.RepoSet) error {
		return repos.Ledger().Create(ctx, product)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}
