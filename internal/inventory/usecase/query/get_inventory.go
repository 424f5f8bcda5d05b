package query

import (
	"context"
	"fmt"

	"github.com/tair/stock-reservation/internal/inventory/domain"
)

// GetInventoryQuery represents the query to get a product's stock state
type GetInventoryQuery struct {
	ProductID uint
}

// GetInventoryHandler handles get inventory queries
type GetInventoryHandler struct {
	repo domain.LedgerRepository
}

// NewGetInventoryHandler creates a new get inventory handler
func NewGetInventoryHandler(repo domain.LedgerRepository) *GetInventoryHandler {
	return &GetInventoryHandler{repo: repo}
}

// Handle executes the get inventory query
func (h *GetInventoryHandler) Handle(ctx context.Context, q GetInventoryQuery) (*domain.Product, error) {
	if q.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required: %w", domain.ErrProductNotFound)
	}
	return h.repo.FindByID(ctx, q.ProductID)
}
