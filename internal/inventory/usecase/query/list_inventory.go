package query

import (
	"context"

	"github.com/tair/stock-reservation/internal/inventory/domain"
)

// ListInventoryQuery represents the query to list product stock states
type ListInventoryQuery struct {
	Limit  int
	Offset int
}

// ListInventoryHandler handles list inventory queries
type ListInventoryHandler struct {
	repo domain.LedgerRepository
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(repo domain.LedgerRepository) *ListInventoryHandler {
	return &ListInventoryHandler{repo: repo}
}

// Handle executes the list inventory query
func (h *ListInventoryHandler) Handle(ctx context.Context, q ListInventoryQuery) ([]domain.Product, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	return h.repo.FindAll(ctx, limit, offset)
}
