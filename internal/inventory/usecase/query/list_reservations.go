package query

import (
	"context"

	"github.com/tair/stock-reservation/internal/inventory/domain"
)

// ListReservationsQuery represents the query to list active reservations
type ListReservationsQuery struct {
	OrderID string
	Limit   int
	Offset  int
}

// ListReservationsHandler handles list reservations queries
type ListReservationsHandler struct {
	repo domain.ReservationRepository
}

// NewListReservationsHandler creates a new list reservations handler
func NewListReservationsHandler(repo domain.ReservationRepository) *ListReservationsHandler {
	return &ListReservationsHandler{repo: repo}
}

// Handle executes the list reservations query
func (h *ListReservationsHandler) Handle(ctx context.Context, q ListReservationsQuery) ([]domain.Reservation, error) {
	if q.OrderID != "" {
		return h.repo.FindByOrderID(ctx, q.OrderID)
	}

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
