package command

import (
	"context"
	"time"

	"github.com/tair/stock-reservation/internal/config"
	invcommand "github.com/tair/stock-reservation/internal/inventory/usecase/command"
	"github.com/tair/stock-reservation/internal/order/domain"
	"github.com/tair/stock-reservation/pkg/logger"
)

// CancelResult summarizes one abandoned-order sweep
type CancelResult struct {
	Processed int `json:"processed"`
	Cancelled int `json:"cancelled"`
	Released  int `json:"released"`
	Skipped   int `json:"skipped"`
}

// HoldReleaser releases whatever reservations an order still holds
type HoldReleaser interface {
	Handle(ctx context.Context, cmd invcommand.ReleaseOrderHoldsCommand) (int, error)
}

// CancelAbandonedOrdersHandler cancels orders whose payment was started but
// never finished. Each order is its own transaction; one bad record never
// fails the batch.
type CancelAbandonedOrdersHandler struct {
	orders domain.OrderRepository
	uow    domain.UnitOfWork
	holds  HoldReleaser
	cfg    *config.Config
}

// NewCancelAbandonedOrdersHandler creates a new cancel abandoned orders handler
func NewCancelAbandonedOrdersHandler(orders domain.OrderRepository, uow domain.UnitOfWork, holds HoldReleaser, cfg *config.Config) *CancelAbandonedOrdersHandler {
	return &CancelAbandonedOrdersHandler{orders: orders, uow: uow, holds: holds, cfg: cfg}
}

// Handle executes the abandoned-order sweep
func (h *CancelAbandonedOrdersHandler) Handle(ctx context.Context) (CancelResult, error) {
	var result CancelResult
	cutoff := time.Now().Add(-h.cfg.AbandonCutoff)

	for {
		batch, err := h.orders.FindAbandoned(ctx, cutoff, h.cfg.AbandonedPaymentMethods, h.cfg.SweepBatchSize)
		if err != nil {
			return result, err
		}

		cancelledInBatch := 0
		for _, order := range batch {
			result.Processed++

			cancelled, err := h.cancelOne(ctx, order.ID)
			if err != nil {
				logger.Warn(ctx).
					Err(err).
					Str("order_id", order.ID).
					Msg("Skipping abandoned order")
				result.Skipped++
				continue
			}
			if !cancelled {
				continue
			}
			result.Cancelled++
			cancelledInBatch++

			// Defensive: the expiry sweep normally beat us here, and release
			// is idempotent either way.
			released, err := h.holds.Handle(ctx, invcommand.ReleaseOrderHoldsCommand{OrderID: order.ID})
			if err != nil {
				logger.Warn(ctx).
					Err(err).
					Str("order_id", order.ID).
					Msg("Failed to release holds for cancelled order")
			}
			result.Released += released
		}

		if len(batch) < h.cfg.SweepBatchSize || cancelledInBatch == 0 {
			break
		}
	}

	logger.Info(ctx).
		Int("processed", result.Processed).
		Int("cancelled", result.Cancelled).
		Int("released", result.Released).
		Int("skipped", result.Skipped).
		Msg("Abandoned order sweep completed")
	return result, nil
}

// cancelOne cancels a single order inside its own transaction. The order and
// its payment are both re-read under the transaction: a payment callback that
// landed after the batch select means the order is live and must not be touched.
func (h *CancelAbandonedOrdersHandler) cancelOne(ctx context.Context, orderID string) (bool, error) {
	cancelled := false
	err := h.uow.WithinTx(ctx, func(repos domain.RepoSet) error {
		order, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status != domain.OrderStatusPending {
			// Someone got here first
			return nil
		}

		payment, err := repos.Payments().FindByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		if payment.Status != domain.PaymentStatusInitiated {
			return nil
		}

		now := time.Now()
		order.Status = domain.OrderStatusCancelled
		order.AppendTimeline("Order cancelled automatically: payment abandoned", now)
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}

		payment.Status = domain.PaymentStatusCancelled
		if err := repos.Payments().Save(ctx, payment); err != nil {
			return err
		}

		cancelled = true
		return nil
	})
	return cancelled, err
}
