package command

import (
	"context"
	"errors"
	"time"

	"github.com/tair/stock-reservation/internal/config"
	"github.com/tair/stock-reservation/internal/inventory/domain"
	"github.com/tair/stock-reservation/pkg/logger"
)

// SweepResult summarizes one expired-reservation sweep
type SweepResult struct {
	Processed int `json:"processed"`
	Released  int `json:"released"`
	Skipped   int `json:"skipped"`
}

// ExpireReservationsHandler reclaims stock from reservations whose TTL ran
// out. Each chunk runs in its own transaction, so a crash mid-sweep only
// loses the in-flight chunk.
type ExpireReservationsHandler struct {
	uow     domain.UnitOfWork
	cfg     *config.Config
	alerter domain.StockAlerter
}

// NewExpireReservationsHandler creates a new expire reservations handler
func NewExpireReservationsHandler(uow domain.UnitOfWork, cfg *config.Config, alerter domain.StockAlerter) *ExpireReservationsHandler {
	return &ExpireReservationsHandler{uow: uow, cfg: cfg, alerter: alerter}
}

// Handle sweeps until no expired reservation is left. Running it again right
// away finds nothing and is a no-op; running it concurrently is safe because
// the batch select skips rows another worker holds.
func (h *ExpireReservationsHandler) Handle(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	for {
		var chunk SweepResult
		var batchLen int
		var alerts []domain.Product

		err := h.uow.WithinTx(ctx, func(repos domain.RepoSet) error {
			chunk = SweepResult{}
			alerts = alerts[:0]

			batch, err := repos.Reservations().FindExpired(ctx, time.Now(), h.cfg.SweepBatchSize)
			if err != nil {
				return err
			}
			batchLen = len(batch)

			for _, reservation := range batch {
				chunk.Processed++

				affected, err := repos.Reservations().DeleteByID(ctx, reservation.ID)
				if err != nil {
					return err
				}
				if affected != 1 {
					// Raced with a live release or confirm
					continue
				}

				product, err := repos.Ledger().LockByID(ctx, reservation.ProductID)
				if err != nil {
					if errors.Is(err, domain.ErrProductNotFound) {
						// Orphan hold: the product is gone, there is no
						// ledger to credit. Drop it and move on.
						logger.Warn(ctx).
							Str("reservation_id", reservation.ID).
							Uint("product_id", reservation.ProductID).
							Msg("Dropping reservation for missing product")
						chunk.Skipped++
						continue
					}
					return err
				}

				prev := product.InventoryType
				if err := product.Release(reservation.Quantity); err != nil {
					logger.Warn(ctx).
						Err(err).
						Str("reservation_id", reservation.ID).
						Msg("Skipping unreleasable reservation")
					chunk.Skipped++
					continue
				}
				product.Reclassify(h.cfg.LowStockThreshold)

				if err := repos.Ledger().Save(ctx, product); err != nil {
					return err
				}

				chunk.Released++
				if domain.ShouldAlertLowStock(prev, product.InventoryType, product.Available) {
					alerts = append(alerts, *product)
				}
			}
			return nil
		})
		if err != nil {
			return result, err
		}

		result.Processed += chunk.Processed
		result.Released += chunk.Released
		result.Skipped += chunk.Skipped

		for _, product := range alerts {
			h.alerter.LowStock(ctx, product, h.cfg.LowStockThreshold)
		}

		if batchLen < h.cfg.SweepBatchSize {
			break
		}
	}

	logger.Info(ctx).
		Int("processed", result.Processed).
		Int("released", result.Released).
		Int("skipped", result.Skipped).
		Msg("Expired reservation sweep completed")
	return result, nil
}
