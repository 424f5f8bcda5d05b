//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/stock-reservation/internal/config"
	httpDelivery "github.com/tair/stock-reservation/internal/inventory/delivery/http"
	"github.com/tair/stock-reservation/internal/inventory/domain"
	"github.com/tair/stock-reservation/internal/inventory/usecase/command"
)

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUnitOfWork,
	ProvideLedgerRepository,
	ProvideReservationRepository,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, cfg *config.Config, alerter domain.StockAlerter) (*httpDelivery.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		httpDelivery.NewInventoryHandler,
	)
	return nil, nil
}

// InitializeExpireSweep initializes the expired-reservation sweep handler
func InitializeExpireSweep(db *gorm.DB, cfg *config.Config, alerter domain.StockAlerter) (*command.ExpireReservationsHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewExpireReservationsHandler,
	)
	return nil, nil
}

// InitializeOrderHoldRelease initializes the per-order hold release handler
func InitializeOrderHoldRelease(db *gorm.DB, cfg *config.Config, alerter domain.StockAlerter) (*command.ReleaseOrderHoldsHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewReleaseReservationHandler,
		command.NewReleaseOrderHoldsHandler,
	)
	return nil, nil
}
