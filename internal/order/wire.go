//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/stock-reservation/internal/config"
	"github.com/tair/stock-reservation/internal/order/usecase/command"
)

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	ProvideUnitOfWork,
)

// InitializeAbandonedOrderSweep initializes the abandoned-order sweep handler
func InitializeAbandonedOrderSweep(db *gorm.DB, cfg *config.Config, holds command.HoldReleaser) (*command.CancelAbandonedOrdersHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewCancelAbandonedOrdersHandler,
	)
	return nil, nil
}
