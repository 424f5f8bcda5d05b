package order

import (
	"gorm.io/gorm"

	"github.com/tair/stock-reservation/internal/order/domain"
	"github.com/tair/stock-reservation/internal/order/repository"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepository(db)
}

// ProvideUnitOfWork provides the transactional unit of work
func ProvideUnitOfWork(db *gorm.DB) domain.UnitOfWork {
	return repository.NewGormUnitOfWork(db)
}
