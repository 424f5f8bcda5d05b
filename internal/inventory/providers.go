package inventory

import (
	"gorm.io/gorm"

	"github.com/tair/stock-reservation/internal/inventory/domain"
	"github.com/tair/stock-reservation/internal/inventory/repository"
)

// ProvideUnitOfWork provides the transactional unit of work, wrapped with tracing
func ProvideUnitOfWork(db *gorm.DB) domain.UnitOfWork {
	return repository.NewUnitOfWorkWithTracing(repository.NewGormUnitOfWork(db))
}

// ProvideLedgerRepository provides the product ledger repository
func ProvideLedgerRepository(db *gorm.DB) domain.LedgerRepository {
	return repository.NewGormLedgerRepository(db)
}

// ProvideReservationRepository provides the reservation repository
func ProvideReservationRepository(db *gorm.DB) domain.ReservationRepository {
	return repository.NewGormReservationRepository(db)
}
