package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tair/stock-reservation/internal/inventory/domain"
)

type gormRepoSet struct {
	ledger       *GormLedgerRepository
	reservations *GormReservationRepository
}

func (s *gormRepoSet) Ledger() domain.LedgerRepository { return s.ledger }

func (s *gormRepoSet) Reservations() domain.ReservationRepository { return s.reservations }

// GormUnitOfWork runs closures inside a database transaction, rebinding the
// repositories to the transaction handle. Transient serialization failures
// are retried a bounded number of times before surfacing.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) WithinTx(ctx context.Context, fn func(repos domain.RepoSet) error) error {
	return runWithRetry(ctx, func() error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			repos := &gormRepoSet{
				ledger:       NewGormLedgerRepository(tx),
				reservations: NewGormReservationRepository(tx),
			}
			return fn(repos)
		})
	})
}
