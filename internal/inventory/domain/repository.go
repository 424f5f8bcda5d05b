package domain

import (
	"context"
	"time"
)

// LedgerRepository defines the contract for product stock data access.
// LockByID is only meaningful inside a unit of work; it takes a row lock so
// concurrent mutations of the same product serialize instead of losing updates.
type LedgerRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindAll(ctx context.Context, limit, offset int) ([]Product, error)
	LockByID(ctx context.Context, id uint) (*Product, error)
	Save(ctx context.Context, product *Product) error
}

// ReservationRepository defines the contract for reservation data access.
// DeleteByID reports how many rows were removed so callers can credit the
// ledger exactly once per reservation.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *Reservation) error
	FindByID(ctx context.Context, id string) (*Reservation, error)
	FindByOrderID(ctx context.Context, orderID string) ([]Reservation, error)
	FindAll(ctx context.Context, limit, offset int) ([]Reservation, error)
	FindExpired(ctx context.Context, now time.Time, limit int) ([]Reservation, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
}

// RepoSet groups the repositories that share one transaction
type RepoSet interface {
	Ledger() LedgerRepository
	Reservations() ReservationRepository
}

// UnitOfWork runs fn inside a single transaction. The repositories handed to
// fn are bound to that transaction; either every write in fn commits or none do.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(repos RepoSet) error) error
}

// StockAlerter receives qualifying low-stock transitions. Implementations are
// best-effort: they must never fail the mutation that triggered them.
type StockAlerter interface {
	LowStock(ctx context.Context, product Product, threshold int)
}
