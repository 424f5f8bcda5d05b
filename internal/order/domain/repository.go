package domain

import (
	"context"
	"time"
)

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	// FindAbandoned selects pending orders created before the cutoff whose
	// payment is still initiated with one of the given methods.
	FindAbandoned(ctx context.Context, cutoff time.Time, methods []string, limit int) ([]Order, error)
	Save(ctx context.Context, order *Order) error
}

// PaymentRepository defines the contract for payment data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByOrderID(ctx context.Context, orderID string) (*Payment, error)
	Save(ctx context.Context, payment *Payment) error
}

// RepoSet groups the repositories that share one transaction
type RepoSet interface {
	Orders() OrderRepository
	Payments() PaymentRepository
}

// UnitOfWork runs fn inside a single transaction
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(repos RepoSet) error) error
}
