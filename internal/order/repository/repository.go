package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tair/stock-reservation/internal/order/domain"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindAbandoned(ctx context.Context, cutoff time.Time, methods []string, limit int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Joins("JOIN payments ON payments.order_id = orders.id").
		Where("orders.status = ?", domain.OrderStatusPending).
		Where("orders.created_at < ?", cutoff).
		Where("payments.status = ?", domain.PaymentStatusInitiated).
		Where("payments.method IN ?", methods).
		Order("orders.created_at").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *GormPaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

type gormRepoSet struct {
	orders   *GormOrderRepository
	payments *GormPaymentRepository
}

func (s *gormRepoSet) Orders() domain.OrderRepository     { return s.orders }
func (s *gormRepoSet) Payments() domain.PaymentRepository { return s.payments }

// GormUnitOfWork runs closures inside a database transaction with the order
// and payment repositories rebound to the transaction handle
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) WithinTx(ctx context.Context, fn func(repos domain.RepoSet) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormRepoSet{
			orders:   NewGormOrderRepository(tx),
			payments: NewGormPaymentRepository(tx),
		}
		return fn(repos)
	})
}
