package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/stock-reservation/internal/inventory/domain"
)

type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

func (r *GormLedgerRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormLedgerRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormLedgerRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

// LockByID loads the product row under FOR UPDATE. Callers must be inside a
// unit of work; concurrent mutations of the same product serialize here.
func (r *GormLedgerRepository) LockByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormLedgerRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *GormReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *GormReservationRepository) FindByOrderID(ctx context.Context, orderID string) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&reservations).Error
	return reservations, err
}

func (r *GormReservationRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&reservations).Error
	return reservations, err
}

// FindExpired selects a batch of overdue reservations. SKIP LOCKED lets two
// sweep runs (or a sweep racing a live release) divide the work instead of
// blocking on each other's rows.
func (r *GormReservationRepository) FindExpired(ctx context.Context, now time.Time, limit int) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("expires_at <= ?", now).
		Order("expires_at").
		Limit(limit).
		Find(&reservations).Error
	return reservations, err
}

// DeleteByID removes the reservation and reports the affected row count.
// A count of zero means someone else already ended this hold.
func (r *GormReservationRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Reservation{})
	return result.RowsAffected, result.Error
}
