package domain

import "time"

// Reservation is a time-bounded hold against a product's available stock.
// It is created together with the ledger debit and ends in exactly one of two
// ways: confirmed (the debit becomes a sale) or released (the debit is
// credited back, either explicitly or by the expiry sweep).
type Reservation struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	OrderID   string    `json:"order_id" gorm:"not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Reservation) TableName() string {
	return "reservations"
}

// Expired reports whether the hold has outlived its TTL
func (r *Reservation) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
