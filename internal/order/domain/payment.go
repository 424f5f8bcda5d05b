package domain

import (
	"time"

	"gorm.io/gorm"
)

// Payment tracks the money side of an order
type Payment struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OrderID       string         `json:"order_id" gorm:"not null;uniqueIndex;size:36"`
	Amount        float64        `json:"amount" gorm:"not null"`
	Currency      string         `json:"currency" gorm:"default:'ETB'"`
	Status        string         `json:"status" gorm:"default:'initiated';index"`
	Method        string         `json:"method" gorm:"index"`
	TransactionID string         `json:"transaction_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}

// Payment statuses. Initiated is the only non-terminal state: the gateway
// redirect happened but no callback ever came back.
const (
	PaymentStatusInitiated = "initiated"
	PaymentStatusCompleted = "completed"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusDeclined  = "declined"
)

// Payment methods
const (
	PaymentMethodChapa    = "chapa"
	PaymentMethodTelebirr = "telebirr"
)
