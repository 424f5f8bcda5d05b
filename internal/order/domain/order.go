package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Order is the purchase the reservation core reconciles against. Only status,
// age and the payment state matter here; pricing and fulfillment live with the
// order service.
type Order struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Status    string         `json:"status" gorm:"not null;default:'pending';index"`
	Timeline  Timeline       `json:"timeline" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusDeclined  = "declined"
)

// TimelineEntry is one line of an order's audit history
type TimelineEntry struct {
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// Timeline is the append-only audit log stored as a JSON column. Entries are
// never rewritten or removed.
type Timeline []TimelineEntry

// Value implements driver.Valuer
func (t Timeline) Value() (driver.Value, error) {
	if t == nil {
		t = Timeline{}
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner
func (t *Timeline) Scan(value interface{}) error {
	if value == nil {
		*t = Timeline{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported timeline column type %T", value)
	}
}

// AppendTimeline adds an entry to the order's audit history
func (o *Order) AppendTimeline(title string, at time.Time) {
	o.Timeline = append(o.Timeline, TimelineEntry{Title: title, Timestamp: at})
}

// ErrOrderNotFound means the referenced order does not exist
var ErrOrderNotFound = errors.New("order not found")
