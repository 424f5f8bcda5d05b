package kafka

import "time"

// LowStockDetectedEvent is raised when a product crosses into alert-worthy
// territory. It is consumed by the mail notification service.
type LowStockDetectedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	VendorID    uint      `json:"vendor_id"`
	VendorEmail string    `json:"vendor_email,omitempty"`
	Available   int       `json:"available"`
	Threshold   int       `json:"threshold"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeLowStockDetected = "stock.low_stock_detected"
)

// Kafka topics
const (
	TopicLowStockDetected = "stock-low"
)
