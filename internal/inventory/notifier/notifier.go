package notifier

import (
	"context"

	"github.com/tair/stock-reservation/internal/inventory/domain"
	"github.com/tair/stock-reservation/kafka"
	"github.com/tair/stock-reservation/pkg/logger"
)

// Vendor is the subset of the user service's vendor record the notifier needs
type Vendor struct {
	ID    uint   `json:"id"`
	Name  string `json:"username"`
	Email string `json:"email"`
}

// VendorDirectory resolves a product's vendor through the user service
type VendorDirectory interface {
	FindVendor(ctx context.Context, vendorID uint) (*Vendor, error)
}

// EventPublisher enqueues outbound stock events
type EventPublisher interface {
	PublishLowStockDetected(ctx context.Context, event kafka.LowStockDetectedEvent) error
}

// LowStockNotifier turns qualifying ledger transitions into outbound alerts.
// It is strictly best-effort: whatever fails here is logged and swallowed,
// never bubbled back into the stock mutation that triggered it.
type LowStockNotifier struct {
	vendors   VendorDirectory
	publisher EventPublisher
}

// NewLowStockNotifier creates a new low stock notifier
func NewLowStockNotifier(vendors VendorDirectory, publisher EventPublisher) *LowStockNotifier {
	return &LowStockNotifier{vendors: vendors, publisher: publisher}
}

// LowStock implements domain.StockAlerter
func (n *LowStockNotifier) LowStock(ctx context.Context, product domain.Product, threshold int) {
	if product.Available <= 0 {
		// Already out of stock, nothing actionable to protect
		return
	}

	event := kafka.LowStockDetectedEvent{
		ProductID:   product.ID,
		ProductName: product.Name,
		VendorID:    product.VendorID,
		Available:   product.Available,
		Threshold:   threshold,
	}

	vendor, err := n.vendors.FindVendor(ctx, product.VendorID)
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Uint("product_id", product.ID).
			Uint("vendor_id", product.VendorID).
			Msg("Failed to resolve vendor for low stock alert")
	} else {
		event.VendorEmail = vendor.Email
	}

	if err := n.publisher.PublishLowStockDetected(ctx, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Uint("product_id", product.ID).
			Int("available", product.Available).
			Msg("Failed to publish low stock event")
		return
	}

	logger.Info(ctx).
		Uint("product_id", product.ID).
		Int("available", product.Available).
		Int("threshold", threshold).
		Msg("Low stock alert dispatched")
}
