package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries the tunables of the reservation core. Components receive it
// at construction; nothing reads the environment after startup.
type Config struct {
	// LowStockThreshold is the available quantity at or below which a product
	// is classified low_stock.
	LowStockThreshold int

	// ReservationTTL is how long an unconfirmed hold keeps stock off the shelf.
	ReservationTTL time.Duration

	// MaxPurchaseQuantity caps the quantity of a single reservation.
	MaxPurchaseQuantity int

	// SweepBatchSize bounds how many records one sweep transaction touches.
	SweepBatchSize int

	// AbandonCutoff is how old a pending order must be before the daily sweep
	// treats it as abandoned.
	AbandonCutoff time.Duration

	// AbandonedPaymentMethods lists payment methods whose initiated payments
	// are known to be abandoned rather than merely slow.
	AbandonedPaymentMethods []string
}

// Load builds the configuration from the environment with defaults
func Load() *Config {
	return &Config{
		LowStockThreshold:       getEnvInt("LOW_STOCK_THRESHOLD", 3),
		ReservationTTL:          getEnvDuration("RESERVATION_TIMEOUT", 1800*time.Second),
		MaxPurchaseQuantity:     getEnvInt("MAX_PURCHASE_QUANTITY", 10),
		SweepBatchSize:          getEnvInt("SWEEP_BATCH_SIZE", 100),
		AbandonCutoff:           getEnvDuration("ORDER_ABANDON_CUTOFF", 24*time.Hour),
		AbandonedPaymentMethods: getEnvList("ABANDONED_PAYMENT_METHODS", []string{"chapa"}),
	}
}

// AbandonProne reports whether a payment method belongs to the abandon list
func (c *Config) AbandonProne(method string) bool {
	for _, m := range c.AbandonedPaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Plain integers are read as seconds
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
