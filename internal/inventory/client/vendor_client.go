package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/stock-reservation/internal/inventory/notifier"
	"github.com/tair/stock-reservation/pkg/logger"
)

// VendorServiceClient resolves vendors against the user service's HTTP API
type VendorServiceClient struct {
	baseURL string
	client  *http.Client
}

// NewVendorServiceClient creates a new vendor service client
func NewVendorServiceClient(baseURL string) *VendorServiceClient {
	logger.Logger.Info().
		Str("base_url", baseURL).
		Msg("Vendor service client initialized")

	return &VendorServiceClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FindVendor implements notifier.VendorDirectory
func (c *VendorServiceClient) FindVendor(ctx context.Context, vendorID uint) (*notifier.Vendor, error) {
	url := fmt.Sprintf("%s/api/users/%d", c.baseURL, vendorID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build vendor request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call user service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user service returned status %d for vendor %d", resp.StatusCode, vendorID)
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    notifier.Vendor `json:"data"`
		Error   string          `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode vendor response: %w", err)
	}
	if !envelope.Success {
		return nil, fmt.Errorf("user service rejected vendor lookup: %s", envelope.Error)
	}

	return &envelope.Data, nil
}
