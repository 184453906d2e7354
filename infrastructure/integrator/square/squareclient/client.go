package squareclient

import (
	"context"
	"net/http"
	"time"

	"github.com/ddepe/sales-sync-api/internal/config"
)

type Client interface {
	ListPayments(ctx context.Context, params ListPaymentsParams) (*ListPaymentsResponse, error)
}

type SquareClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient creates a Square Payments API client.
func NewClient(cfg *config.Config) Client {
	return &SquareClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}
