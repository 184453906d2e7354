package meteostatclient

import (
	"context"
	"net/http"
	"time"

	"github.com/ddepe/sales-sync-api/internal/config"
)

type Client interface {
	GetDailyData(ctx context.Context, params DailyParams) ([]DailyReading, error)
}

type MeteostatClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient creates a Meteostat point data API client.
func NewClient(cfg *config.Config) Client {
	return &MeteostatClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}
