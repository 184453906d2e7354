package vcclient

import (
	"context"
	"net/http"
	"time"

	"github.com/ddepe/sales-sync-api/internal/config"
)

type Client interface {
	GetDailyWeather(ctx context.Context, params TimelineParams) ([]DailyConditions, error)
}

type VisualCrossingClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient creates a Visual Crossing timeline API client.
func NewClient(cfg *config.Config) Client {
	return &VisualCrossingClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}
