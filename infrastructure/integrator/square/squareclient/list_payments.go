package squareclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	jsoniter "github.com/json-iterator/go"

	squaredomain "github.com/ddepe/sales-sync-api/infrastructure/integrator/square/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ListPaymentsParams struct {
	BeginTime time.Time
	EndTime   time.Time
	Cursor    string
}

type ListPaymentsResponse struct {
	Payments []squaredomain.Payment `json:"payments,omitempty"`
	Cursor   string                 `json:"cursor,omitempty"`
}

// ListPayments returns one page of payments created inside the given window.
// A non-empty cursor in the response means there are more pages to pull.
func (c *SquareClient) ListPayments(ctx context.Context, params ListPaymentsParams) (*ListPaymentsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	endpoint, err := url.Parse(c.config.Square.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing the base URL: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, c.config.Square.Version, "payments")

	query := endpoint.Query()
	query.Set("begin_time", params.BeginTime.Format(time.RFC3339))
	query.Set("end_time", params.EndTime.Format(time.RFC3339))
	query.Set("sort_order", "ASC")
	if c.config.Square.LocationID != "" {
		query.Set("location_id", c.config.Square.LocationID)
	}
	if params.Cursor != "" {
		query.Set("cursor", params.Cursor)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating the request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Square.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing the request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status: %s", resp.Status)
	}

	var response ListPaymentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("error decoding the response: %w", err)
	}

	return &response, nil
}
