package vcclient

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"
)

type TimelineParams struct {
	StartDate time.Time
	EndDate   time.Time
}

// DailyConditions is one day of the timeline response, keyed by the CSV
// header of the API. Values stay as strings; the caller picks the columns it
// stores.
type DailyConditions struct {
	Columns map[string]string
}

// GetDailyWeather fetches the day-level timeline for the configured zipcode.
// The API is asked for CSV output, which is its cheapest representation.
func (c *VisualCrossingClient) GetDailyWeather(ctx context.Context, params TimelineParams) ([]DailyConditions, error) {
	ctx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	endpoint, err := url.Parse(c.config.VisualCrossing.URL)
	if err != nil {
		return nil, fmt.Errorf("error parsing the base URL: %w", err)
	}
	endpoint.Path = path.Join(
		endpoint.Path,
		c.config.VisualCrossing.Zipcode,
		params.StartDate.Format(time.DateOnly),
		params.EndDate.Format(time.DateOnly),
	)

	query := endpoint.Query()
	query.Set("unitGroup", "metric")
	query.Set("include", "days")
	query.Set("key", c.config.VisualCrossing.APIKey)
	query.Set("contentType", "csv")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating the request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing the request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status: %s", resp.Status)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing the CSV response: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	days := make([]DailyConditions, 0, len(rows)-1)

	for _, row := range rows[1:] {
		columns := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				columns[name] = row[i]
			}
		}
		days = append(days, DailyConditions{Columns: columns})
	}

	return days, nil
}
