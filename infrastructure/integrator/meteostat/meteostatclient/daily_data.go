package meteostatclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type DailyParams struct {
	StartDate time.Time
	EndDate   time.Time
}

// DailyReading is one day of station observations as returned by the point
// data endpoint. Readings the station did not report come back as null.
type DailyReading struct {
	Date string   `json:"date,omitempty"`
	Tavg *float64 `json:"tavg,omitempty"`
	Tmin *float64 `json:"tmin,omitempty"`
	Tmax *float64 `json:"tmax,omitempty"`
	Prcp *float64 `json:"prcp,omitempty"`
	Snow *float64 `json:"snow,omitempty"`
	Wdir *float64 `json:"wdir,omitempty"`
	Wspd *float64 `json:"wspd,omitempty"`
	Wpgt *float64 `json:"wpgt,omitempty"`
	Pres *float64 `json:"pres,omitempty"`
	Tsun *float64 `json:"tsun,omitempty"`
}

type dailyDataResponse struct {
	Data []DailyReading `json:"data,omitempty"`
}

// GetDailyData fetches the daily observations for the configured point and
// date range in one request.
func (c *MeteostatClient) GetDailyData(ctx context.Context, params DailyParams) ([]DailyReading, error) {
	ctx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	endpoint, err := url.Parse(c.config.Meteostat.URL)
	if err != nil {
		return nil, fmt.Errorf("error parsing the base URL: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "point", "daily")

	query := endpoint.Query()
	query.Set("lat", strconv.FormatFloat(c.config.Meteostat.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(c.config.Meteostat.Longitude, 'f', -1, 64))
	query.Set("alt", strconv.Itoa(c.config.Meteostat.Altitude))
	query.Set("start", params.StartDate.Format(time.DateOnly))
	query.Set("end", params.EndDate.Format(time.DateOnly))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating the request: %w", err)
	}

	req.Header.Set("X-RapidAPI-Key", c.config.Meteostat.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing the request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status: %s", resp.Status)
	}

	var response dailyDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("error decoding the response: %w", err)
	}

	return response.Data, nil
}
