package visualcrossing

import (
	"context"
	"fmt"
	"time"

	"github.com/ddepe/sales-sync-api/infrastructure/integrator/visualcrossing/vcclient"
	"github.com/ddepe/sales-sync-api/internal/config"
	"github.com/ddepe/sales-sync-api/internal/domain"
)

const ProviderName = "visualcrossing"

// Integrator turns Visual Crossing timeline days into weather history rows.
type Integrator interface {
	Name() string
	FetchSince(ctx context.Context, since time.Time) ([]domain.Record, error)
}

type Service struct {
	cfg      *config.Config
	Client   vcclient.Client
	location *time.Location
	seed     time.Time
}

func New(cfg *config.Config, client vcclient.Client) (Integrator, error) {
	location, err := time.LoadLocation(cfg.History.Timezone)
	if err != nil {
		return nil, fmt.Errorf("error loading store timezone %q: %w", cfg.History.Timezone, err)
	}

	seed, err := time.Parse(time.DateOnly, cfg.History.SeedDate)
	if err != nil {
		return nil, fmt.Errorf("error parsing seed date %q: %w", cfg.History.SeedDate, err)
	}

	return &Service{
		cfg:      cfg,
		Client:   client,
		location: location,
		seed:     seed,
	}, nil
}

func (s *Service) Name() string {
	return ProviderName
}

// FetchSince pulls the whole missing range in one timeline call, from the
// day after since through yesterday. Days the API returns without a parseable
// date come back with a zero date so the updater can count them as skipped.
func (s *Service) FetchSince(ctx context.Context, since time.Time) ([]domain.Record, error) {
	start := s.seed
	if !since.IsZero() {
		start = since.AddDate(0, 0, 1)
	}

	// Yesterday in the store timezone, same cutoff as the sales provider.
	// The current local day is still in progress and must not be recorded.
	now := time.Now().In(s.location)
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location).AddDate(0, 0, -1)

	if start.After(yesterday) {
		return nil, nil
	}

	days, err := s.Client.GetDailyWeather(ctx, vcclient.TimelineParams{
		StartDate: start,
		EndDate:   yesterday,
	})
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(days))
	for _, day := range days {
		records = append(records, toRecord(day))
	}

	return records, nil
}

func toRecord(day vcclient.DailyConditions) domain.Record {
	weather := &domain.DailyWeather{}

	if raw, ok := day.Columns["datetime"]; ok {
		if date, err := time.Parse(domain.WeatherDateLayout, raw); err == nil {
			weather.Day = date
		}
	}

	// Header order minus the leading date column.
	for _, name := range domain.WeatherHistoryHeader[1:] {
		weather.Values = append(weather.Values, day.Columns[name])
	}

	return weather
}
