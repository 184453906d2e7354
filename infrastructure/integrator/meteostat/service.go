package meteostat

import (
	"context"
	"fmt"
	"time"

	"github.com/ddepe/sales-sync-api/infrastructure/integrator/meteostat/meteostatclient"
	"github.com/ddepe/sales-sync-api/internal/config"
	"github.com/ddepe/sales-sync-api/internal/domain"
)

const ProviderName = "meteostat"

// Integrator turns Meteostat station observations into weather history rows.
type Integrator interface {
	Name() string
	FetchSince(ctx context.Context, since time.Time) ([]domain.Record, error)
}

type Service struct {
	cfg      *config.Config
	Client   meteostatclient.Client
	location *time.Location
	seed     time.Time
}

func New(cfg *config.Config, client meteostatclient.Client) (Integrator, error) {
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

// FetchSince pulls the whole missing range in one request, from the day
// after since through yesterday in the store timezone. Readings without a
// parseable date come back with a zero date so the updater counts them as
// skipped.
func (s *Service) FetchSince(ctx context.Context, since time.Time) ([]domain.Record, error) {
	start := s.seed
	if !since.IsZero() {
		start = since.AddDate(0, 0, 1)
	}

	now := time.Now().In(s.location)
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location).AddDate(0, 0, -1)

	if start.After(yesterday) {
		return nil, nil
	}

	readings, err := s.Client.GetDailyData(ctx, meteostatclient.DailyParams{
		StartDate: start,
		EndDate:   yesterday,
	})
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(readings))
	for _, reading := range readings {
		records = append(records, toRecord(reading))
	}

	return records, nil
}

func toRecord(reading meteostatclient.DailyReading) domain.Record {
	climate := &domain.DailyClimate{
		Tavg: reading.Tavg,
		Tmin: reading.Tmin,
		Tmax: reading.Tmax,
		Prcp: reading.Prcp,
		Snow: reading.Snow,
		Wdir: reading.Wdir,
		Wspd: reading.Wspd,
		Wpgt: reading.Wpgt,
		Pres: reading.Pres,
		Tsun: reading.Tsun,
	}

	if date, err := time.Parse(domain.WeatherDateLayout, reading.Date); err == nil {
		climate.Day = date
	}

	return climate
}
