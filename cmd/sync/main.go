package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ddepe/sales-sync-api/infrastructure/exporter"
	"github.com/ddepe/sales-sync-api/infrastructure/integrator/meteostat"
	"github.com/ddepe/sales-sync-api/infrastructure/integrator/meteostat/meteostatclient"
	"github.com/ddepe/sales-sync-api/infrastructure/integrator/square"
	"github.com/ddepe/sales-sync-api/infrastructure/integrator/square/squareclient"
	"github.com/ddepe/sales-sync-api/infrastructure/integrator/visualcrossing"
	"github.com/ddepe/sales-sync-api/infrastructure/integrator/visualcrossing/vcclient"
	"github.com/ddepe/sales-sync-api/infrastructure/repository"
	"github.com/ddepe/sales-sync-api/internal/config"
	"github.com/ddepe/sales-sync-api/internal/domain"
	"github.com/ddepe/sales-sync-api/internal/usecases/updating"
)

// One-shot runner for cron-less environments: updates the requested
// histories and exits non-zero when any of them fails.
func main() {
	provider := flag.String("provider", "all", "history to update: sales, weather or all")
	refresh := flag.Bool("refresh", false, "rebuild the full sales history into a new dated file instead of updating")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	failed := false

	if *provider == "sales" || *provider == "all" {
		if err := runSales(ctx, cfg, *refresh); err != nil {
			logrus.WithError(err).Error("Sales history update failed")
			failed = true
		}
	}

	if *provider == "weather" || *provider == "all" {
		if *refresh {
			logrus.Warn("Refresh is only supported for the sales history, skipping weather")
		} else {
			if err := runWeather(ctx, cfg); err != nil {
				logrus.WithError(err).Error("Weather history update failed")
				failed = true
			}
			if err := runMeteostat(ctx, cfg); err != nil {
				logrus.WithError(err).Error("Meteostat history update failed")
				failed = true
			}
		}
	}

	if failed {
		os.Exit(1)
	}
}

func runSales(ctx context.Context, cfg *config.Config, refresh bool) error {
	repo := repository.NewSalesHistoryRepository(cfg.History.SalesPath)

	integrator, err := square.New(cfg, squareclient.NewClient(cfg))
	if err != nil {
		return err
	}

	updater := updating.NewService(integrator, repo).WithSnapshots(repo)

	if cfg.Influx.Enabled {
		salesExporter, err := exporter.NewInfluxExporter(cfg.Influx, "daily_sales", domain.SalesHistoryHeader)
		if err != nil {
			logrus.WithError(err).Error("Error connecting to InfluxDB, sales export disabled")
		} else {
			defer salesExporter.Close()
			updater = updater.WithExporter(salesExporter)
		}
	}

	if refresh {
		path, result, err := updater.RefreshHistory(ctx)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"path": path,
			"rows": result.Appended,
		}).Info("Sales history refreshed")
		return nil
	}

	result, err := updater.UpdateHistory(ctx)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"appended": result.Appended,
		"skipped":  result.Skipped,
	}).Info("Sales history updated")
	return nil
}

func runWeather(ctx context.Context, cfg *config.Config) error {
	repo := repository.NewWeatherHistoryRepository(cfg.History.WeatherPath)

	integrator, err := visualcrossing.New(cfg, vcclient.NewClient(cfg))
	if err != nil {
		return err
	}

	updater := updating.NewService(integrator, repo)

	if cfg.Influx.Enabled {
		weatherExporter, err := exporter.NewInfluxExporter(cfg.Influx, "daily_weather", domain.WeatherHistoryHeader)
		if err != nil {
			logrus.WithError(err).Error("Error connecting to InfluxDB, weather export disabled")
		} else {
			defer weatherExporter.Close()
			updater = updater.WithExporter(weatherExporter)
		}
	}

	result, err := updater.UpdateHistory(ctx)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"appended": result.Appended,
		"skipped":  result.Skipped,
	}).Info("Weather history updated")
	return nil
}

func runMeteostat(ctx context.Context, cfg *config.Config) error {
	repo := repository.NewMeteostatHistoryRepository(cfg.History.MeteostatPath)

	integrator, err := meteostat.New(cfg, meteostatclient.NewClient(cfg))
	if err != nil {
		return err
	}

	updater := updating.NewService(integrator, repo)

	if cfg.Influx.Enabled {
		climateExporter, err := exporter.NewInfluxExporter(cfg.Influx, "daily_climate", domain.MeteostatHistoryHeader)
		if err != nil {
			logrus.WithError(err).Error("Error connecting to InfluxDB, climate export disabled")
		} else {
			defer climateExporter.Close()
			updater = updater.WithExporter(climateExporter)
		}
	}

	result, err := updater.UpdateHistory(ctx)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"appended": result.Appended,
		"skipped":  result.Skipped,
	}).Info("Meteostat history updated")
	return nil
}
