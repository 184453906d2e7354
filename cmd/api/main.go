package main

import (
	"context"
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
	"github.com/ddepe/sales-sync-api/internal/api"
	"github.com/ddepe/sales-sync-api/internal/api/handler"
	"github.com/ddepe/sales-sync-api/internal/config"
	"github.com/ddepe/sales-sync-api/internal/domain"
	"github.com/ddepe/sales-sync-api/internal/scheduler"
	"github.com/ddepe/sales-sync-api/internal/usecases/updating"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid log level: %s, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Log level set to: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	salesRepo := repository.NewSalesHistoryRepository(cfg.History.SalesPath)
	weatherRepo := repository.NewWeatherHistoryRepository(cfg.History.WeatherPath)
	meteostatRepo := repository.NewMeteostatHistoryRepository(cfg.History.MeteostatPath)

	squareClient := squareclient.NewClient(cfg)
	squareIntegrator, err := square.New(cfg, squareClient)
	if err != nil {
		logrus.WithError(err).Fatal("Error configuring the Square integrator")
	}

	vcClient := vcclient.NewClient(cfg)
	vcIntegrator, err := visualcrossing.New(cfg, vcClient)
	if err != nil {
		logrus.WithError(err).Fatal("Error configuring the Visual Crossing integrator")
	}

	meteostatClient := meteostatclient.NewClient(cfg)
	meteostatIntegrator, err := meteostat.New(cfg, meteostatClient)
	if err != nil {
		logrus.WithError(err).Fatal("Error configuring the Meteostat integrator")
	}

	salesUpdater := updating.NewService(squareIntegrator, salesRepo).
		WithSnapshots(salesRepo)
	weatherUpdater := updating.NewService(vcIntegrator, weatherRepo)
	meteostatUpdater := updating.NewService(meteostatIntegrator, meteostatRepo)

	if cfg.Influx.Enabled {
		salesExporter, err := exporter.NewInfluxExporter(cfg.Influx, "daily_sales", domain.SalesHistoryHeader)
		if err != nil {
			logrus.WithError(err).Error("Error connecting to InfluxDB, sales export disabled")
		} else {
			defer salesExporter.Close()
			salesUpdater = salesUpdater.WithExporter(salesExporter)
		}

		weatherExporter, err := exporter.NewInfluxExporter(cfg.Influx, "daily_weather", domain.WeatherHistoryHeader)
		if err != nil {
			logrus.WithError(err).Error("Error connecting to InfluxDB, weather export disabled")
		} else {
			defer weatherExporter.Close()
			weatherUpdater = weatherUpdater.WithExporter(weatherExporter)
		}

		climateExporter, err := exporter.NewInfluxExporter(cfg.Influx, "daily_climate", domain.MeteostatHistoryHeader)
		if err != nil {
			logrus.WithError(err).Error("Error connecting to InfluxDB, climate export disabled")
		} else {
			defer climateExporter.Close()
			meteostatUpdater = meteostatUpdater.WithExporter(climateExporter)
		}
	}

	salesSyncService := scheduler.NewSalesSyncService(salesUpdater, cfg)
	weatherSyncService := scheduler.NewWeatherSyncService(cfg, weatherUpdater, meteostatUpdater)

	if err := salesSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Error starting the sales sync scheduler")
	} else {
		logrus.Info("Sales sync scheduler started")
	}

	if err := weatherSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Error starting the weather sync scheduler")
	} else {
		logrus.Info("Weather sync scheduler started")
	}

	server, err := api.New(
		cfg,
		salesSyncService,
		weatherSyncService,
		handler.HistorySummaries{
			Sales:     salesRepo,
			Weather:   weatherRepo,
			Meteostat: meteostatRepo,
		},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
