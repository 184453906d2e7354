package repository

import (
	"github.com/ddepe/sales-sync-api/infrastructure/storage/csvstore"
	"github.com/ddepe/sales-sync-api/internal/domain"
)

const WeatherHistoryName = "weather"

// NewWeatherHistoryRepository opens the daily weather history file.
func NewWeatherHistoryRepository(path string) HistoryRepository {
	table := csvstore.NewTable(path, domain.WeatherHistoryHeader)
	return newCSVHistoryRepository(table, WeatherHistoryName, domain.WeatherHistoryHeader, domain.WeatherDateLayout)
}
