package repository

import (
	"github.com/ddepe/sales-sync-api/infrastructure/storage/csvstore"
	"github.com/ddepe/sales-sync-api/internal/domain"
)

const MeteostatHistoryName = "meteostat"

// NewMeteostatHistoryRepository opens the Meteostat station weather file.
func NewMeteostatHistoryRepository(path string) HistoryRepository {
	table := csvstore.NewTable(path, domain.MeteostatHistoryHeader)
	return newCSVHistoryRepository(table, MeteostatHistoryName, domain.MeteostatHistoryHeader, domain.WeatherDateLayout)
}
