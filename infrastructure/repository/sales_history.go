package repository

import (
	"github.com/ddepe/sales-sync-api/infrastructure/storage/csvstore"
	"github.com/ddepe/sales-sync-api/internal/domain"
)

const SalesHistoryName = "sales"

// NewSalesHistoryRepository opens the aggregated sales history file. The
// file may not exist yet; it is created on the first append.
func NewSalesHistoryRepository(path string) HistoryRepository {
	table := csvstore.NewTable(path, domain.SalesHistoryHeader)
	return newCSVHistoryRepository(table, SalesHistoryName, domain.SalesHistoryHeader, domain.SalesDateLayout)
}
