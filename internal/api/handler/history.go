package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ddepe/sales-sync-api/infrastructure/repository"
	"github.com/ddepe/sales-sync-api/internal/domain"
	"github.com/ddepe/sales-sync-api/pkg/apiErrors"
)

// HistorySummaries groups the repositories exposed by the summary endpoint.
type HistorySummaries struct {
	Sales     repository.HistoryRepository
	Weather   repository.HistoryRepository
	Meteostat repository.HistoryRepository
}

// GetHistorySummary reports row counts and date ranges of the history files.
func GetHistorySummary(repos HistorySummaries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetHistorySummary")

		summaries := make([]*domain.HistorySummary, 0, 3)

		for _, repo := range []repository.HistoryRepository{repos.Sales, repos.Weather, repos.Meteostat} {
			if repo == nil {
				continue
			}

			summary, err := repo.Summary()
			if err != nil {
				logrus.WithError(err).Error("Error reading history summary")
				apiErrors.WriteError(w, apiErrors.ErrHistoryFile, "History file could not be read", err.Error())
				return
			}
			summaries = append(summaries, summary)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"histories": summaries,
		})
	}
}
