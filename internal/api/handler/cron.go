package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/ddepe/sales-sync-api/internal/scheduler"
	"github.com/ddepe/sales-sync-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Sync job types accepted by the manual trigger endpoint.
const (
	CronJobTypeSales   = "sales"
	CronJobTypeWeather = "weather"
	CronJobTypeAll     = "all"
)

// CronJobServices groups the schedulers the admin endpoints act on.
type CronJobServices struct {
	SalesSyncService   *scheduler.SalesSyncService
	WeatherSyncService *scheduler.WeatherSyncService
}

// RunCronJob triggers one sync job outside its cron schedule.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Sync job type not specified", nil)
			return
		}

		switch cronType {
		case CronJobTypeSales:
			if services.SalesSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Sales sync service not available", nil)
				return
			}
			services.SalesSyncService.TriggerManualSync()

		case CronJobTypeWeather:
			if services.WeatherSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Weather sync service not available", nil)
				return
			}
			services.WeatherSyncService.TriggerManualSync()

		case CronJobTypeAll:
			if services.SalesSyncService != nil {
				services.SalesSyncService.TriggerManualSync()
			}
			if services.WeatherSyncService != nil {
				services.WeatherSyncService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid sync job type. Accepted values: sales, weather, all", nil)
			return
		}

		response := map[string]any{
			"message": "Sync job started",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// RunHistoryRefresh rebuilds the full sales history into a fresh dated file.
func RunHistoryRefresh(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunHistoryRefresh")

		if services.SalesSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Sales sync service not available", nil)
			return
		}

		services.SalesSyncService.TriggerRefresh()

		json.NewEncoder(w).Encode(map[string]any{
			"message": "History refresh started",
		})
	}
}

// GetCronStatus returns the state of both schedulers.
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"sales":   services.SalesSyncService.GetStatus(),
			"weather": services.WeatherSyncService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
