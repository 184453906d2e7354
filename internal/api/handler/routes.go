package handler

import (
	"net/http"

	"github.com/ddepe/sales-sync-api/internal/api/handler/router"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/run/:type",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/refresh",
			Method:  http.MethodPost,
			Handler: RunHistoryRefresh(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}

func History(repos HistorySummaries) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/history/summary",
			Method:  http.MethodGet,
			Handler: GetHistorySummary(repos),
		},
	}
}
