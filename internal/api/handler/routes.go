package handler

import (
	"net/http"

	"github.com/vfg2006/sales-pipeline/internal/api/handler/router"
	"github.com/vfg2006/sales-pipeline/internal/usecases/authenticating"
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

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Pipeline(service PipelineService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/pipeline/run",
			Method:  http.MethodPost,
			Handler: RunPipeline(service),
		},
		{
			Path:    "/v1/pipeline/summary",
			Method:  http.MethodGet,
			Handler: GetLastSummary(service),
		},
		{
			Path:    "/v1/preview/:stage",
			Method:  http.MethodGet,
			Handler: PreviewStage(service),
		},
	}
}

func Reports(reports ReportReader) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports/category",
			Method:  http.MethodGet,
			Handler: GetCategoryReport(reports),
		},
		{
			Path:    "/v1/reports/period",
			Method:  http.MethodGet,
			Handler: GetPeriodReport(reports),
		},
		{
			Path:    "/v1/reports/tables",
			Method:  http.MethodGet,
			Handler: DescribeTables(reports),
		},
	}
}

func Forecast(service PipelineService, forecaster ForecastReader, defaultSteps int) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/forecast",
			Method:  http.MethodGet,
			Handler: GetForecast(service, forecaster, defaultSteps),
		},
	}
}

func CronJobs(service CronService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/pipeline/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(service),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(service),
		},
	}
}
