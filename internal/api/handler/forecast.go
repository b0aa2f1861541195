package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/sales-pipeline/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

// GetForecast answers with the forecast of the latest successful run. When
// steps is given, or the latest run failed or has no forecast, the saved
// model is reloaded and forecasts that many months instead.
func GetForecast(service PipelineService, forecaster ForecastReader, defaultSteps int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("steps")

		if raw == "" {
			if summary := service.LastSummary(); summary != nil && summary.Error == "" && summary.Forecast != nil && len(summary.Forecast.Forecast) > 0 {
				writeJSON(w, r, http.StatusOK, summary.Forecast)
				return
			}
		}

		steps := defaultSteps
		if raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "steps must be a positive integer", nil)
				return
			}
			steps = parsed
		}

		points, err := forecaster.FromArtifact(r.Context(), steps)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("error forecasting from saved model")
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"forecast": points,
		})
	}
}
