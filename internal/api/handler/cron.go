package handler

import (
	"net/http"

	"github.com/vfg2006/sales-pipeline/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

// RunCronJob starts the scheduled pipeline run in the background.
func RunCronJob(service CronService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("manual pipeline sync requested")

		if !service.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrRunInProgress, "a pipeline run is already in progress", nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "pipeline run started",
		})
	}
}

func GetCronStatus(service CronService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.GetStatus())
	}
}
