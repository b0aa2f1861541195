package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-pipeline/internal/pipeline"
	"github.com/vfg2006/sales-pipeline/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

const defaultPreviewLimit = 5

// RunPipeline executes a full run and answers with its summary.
func RunPipeline(service PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		summary, err := service.Run(r.Context())
		if err != nil {
			if errors.Is(err, pipeline.ErrRunInProgress) {
				apiErrors.WriteError(w, apiErrors.ErrRunInProgress, "a pipeline run is already in progress", nil)
				return
			}
			logger.WithError(err).Error("pipeline run requested over HTTP failed")
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	}
}

// GetLastSummary returns the summary of the latest run, successful or not.
func GetLastSummary(service PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary := service.LastSummary()
		if summary == nil {
			apiErrors.WriteError(w, apiErrors.ErrNoRunYet, "the pipeline has not run yet", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	}
}

// PreviewStage returns the first rows produced by a stage without persisting
// anything.
func PreviewStage(service PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stage := httprouter.ParamsFromContext(r.Context()).ByName("stage")

		limit := defaultPreviewLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit must be a non-negative integer", nil)
				return
			}
			limit = parsed
		}

		rows, err := service.Preview(r.Context(), stage, limit)
		if err != nil {
			if errors.Is(err, pipeline.ErrUnknownStage) {
				apiErrors.WriteError(w, apiErrors.ErrUnknownStage, err.Error(), nil)
				return
			}
			log.ForContext(r.Context()).WithError(err).WithField("stage", stage).Error("preview failed")
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"stage": stage,
			"rows":  rows,
		})
	}
}
