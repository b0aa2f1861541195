package handler

import (
	"net/http"

	"github.com/vfg2006/sales-pipeline/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

func GetCategoryReport(reports ReportReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := reports.ListCategoryReport(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("error reading category report")
			apiErrors.WriteFromError(w, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, rows)
	}
}

func GetPeriodReport(reports ReportReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := reports.ListPeriodReport(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("error reading period report")
			apiErrors.WriteFromError(w, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, rows)
	}
}

// DescribeTables lists the report tables and their columns.
func DescribeTables(reports ReportReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tables, err := reports.DescribeTables(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("error describing tables")
			apiErrors.WriteFromError(w, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, tables)
	}
}
