package handler

import (
	"context"

	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/pipeline"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// PipelineService runs the pipeline and exposes its intermediate stages.
type PipelineService interface {
	Run(ctx context.Context) (*pipeline.Summary, error)
	LastSummary() *pipeline.Summary
	Preview(ctx context.Context, stage string, limit int) (any, error)
}

// ReportReader reads the persisted report tables.
type ReportReader interface {
	ListCategoryReport(ctx context.Context) ([]domain.CategoryTotal, error)
	ListPeriodReport(ctx context.Context) ([]domain.PeriodTotal, error)
	DescribeTables(ctx context.Context) ([]domain.TableInfo, error)
}

// ForecastReader forecasts from the saved model artifact.
type ForecastReader interface {
	FromArtifact(ctx context.Context, steps int) ([]domain.ForecastPoint, error)
}

// CronService triggers and reports the scheduled pipeline run.
type CronService interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}
