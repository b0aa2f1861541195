package pipeline

import (
	"context"

	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/usecases/cleaning"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// Loader reads the input files.
type Loader interface {
	LoadTransactions(path, region string) ([]domain.RawTransaction, error)
	LoadProducts(path string) ([]domain.Product, error)
}

// Cleaner repairs and normalizes the combined region rows.
type Cleaner interface {
	Clean(regionA, regionB []domain.RawTransaction) (*cleaning.Result, error)
}

// Enricher joins transactions with the product reference.
type Enricher interface {
	Enrich(transactions []domain.Transaction, products []domain.Product) ([]domain.EnrichedTransaction, error)
}

// Aggregator builds the category and period reports.
type Aggregator interface {
	Aggregate(rows []domain.EnrichedTransaction) (*domain.Reports, error)
}

// Forecaster fits the revenue model and writes its outputs.
type Forecaster interface {
	Run(ctx context.Context, rows []domain.EnrichedTransaction) (*domain.ForecastResult, error)
}
