package forecasting

import (
	"github.com/vfg2006/sales-pipeline/infrastructure/artifact"
	"github.com/vfg2006/sales-pipeline/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// ChartRenderer draws observed revenue against the forecast.
type ChartRenderer interface {
	Render(path string, observed []domain.MonthlyRevenue, forecast []domain.ForecastPoint) error
}

// ArtifactStore persists fitted models.
type ArtifactStore interface {
	Save(path string, doc *artifact.Document) error
	Load(path string) (*artifact.Document, error)
}
