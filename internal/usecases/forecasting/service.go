package forecasting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-pipeline/infrastructure/artifact"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/forecast/arima"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

// Settings configures one forecasting run.
type Settings struct {
	Order     arima.Order
	Steps     int
	SaveModel bool
	ModelPath string
	PlotPath  string
}

// Service fits the revenue model and produces the forecast outputs.
type Service struct {
	settings  Settings
	renderer  ChartRenderer
	artifacts ArtifactStore
	now       func() time.Time
}

func NewService(settings Settings, renderer ChartRenderer, artifacts ArtifactStore) *Service {
	return &Service{
		settings:  settings,
		renderer:  renderer,
		artifacts: artifacts,
		now:       time.Now,
	}
}

// Run resamples rows to monthly revenue, fits the model, forecasts the
// configured horizon, saves the model when enabled and renders the chart.
// When only the artifact or chart write fails the forecast is returned along
// with the error.
func (s *Service) Run(ctx context.Context, rows []domain.EnrichedTransaction) (*domain.ForecastResult, error) {
	logger := log.ForContext(ctx)

	if s.settings.Steps < 1 {
		return nil, computationError("", fmt.Errorf("forecast horizon must be positive, got %d", s.settings.Steps))
	}

	series := Resample(rows)
	if len(series) == 0 {
		return nil, computationError("", fmt.Errorf("no transactions to forecast"))
	}

	values := make([]float64, len(series))
	for i, point := range series {
		values[i] = point.TotalSales.InexactFloat64()
	}

	model := arima.New(s.settings.Order)
	if err := model.Fit(values); err != nil {
		return nil, computationError("", fmt.Errorf("error fitting %s on %d months: %w", s.settings.Order, len(values), err))
	}

	predicted, err := model.Forecast(s.settings.Steps)
	if err != nil {
		return nil, computationError("", err)
	}

	last := series[len(series)-1].Period
	result := &domain.ForecastResult{
		Observed:     series,
		Forecast:     forecastPoints(last, predicted),
		GeneratedAt:  s.now().UTC(),
		ModelSummary: model.Summary(),
	}

	logger.WithFields(log.Fields{
		"order":  s.settings.Order.String(),
		"months": len(series),
		"steps":  s.settings.Steps,
		"from":   result.Forecast[0].Period.String(),
		"to":     result.Forecast[len(result.Forecast)-1].Period.String(),
	}).Info("Model fitted and forecast produced")

	var saveErr error
	if s.settings.SaveModel {
		saveErr = s.saveModel(model, series, result.GeneratedAt)
		if saveErr == nil {
			result.ModelPath = s.settings.ModelPath
			logger.WithField("path", s.settings.ModelPath).Info("Model artifact saved")
		}
	}

	if err := s.renderer.Render(s.settings.PlotPath, series, result.Forecast); err != nil {
		if saveErr != nil {
			return result, saveErr
		}
		return result, persistenceError(s.settings.PlotPath, err)
	}
	result.ChartPath = s.settings.PlotPath
	logger.WithField("path", s.settings.PlotPath).Info("Forecast chart saved")

	return result, saveErr
}

func (s *Service) saveModel(model *arima.Model, series []domain.MonthlyRevenue, fittedAt time.Time) error {
	state, err := model.State()
	if err != nil {
		return persistenceError(s.settings.ModelPath, err)
	}

	doc := &artifact.Document{
		Model:       state,
		SeriesStart: series[0].Period,
		SeriesEnd:   series[len(series)-1].Period,
		Horizon:     s.settings.Steps,
		FittedAt:    fittedAt,
	}
	if err := s.artifacts.Save(s.settings.ModelPath, doc); err != nil {
		return persistenceError(s.settings.ModelPath, err)
	}

	return nil
}

// FromArtifact forecasts steps months from the saved model without refitting.
func (s *Service) FromArtifact(ctx context.Context, steps int) ([]domain.ForecastPoint, error) {
	if steps < 1 {
		return nil, computationError(s.settings.ModelPath, fmt.Errorf("forecast horizon must be positive, got %d", steps))
	}

	doc, err := s.artifacts.Load(s.settings.ModelPath)
	if err != nil {
		return nil, domain.NewStageError(domain.StageForecast, domain.KindFileAccess, s.settings.ModelPath, err)
	}

	model, err := doc.Restore()
	if err != nil {
		return nil, domain.NewStageError(domain.StageForecast, domain.KindParse, s.settings.ModelPath, err)
	}

	predicted, err := model.Forecast(steps)
	if err != nil {
		return nil, computationError(s.settings.ModelPath, err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"path":       s.settings.ModelPath,
		"fitted_at":  doc.FittedAt,
		"series_end": doc.SeriesEnd.String(),
	}).Debug("Forecast produced from saved model")

	return forecastPoints(doc.SeriesEnd, predicted), nil
}

// Resample sums TotalSales per calendar month from the first to the last
// observed month. Months without transactions are present with zero.
func Resample(rows []domain.EnrichedTransaction) []domain.MonthlyRevenue {
	if len(rows) == 0 {
		return nil
	}

	totals := make(map[domain.Period]decimal.Decimal)
	first, last := rows[0].Period(), rows[0].Period()
	for _, row := range rows {
		period := row.Period()
		totals[period] = totals[period].Add(row.TotalSales)
		if period.Before(first) {
			first = period
		}
		if last.Before(period) {
			last = period
		}
	}

	series := make([]domain.MonthlyRevenue, 0, len(totals))
	for period := first; !last.Before(period); period = period.Next() {
		series = append(series, domain.MonthlyRevenue{
			Period:     period,
			TotalSales: totals[period],
		})
	}

	return series
}

func forecastPoints(last domain.Period, values []float64) []domain.ForecastPoint {
	points := make([]domain.ForecastPoint, len(values))
	period := last
	for i, value := range values {
		period = period.Next()
		points[i] = domain.ForecastPoint{Period: period, Value: value}
	}
	return points
}

func computationError(input string, err error) error {
	return domain.NewStageError(domain.StageForecast, domain.KindComputation, input, err)
}

func persistenceError(input string, err error) error {
	return domain.NewStageError(domain.StageForecast, domain.KindPersistence, input, err)
}
