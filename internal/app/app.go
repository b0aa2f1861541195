package app

import (
	"github.com/vfg2006/sales-pipeline/infrastructure/artifact"
	"github.com/vfg2006/sales-pipeline/infrastructure/chart"
	"github.com/vfg2006/sales-pipeline/infrastructure/csvsource"
	"github.com/vfg2006/sales-pipeline/infrastructure/database/sqlstore"
	"github.com/vfg2006/sales-pipeline/infrastructure/repository"
	"github.com/vfg2006/sales-pipeline/internal/config"
	"github.com/vfg2006/sales-pipeline/internal/pipeline"
	"github.com/vfg2006/sales-pipeline/internal/usecases/aggregating"
	"github.com/vfg2006/sales-pipeline/internal/usecases/cleaning"
	"github.com/vfg2006/sales-pipeline/internal/usecases/enriching"
	"github.com/vfg2006/sales-pipeline/internal/usecases/forecasting"
)

// Components are the services shared by the command line and the API.
type Components struct {
	Pipeline   *pipeline.Pipeline
	Reports    repository.ReportRepository
	Forecaster *forecasting.Service
}

// Build wires every pipeline stage from cfg.
func Build(cfg *config.Config) *Components {
	reports := repository.NewReportRepository(sqlstore.NewOpener(cfg.Database))

	forecaster := forecasting.NewService(
		forecasting.Settings{
			Order:     cfg.Forecast.Order,
			Steps:     cfg.Forecast.Steps,
			SaveModel: cfg.Forecast.SaveModel,
			ModelPath: cfg.Forecast.ModelPath,
			PlotPath:  cfg.Forecast.PlotPath,
		},
		chart.NewForecastRenderer(),
		artifact.NewFileStore(),
	)

	p := pipeline.New(
		pipeline.Settings{
			SalesAPath:     cfg.Input.SalesAPath,
			SalesBPath:     cfg.Input.SalesBPath,
			ProductIDsPath: cfg.Input.ProductIDsPath,
		},
		csvsource.NewSource(),
		cleaning.NewService(),
		enriching.NewService(),
		aggregating.NewService(),
		reports,
		forecaster,
	)

	return &Components{
		Pipeline:   p,
		Reports:    reports,
		Forecaster: forecaster,
	}
}
