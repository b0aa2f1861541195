package pipeline_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-pipeline/infrastructure/artifact"
	"github.com/vfg2006/sales-pipeline/infrastructure/chart"
	"github.com/vfg2006/sales-pipeline/infrastructure/csvsource"
	"github.com/vfg2006/sales-pipeline/infrastructure/database/sqlstore"
	"github.com/vfg2006/sales-pipeline/infrastructure/repository"
	"github.com/vfg2006/sales-pipeline/internal/config"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/forecast/arima"
	"github.com/vfg2006/sales-pipeline/internal/pipeline"
	"github.com/vfg2006/sales-pipeline/internal/usecases/aggregating"
	"github.com/vfg2006/sales-pipeline/internal/usecases/cleaning"
	"github.com/vfg2006/sales-pipeline/internal/usecases/enriching"
	"github.com/vfg2006/sales-pipeline/internal/usecases/forecasting"
)

func writeFile(t *testing.T, path string, lines []string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

// writeInputs writes two years of sales split across both regions. Region A
// uses month/day/year dates and region B day-month-year.
func writeInputs(t *testing.T, dir string) pipeline.Settings {
	t.Helper()

	// the first row misses its quantity and product id
	salesA := []string{"TransactionID,Date,ProductID,Quantity,Price", "0,12/28/2023,,,10"}
	salesB := []string{"TransactionID,Date,ProductID,Quantity,Price"}
	id := 1
	for i := 0; i < 24; i++ {
		year, month := 2022+i/12, i%12+1
		quantity := 1 + i%4
		salesA = append(salesA, fmt.Sprintf("%d,%d/5/%d,%d,%d,%d.50", id, month, year, 101+i%3, quantity, 100+i*3))
		id++
		salesB = append(salesB, fmt.Sprintf("%d,20-%02d-%d,%d,%d,%d", id, month, year, 101+(i+1)%3, 2, 40+(i*7)%25))
		id++
	}
	// an unknown product
	salesB = append(salesB, fmt.Sprintf("%d,28-12-2023,999,1,15", id))

	settings := pipeline.Settings{
		SalesAPath:     filepath.Join(dir, "sales_A.csv"),
		SalesBPath:     filepath.Join(dir, "sales_B.csv"),
		ProductIDsPath: filepath.Join(dir, "product_ids.csv"),
	}
	writeFile(t, settings.SalesAPath, salesA)
	writeFile(t, settings.SalesBPath, salesB)
	writeFile(t, settings.ProductIDsPath, []string{
		"ProductID,ProductName,Category",
		"101,Laptop,Electronics",
		"102,Desk,Furniture",
		"103,Novel,Books",
	})

	return settings
}

func TestPipeline_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	settings := writeInputs(t, dir)

	dbPath := filepath.Join(dir, "sales.db")
	reports := repository.NewReportRepository(sqlstore.NewOpener(config.Database{
		Driver: config.DriverSQLite,
		URL:    dbPath,
		DSN:    dbPath,
	}))

	forecastSettings := forecasting.Settings{
		Order:     arima.Order{P: 2, D: 1, Q: 0},
		Steps:     12,
		SaveModel: true,
		ModelPath: filepath.Join(dir, "models", "arima.json"),
		PlotPath:  filepath.Join(dir, "plots", "forecast.png"),
	}
	forecaster := forecasting.NewService(forecastSettings, chart.NewForecastRenderer(), artifact.NewFileStore())

	p := pipeline.New(
		settings,
		csvsource.NewSource(),
		cleaning.NewService(),
		enriching.NewService(),
		aggregating.NewService(),
		reports,
		forecaster,
	)

	ctx := context.Background()
	summary, err := p.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 25, summary.RowsA)
	assert.Equal(t, 25, summary.RowsB)
	assert.Equal(t, 50, summary.Enriched)
	assert.Equal(t, 1, summary.Unmatched)

	periods, err := reports.ListPeriodReport(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 24)
	assert.Equal(t, 2022, periods[0].Year)
	assert.Equal(t, 1, periods[0].Month)

	total := decimal.Zero
	for _, row := range periods {
		total = total.Add(row.TotalSales)
	}
	categories, err := reports.ListCategoryReport(ctx)
	require.NoError(t, err)
	categoryTotal := decimal.Zero
	for _, row := range categories {
		categoryTotal = categoryTotal.Add(row.TotalSales)
	}
	assert.True(t, total.Sub(categoryTotal).Abs().LessThan(decimal.RequireFromString("0.0001")))
	assert.Nil(t, categories[len(categories)-1].Category)

	require.Len(t, summary.Forecast.Forecast, 12)
	assert.Equal(t, domain.Period{Year: 2024, Month: time.January}, summary.Forecast.Forecast[0].Period)
	assert.Equal(t, domain.Period{Year: 2024, Month: time.December}, summary.Forecast.Forecast[11].Period)

	assert.FileExists(t, forecastSettings.ModelPath)
	assert.FileExists(t, forecastSettings.PlotPath)

	restored, err := forecaster.FromArtifact(ctx, 12)
	require.NoError(t, err)
	for i := range restored {
		assert.Equal(t, summary.Forecast.Forecast[i].Period, restored[i].Period)
		assert.InDelta(t, summary.Forecast.Forecast[i].Value, restored[i].Value, 1e-6)
	}
}

func TestPipeline_MissingInputFile(t *testing.T) {
	dir := t.TempDir()
	settings := writeInputs(t, dir)
	settings.SalesBPath = filepath.Join(dir, "missing.csv")

	p := pipeline.New(settings, csvsource.NewSource(), cleaning.NewService(), enriching.NewService(),
		aggregating.NewService(), nil, nil)

	_, err := p.Run(context.Background())

	assert.ErrorIs(t, err, domain.ErrFileAccess)
	var stageErr *domain.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, settings.SalesBPath, stageErr.Input)
}
