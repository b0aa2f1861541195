package forecasting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-pipeline/infrastructure/artifact"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/forecast/arima"
	"github.com/vfg2006/sales-pipeline/internal/usecases/forecasting/mocks"
	"github.com/vfg2006/sales-pipeline/pkg/log"
	"go.uber.org/mock/gomock"
)

func init() {
	log.SetupTestLogger()
}

func sale(year int, month time.Month, day int, total int64) domain.EnrichedTransaction {
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return domain.EnrichedTransaction{
		Transaction: domain.Transaction{
			TransactionID: date.Format(time.DateOnly),
			Date:          date,
			Year:          year,
			Month:         int(month),
		},
		TotalSales: decimal.NewFromInt(total),
	}
}

// twoYears returns two sales per month from January 2022 to December 2023.
func twoYears() []domain.EnrichedTransaction {
	rows := make([]domain.EnrichedTransaction, 0, 48)
	for i := 0; i < 24; i++ {
		year, month := 2022+i/12, time.Month(i%12+1)
		rows = append(rows,
			sale(year, month, 3, int64(1000+40*i+(i*37)%90)),
			sale(year, month, 17, int64(500+(i*53)%70)),
		)
	}
	return rows
}

func defaultSettings() Settings {
	return Settings{
		Order:     arima.Order{P: 2, D: 1, Q: 0},
		Steps:     12,
		SaveModel: true,
		ModelPath: "models/arima.json",
		PlotPath:  "plots/forecast.png",
	}
}

func TestResample_FillsMissingMonthsWithZero(t *testing.T) {
	rows := []domain.EnrichedTransaction{
		sale(2023, time.March, 9, 30),
		sale(2023, time.January, 2, 10),
		sale(2023, time.January, 20, 5),
	}

	series := Resample(rows)

	require.Len(t, series, 3)
	assert.Equal(t, domain.Period{Year: 2023, Month: time.January}, series[0].Period)
	assert.True(t, series[0].TotalSales.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, domain.Period{Year: 2023, Month: time.February}, series[1].Period)
	assert.True(t, series[1].TotalSales.IsZero())
	assert.True(t, series[2].TotalSales.Equal(decimal.NewFromInt(30)))
}

func TestResample_CrossesYearBoundary(t *testing.T) {
	series := Resample([]domain.EnrichedTransaction{
		sale(2022, time.November, 1, 1),
		sale(2023, time.February, 1, 1),
	})

	require.Len(t, series, 4)
	assert.Equal(t, "2022-12", series[1].Period.String())
	assert.Equal(t, "2023-01", series[2].Period.String())
}

func TestRun_ForecastContinuesAfterLastObservedMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockChartRenderer(ctrl)
	store := mocks.NewMockArtifactStore(ctrl)
	settings := defaultSettings()

	store.EXPECT().
		Save(settings.ModelPath, gomock.Any()).
		DoAndReturn(func(_ string, doc *artifact.Document) error {
			assert.Equal(t, domain.Period{Year: 2022, Month: time.January}, doc.SeriesStart)
			assert.Equal(t, domain.Period{Year: 2023, Month: time.December}, doc.SeriesEnd)
			assert.Equal(t, settings.Order, doc.Model.Order)
			return nil
		})
	renderer.EXPECT().
		Render(settings.PlotPath, gomock.Len(24), gomock.Len(12)).
		Return(nil)

	result, err := NewService(settings, renderer, store).Run(context.Background(), twoYears())
	require.NoError(t, err)

	require.Len(t, result.Forecast, 12)
	for i, point := range result.Forecast {
		assert.Equal(t, domain.Period{Year: 2024, Month: time.Month(i + 1)}, point.Period)
	}
	assert.Len(t, result.Observed, 24)

	first := result.Observed[0].TotalSales.InexactFloat64()
	last := result.Observed[23].TotalSales.InexactFloat64()
	drift := (last - first) / 23
	for i, point := range result.Forecast {
		want := last + drift*float64(i+1)
		assert.InDelta(t, want, point.Value, 150, "forecast for %s", point.Period)
	}
	assert.Equal(t, settings.ModelPath, result.ModelPath)
	assert.Equal(t, settings.PlotPath, result.ChartPath)
	assert.NotEmpty(t, result.ModelSummary)
}

func TestRun_SaveModelDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockChartRenderer(ctrl)
	store := mocks.NewMockArtifactStore(ctrl)
	settings := defaultSettings()
	settings.SaveModel = false

	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := NewService(settings, renderer, store).Run(context.Background(), twoYears())
	require.NoError(t, err)
	assert.Empty(t, result.ModelPath)
}

func TestRun_InsufficientHistoryIsComputationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockChartRenderer(ctrl)
	store := mocks.NewMockArtifactStore(ctrl)

	rows := []domain.EnrichedTransaction{
		sale(2023, time.January, 1, 10),
		sale(2023, time.March, 1, 20),
	}

	result, err := NewService(defaultSettings(), renderer, store).Run(context.Background(), rows)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrComputation)
	assert.ErrorIs(t, err, arima.ErrInsufficientData)
}

func TestRun_FitsASingleCalendarYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockChartRenderer(ctrl)
	store := mocks.NewMockArtifactStore(ctrl)
	settings := defaultSettings()
	settings.SaveModel = false

	renderer.EXPECT().Render(settings.PlotPath, gomock.Len(12), gomock.Len(12)).Return(nil)

	result, err := NewService(settings, renderer, store).Run(context.Background(), twoYears()[:24])
	require.NoError(t, err)
	assert.Equal(t, "2023-01", result.Forecast[0].Period.String())
	for _, point := range result.Forecast {
		assert.Greater(t, point.Value, 0.0)
	}
}

func TestRun_ArtifactFailureKeepsForecast(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockChartRenderer(ctrl)
	store := mocks.NewMockArtifactStore(ctrl)

	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("read-only file system"))
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := NewService(defaultSettings(), renderer, store).Run(context.Background(), twoYears())

	assert.ErrorIs(t, err, domain.ErrPersistence)
	require.NotNil(t, result)
	assert.Len(t, result.Forecast, 12)
	assert.Empty(t, result.ModelPath)
}

func TestRun_ChartFailureIsPersistenceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockChartRenderer(ctrl)
	store := mocks.NewMockArtifactStore(ctrl)

	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	result, err := NewService(defaultSettings(), renderer, store).Run(context.Background(), twoYears())

	assert.ErrorIs(t, err, domain.ErrPersistence)
	kind, ok := domain.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, domain.KindPersistence, kind)
	require.NotNil(t, result)
	assert.Empty(t, result.ChartPath)
}

func TestFromArtifact_ContinuesFromSavedSeriesEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	values := make([]float64, 24)
	for i := range values {
		values[i] = 100 + 3*float64(i)
	}
	model := arima.New(arima.Order{P: 0, D: 1, Q: 0})
	require.NoError(t, model.Fit(values))
	state, err := model.State()
	require.NoError(t, err)

	store := mocks.NewMockArtifactStore(ctrl)
	settings := defaultSettings()
	store.EXPECT().Load(settings.ModelPath).Return(&artifact.Document{
		Model:     state,
		SeriesEnd: domain.Period{Year: 2023, Month: time.November},
	}, nil)

	points, err := NewService(settings, mocks.NewMockChartRenderer(ctrl), store).FromArtifact(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, "2023-12", points[0].Period.String())
	assert.Equal(t, "2024-01", points[1].Period.String())
	assert.InDelta(t, 172.0, points[0].Value, 1e-9)
	assert.InDelta(t, 175.0, points[1].Value, 1e-9)
}

func TestFromArtifact_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockArtifactStore(ctrl)
	store.EXPECT().Load(gomock.Any()).Return(nil, errors.New("no such file"))

	_, err := NewService(defaultSettings(), mocks.NewMockChartRenderer(ctrl), store).FromArtifact(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrFileAccess)
}
