package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-pipeline/infrastructure/database/sqlstore"
	"github.com/vfg2006/sales-pipeline/internal/config"
	"github.com/vfg2006/sales-pipeline/internal/domain"
)

func newSQLiteRepository(t *testing.T) ReportRepository {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sales.db")
	return NewReportRepository(sqlstore.NewOpener(config.Database{
		Driver: config.DriverSQLite,
		URL:    path,
		DSN:    path,
	}))
}

func strPtr(s string) *string {
	return &s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReplacePeriodReport_SecondRunReplacesRows(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	first := []domain.PeriodTotal{
		{Year: 2023, Month: 1, TotalSales: dec("100.5")},
		{Year: 2023, Month: 2, TotalSales: dec("200")},
		{Year: 2023, Month: 3, TotalSales: dec("300")},
	}
	second := []domain.PeriodTotal{
		{Year: 2024, Month: 6, TotalSales: dec("42.25")},
	}

	require.NoError(t, repo.ReplacePeriodReport(ctx, first))
	require.NoError(t, repo.ReplacePeriodReport(ctx, second))

	got, err := repo.ListPeriodReport(ctx)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, 2024, got[0].Year)
	assert.Equal(t, 6, got[0].Month)
	assert.True(t, got[0].TotalSales.Equal(dec("42.25")), got[0].TotalSales.String())
}

func TestReplaceCategoryReport_KeepsNullCategoryLast(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	rows := []domain.CategoryTotal{
		{Category: strPtr("Electronics"), TotalSales: dec("1500")},
		{Category: strPtr("Books"), TotalSales: dec("30.5")},
		{Category: nil, TotalSales: dec("12")},
	}
	require.NoError(t, repo.ReplaceCategoryReport(ctx, rows))
	require.NoError(t, repo.ReplaceCategoryReport(ctx, rows))

	got, err := repo.ListCategoryReport(ctx)
	require.NoError(t, err)

	require.Len(t, got, 3)
	require.NotNil(t, got[0].Category)
	assert.Equal(t, "Books", *got[0].Category)
	assert.True(t, got[0].TotalSales.Equal(dec("30.5")))
	require.NotNil(t, got[1].Category)
	assert.Equal(t, "Electronics", *got[1].Category)
	assert.Nil(t, got[2].Category)
	assert.True(t, got[2].TotalSales.Equal(dec("12")))
}

func TestReplacePeriodReport_ManyRowsAreBatched(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	rows := make([]domain.PeriodTotal, 0, 600)
	for i := 0; i < 600; i++ {
		rows = append(rows, domain.PeriodTotal{Year: 1900 + i/12, Month: i%12 + 1, TotalSales: decimal.NewFromInt(int64(i))})
	}

	require.NoError(t, repo.ReplacePeriodReport(ctx, rows))

	got, err := repo.ListPeriodReport(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 600)
}

func TestReplaceReport_EmptyCreatesEmptyTable(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	require.NoError(t, repo.ReplaceCategoryReport(ctx, nil))

	got, err := repo.ListCategoryReport(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDescribeTables(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	require.NoError(t, repo.ReplaceCategoryReport(ctx, []domain.CategoryTotal{{Category: strPtr("A"), TotalSales: dec("1")}}))
	require.NoError(t, repo.ReplacePeriodReport(ctx, []domain.PeriodTotal{{Year: 2023, Month: 1, TotalSales: dec("1")}}))

	tables, err := repo.DescribeTables(ctx)
	require.NoError(t, err)

	assert.Equal(t, []domain.TableInfo{
		{Name: domain.CategoryReportTable, Columns: []string{"Category", "TotalSales"}},
		{Name: domain.PeriodReportTable, Columns: []string{"Year", "Month", "TotalSales"}},
	}, tables)
}

func TestListPeriodReport_MissingTableIsPersistenceError(t *testing.T) {
	_, err := newSQLiteRepository(t).ListPeriodReport(context.Background())
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestReplace_UnreachableStoreIsPersistenceError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	path := filepath.Join(blocker, "sales.db")

	repo := NewReportRepository(sqlstore.NewOpener(config.Database{Driver: config.DriverSQLite, URL: path, DSN: path}))
	err := repo.ReplacePeriodReport(context.Background(), []domain.PeriodTotal{{Year: 2023, Month: 1, TotalSales: dec("1")}})

	assert.ErrorIs(t, err, domain.ErrPersistence)
	var stageErr *domain.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StagePersist, stageErr.Stage)
	assert.Equal(t, domain.PeriodReportTable, stageErr.Input)
}

func TestNewConnection_UnknownDriver(t *testing.T) {
	_, err := sqlstore.NewConnection(context.Background(), config.Database{Driver: "mysql", DSN: "x"})
	assert.Error(t, err)
}
