package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-pipeline/infrastructure/database/sqlstore"
	"github.com/vfg2006/sales-pipeline/internal/config"
	"github.com/vfg2006/sales-pipeline/internal/domain"
)

//go:generate mockgen -source=report.go -destination=mocks/report.go -package=mocks

const (
	colCategory   = `"Category"`
	colTotalSales = `"TotalSales"`
	colYear       = `"Year"`
	colMonth      = `"Month"`

	// insertBatchSize keeps each INSERT under the bind variable limit of both drivers.
	insertBatchSize = 250
)

type ReportRepository interface {
	ReplaceCategoryReport(ctx context.Context, rows []domain.CategoryTotal) error
	ReplacePeriodReport(ctx context.Context, rows []domain.PeriodTotal) error
	ListCategoryReport(ctx context.Context) ([]domain.CategoryTotal, error)
	ListPeriodReport(ctx context.Context) ([]domain.PeriodTotal, error)
	DescribeTables(ctx context.Context) ([]domain.TableInfo, error)
}

type reportRepository struct {
	opener sqlstore.Opener
}

// NewReportRepository creates a repository that opens a connection per
// operation and closes it before returning.
func NewReportRepository(opener sqlstore.Opener) ReportRepository {
	return &reportRepository{
		opener: opener,
	}
}

func (r *reportRepository) ReplaceCategoryReport(ctx context.Context, rows []domain.CategoryTotal) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, []interface{}{row.Category, row.TotalSales})
	}

	return r.replace(ctx, domain.CategoryReportTable,
		fmt.Sprintf("%s TEXT, %s NUMERIC", colCategory, colTotalSales),
		[]string{colCategory, colTotalSales},
		values,
	)
}

func (r *reportRepository) ReplacePeriodReport(ctx context.Context, rows []domain.PeriodTotal) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, []interface{}{row.Year, row.Month, row.TotalSales})
	}

	return r.replace(ctx, domain.PeriodReportTable,
		fmt.Sprintf("%s INTEGER, %s INTEGER, %s NUMERIC", colYear, colMonth, colTotalSales),
		[]string{colYear, colMonth, colTotalSales},
		values,
	)
}

// replace drops and recreates table inside one transaction, so readers see
// either the previous run's rows or the new ones.
func (r *reportRepository) replace(ctx context.Context, table, definition string, columns []string, values [][]interface{}) error {
	conn, err := r.opener.Open(ctx)
	if err != nil {
		return persistenceError(domain.StagePersist, table, fmt.Errorf("error connecting to the database: %w", err))
	}
	defer conn.Close()

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("error dropping table: %w", err)
		}

		if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", table, definition)); err != nil {
			return fmt.Errorf("error creating table: %w", err)
		}

		for start := 0; start < len(values); start += insertBatchSize {
			end := min(start+insertBatchSize, len(values))

			builder := squirrel.
				Insert(table).
				Columns(columns...).
				PlaceholderFormat(conn.Placeholder())
			for _, row := range values[start:end] {
				builder = builder.Values(row...)
			}

			query, args, err := builder.ToSql()
			if err != nil {
				return fmt.Errorf("error building the query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("error inserting rows %d-%d: %w", start, end, err)
			}
		}

		return nil
	})
	if err != nil {
		return persistenceError(domain.StagePersist, table, err)
	}

	return nil
}

func (r *reportRepository) ListCategoryReport(ctx context.Context) ([]domain.CategoryTotal, error) {
	conn, err := r.opener.Open(ctx)
	if err != nil {
		return nil, persistenceError(domain.StageDescribe, domain.CategoryReportTable, err)
	}
	defer conn.Close()

	query, args, err := squirrel.
		Select(colCategory, colTotalSales).
		From(domain.CategoryReportTable).
		OrderBy(colCategory+" IS NULL", colCategory).
		PlaceholderFormat(conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, persistenceError(domain.StageDescribe, domain.CategoryReportTable, fmt.Errorf("error building the query: %w", err))
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceError(domain.StageDescribe, domain.CategoryReportTable, fmt.Errorf("error executing the query: %w", err))
	}
	defer rows.Close()

	report := make([]domain.CategoryTotal, 0)
	for rows.Next() {
		var category sql.NullString
		var total decimal.Decimal
		if err := rows.Scan(&category, &total); err != nil {
			return nil, persistenceError(domain.StageDescribe, domain.CategoryReportTable, fmt.Errorf("error scanning row: %w", err))
		}

		entry := domain.CategoryTotal{TotalSales: total}
		if category.Valid {
			name := category.String
			entry.Category = &name
		}
		report = append(report, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, persistenceError(domain.StageDescribe, domain.CategoryReportTable, fmt.Errorf("error iterating rows: %w", err))
	}

	return report, nil
}

func (r *reportRepository) ListPeriodReport(ctx context.Context) ([]domain.PeriodTotal, error) {
	conn, err := r.opener.Open(ctx)
	if err != nil {
		return nil, persistenceError(domain.StageDescribe, domain.PeriodReportTable, err)
	}
	defer conn.Close()

	query, args, err := squirrel.
		Select(colYear, colMonth, colTotalSales).
		From(domain.PeriodReportTable).
		OrderBy(colYear, colMonth).
		PlaceholderFormat(conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, persistenceError(domain.StageDescribe, domain.PeriodReportTable, fmt.Errorf("error building the query: %w", err))
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceError(domain.StageDescribe, domain.PeriodReportTable, fmt.Errorf("error executing the query: %w", err))
	}
	defer rows.Close()

	report := make([]domain.PeriodTotal, 0)
	for rows.Next() {
		var entry domain.PeriodTotal
		if err := rows.Scan(&entry.Year, &entry.Month, &entry.TotalSales); err != nil {
			return nil, persistenceError(domain.StageDescribe, domain.PeriodReportTable, fmt.Errorf("error scanning row: %w", err))
		}
		report = append(report, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, persistenceError(domain.StageDescribe, domain.PeriodReportTable, fmt.Errorf("error iterating rows: %w", err))
	}

	return report, nil
}

// DescribeTables lists the user tables of the store with their columns in
// declaration order.
func (r *reportRepository) DescribeTables(ctx context.Context) ([]domain.TableInfo, error) {
	conn, err := r.opener.Open(ctx)
	if err != nil {
		return nil, persistenceError(domain.StageDescribe, "", err)
	}
	defer conn.Close()

	var builder squirrel.SelectBuilder
	if conn.Driver() == config.DriverPostgres {
		builder = squirrel.
			Select("table_name", "column_name").
			From("information_schema.columns").
			Where(squirrel.Eq{"table_schema": "public"}).
			OrderBy("table_name", "ordinal_position")
	} else {
		builder = squirrel.
			Select("m.name", "p.name").
			From("sqlite_master m").
			Join("pragma_table_info(m.name) p").
			Where(squirrel.Eq{"m.type": "table"}).
			Where(squirrel.NotLike{"m.name": "sqlite_%"}).
			OrderBy("m.name", "p.cid")
	}

	query, args, err := builder.PlaceholderFormat(conn.Placeholder()).ToSql()
	if err != nil {
		return nil, persistenceError(domain.StageDescribe, "", fmt.Errorf("error building the query: %w", err))
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceError(domain.StageDescribe, "", fmt.Errorf("error executing the query: %w", err))
	}
	defer rows.Close()

	tables := make([]domain.TableInfo, 0)
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return nil, persistenceError(domain.StageDescribe, "", fmt.Errorf("error scanning row: %w", err))
		}

		if len(tables) == 0 || tables[len(tables)-1].Name != table {
			tables = append(tables, domain.TableInfo{Name: table})
		}
		last := &tables[len(tables)-1]
		last.Columns = append(last.Columns, column)
	}

	if err := rows.Err(); err != nil {
		return nil, persistenceError(domain.StageDescribe, "", fmt.Errorf("error iterating rows: %w", err))
	}

	return tables, nil
}

func persistenceError(stage, table string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		err = fmt.Errorf("database error: %w (code: %s)", err, pqErr.Code)
	}
	return domain.NewStageError(stage, domain.KindPersistence, table, err)
}
