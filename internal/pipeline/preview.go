package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Stages that can be previewed without writing anything.
const (
	PreviewClean       = "clean"
	PreviewTransform   = "transform"
	PreviewEnrich      = "enrich"
	PreviewTotalSales  = "total_sales"
	PreviewAggregation = "aggregation"
)

var ErrUnknownStage = errors.New("unknown preview stage")

// TransformRow shows how a transaction date was resolved.
type TransformRow struct {
	TransactionID string    `json:"transaction_id"`
	Date          time.Time `json:"date"`
	Year          int       `json:"year"`
	Month         int       `json:"month"`
}

// TotalSalesRow shows the derived revenue of one transaction.
type TotalSalesRow struct {
	TransactionID string          `json:"transaction_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	TotalSales    decimal.Decimal `json:"total_sales"`
}

// Preview computes the stages in memory and returns the first limit rows of
// the requested one. A limit below 1 returns every row. The aggregation stage
// always returns both reports in full.
func (p *Pipeline) Preview(ctx context.Context, stage string, limit int) (any, error) {
	switch stage {
	case PreviewClean, PreviewTransform, PreviewEnrich, PreviewTotalSales, PreviewAggregation:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}

	prepared, err := p.Prepare(ctx)
	if err != nil {
		return nil, err
	}

	switch stage {
	case PreviewClean:
		return head(prepared.Cleaned.Transactions, limit), nil
	case PreviewTransform:
		rows := head(prepared.Cleaned.Transactions, limit)
		out := make([]TransformRow, 0, len(rows))
		for _, row := range rows {
			out = append(out, TransformRow{
				TransactionID: row.TransactionID,
				Date:          row.Date,
				Year:          row.Year,
				Month:         row.Month,
			})
		}
		return out, nil
	case PreviewEnrich:
		return head(prepared.Enriched, limit), nil
	case PreviewTotalSales:
		rows := head(prepared.Enriched, limit)
		out := make([]TotalSalesRow, 0, len(rows))
		for _, row := range rows {
			out = append(out, TotalSalesRow{
				TransactionID: row.TransactionID,
				Quantity:      row.Quantity,
				Price:         row.Price,
				TotalSales:    row.TotalSales,
			})
		}
		return out, nil
	default:
		return prepared.Reports, nil
	}
}

func head[T any](rows []T, limit int) []T {
	if limit < 1 || limit >= len(rows) {
		return rows
	}
	return rows[:limit]
}
