package aggregating

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

// Service builds the category and period reports.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Aggregate sums TotalSales by Category and by (Year, Month). Transactions
// without a category form their own group.
func (s *Service) Aggregate(rows []domain.EnrichedTransaction) (*domain.Reports, error) {
	type categoryKey struct {
		name  string
		known bool
	}

	byCategory := make(map[categoryKey]decimal.Decimal)
	byPeriod := make(map[domain.Period]decimal.Decimal)
	total := decimal.Zero

	for _, row := range rows {
		key := categoryKey{}
		if row.Category != nil {
			key = categoryKey{name: *row.Category, known: true}
		}
		byCategory[key] = byCategory[key].Add(row.TotalSales)

		period := row.Period()
		byPeriod[period] = byPeriod[period].Add(row.TotalSales)

		total = total.Add(row.TotalSales)
	}

	reports := &domain.Reports{
		ByCategory: make([]domain.CategoryTotal, 0, len(byCategory)),
		ByPeriod:   make([]domain.PeriodTotal, 0, len(byPeriod)),
	}

	for key, sum := range byCategory {
		entry := domain.CategoryTotal{TotalSales: sum}
		if key.known {
			name := key.name
			entry.Category = &name
		}
		reports.ByCategory = append(reports.ByCategory, entry)
	}
	sort.Slice(reports.ByCategory, func(i, j int) bool {
		a, b := reports.ByCategory[i].Category, reports.ByCategory[j].Category
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return *a < *b
	})

	for period, sum := range byPeriod {
		reports.ByPeriod = append(reports.ByPeriod, domain.PeriodTotal{
			Year:       period.Year,
			Month:      int(period.Month),
			TotalSales: sum,
		})
	}
	sort.Slice(reports.ByPeriod, func(i, j int) bool {
		a, b := reports.ByPeriod[i], reports.ByPeriod[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})

	if !reports.CategorySum().Equal(total) || !reports.PeriodSum().Equal(total) {
		return nil, domain.NewStageError(domain.StageAggregate, domain.KindComputation, "",
			fmt.Errorf("report totals diverge: category=%s period=%s rows=%s",
				reports.CategorySum(), reports.PeriodSum(), total))
	}

	log.L.WithFields(log.Fields{
		"categories":  len(reports.ByCategory),
		"periods":     len(reports.ByPeriod),
		"total_sales": total.String(),
	}).Info("Data aggregated successfully")

	return reports, nil
}
