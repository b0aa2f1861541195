package domain

import "github.com/shopspring/decimal"

const (
	CategoryReportTable = "report_cat"
	PeriodReportTable   = "report_date"
)

// CategoryTotal is one row of report_cat. A nil Category is the bucket of
// transactions whose product is not in the reference table.
type CategoryTotal struct {
	Category   *string         `json:"category"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// PeriodTotal is one row of report_date.
type PeriodTotal struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// Reports groups the two aggregates produced from one enriched set.
type Reports struct {
	ByCategory []CategoryTotal `json:"by_category"`
	ByPeriod   []PeriodTotal   `json:"by_period"`
}

// CategorySum returns the sum of TotalSales over the category report.
func (r *Reports) CategorySum() decimal.Decimal {
	sum := decimal.Zero
	for _, row := range r.ByCategory {
		sum = sum.Add(row.TotalSales)
	}
	return sum
}

// PeriodSum returns the sum of TotalSales over the period report.
func (r *Reports) PeriodSum() decimal.Decimal {
	sum := decimal.Zero
	for _, row := range r.ByPeriod {
		sum = sum.Add(row.TotalSales)
	}
	return sum
}

// TableInfo describes a table found in the report store.
type TableInfo struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}
