package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Period is a calendar month.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// PeriodOf returns the month containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Start returns midnight UTC on the first day of the period.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following month.
func (p Period) Next() Period {
	return PeriodOf(p.Start().AddDate(0, 1, 0))
}

// Before reports whether p is strictly earlier than other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// String formats the period as yyyy-mm.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// MonthlyRevenue is one point of the regular monthly revenue series.
type MonthlyRevenue struct {
	Period     Period          `json:"period"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// ForecastPoint is one predicted month.
type ForecastPoint struct {
	Period Period  `json:"period"`
	Value  float64 `json:"value"`
}

// ForecastResult is the outcome of the forecasting stage.
type ForecastResult struct {
	Observed     []MonthlyRevenue `json:"observed"`
	Forecast     []ForecastPoint  `json:"forecast"`
	ModelPath    string           `json:"model_path,omitempty"`
	ChartPath    string           `json:"chart_path,omitempty"`
	GeneratedAt  time.Time        `json:"generated_at"`
	ModelSummary string           `json:"model_summary"`
}
