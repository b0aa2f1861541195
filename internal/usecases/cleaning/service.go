package cleaning

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

// Date layouts tried in order: month/day/year first, then day-month-year.
const (
	LayoutMonthDayYear = "1/2/2006"
	LayoutDayMonthYear = "2-1-2006"
)

// Result is the cleaned transaction set plus what the repairs did.
type Result struct {
	Transactions []domain.Transaction
	// Rejected holds rows whose Date matched no known layout. They are kept
	// out of the cleaned set so every transaction has a resolved period.
	Rejected          []domain.RawTransaction
	QuantityFill      decimal.Decimal
	PriceFill         decimal.Decimal
	FilledQuantities  int
	FilledPrices      int
	ImputedProductIDs int
	// FractionalIDs lists transactions whose interpolated ProductID is not an
	// integer and therefore cannot match a reference product.
	FractionalIDs []string
}

// Service repairs missing values and normalizes dates.
type Service struct {
	layouts []string
}

func NewService() *Service {
	return &Service{
		layouts: []string{LayoutMonthDayYear, LayoutDayMonthYear},
	}
}

// Clean concatenates regionA then regionB and repairs the combined rows.
// The inputs are not modified.
func (s *Service) Clean(regionA, regionB []domain.RawTransaction) (*Result, error) {
	rows := make([]domain.RawTransaction, 0, len(regionA)+len(regionB))
	rows = append(rows, regionA...)
	rows = append(rows, regionB...)

	if len(rows) == 0 {
		return nil, computationError(fmt.Errorf("no transactions to clean"))
	}

	quantities, quantityFill, filledQuantities, err := fillWithRoundedMean(rows, quantityCell, "Quantity")
	if err != nil {
		return nil, err
	}

	prices, priceFill, filledPrices, err := fillWithRoundedMean(rows, priceCell, "Price")
	if err != nil {
		return nil, err
	}

	productIDs, imputed, err := interpolateProductIDs(rows)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Transactions:      make([]domain.Transaction, 0, len(rows)),
		QuantityFill:      quantityFill,
		PriceFill:         priceFill,
		FilledQuantities:  filledQuantities,
		FilledPrices:      filledPrices,
		ImputedProductIDs: len(imputed),
	}

	for i, row := range rows {
		date, ok := s.parseDate(row.Date)
		if !ok {
			result.Rejected = append(result.Rejected, row)
			continue
		}

		if imputed[i] && productIDs[i] != math.Trunc(productIDs[i]) {
			result.FractionalIDs = append(result.FractionalIDs, row.TransactionID)
		}

		result.Transactions = append(result.Transactions, domain.Transaction{
			TransactionID: row.TransactionID,
			Date:          date,
			Year:          date.Year(),
			Month:         int(date.Month()),
			ProductID:     productIDs[i],
			Quantity:      quantities[i],
			Price:         prices[i],
			Region:        row.Region,
		})
	}

	if len(result.Rejected) > 0 {
		ids := make([]string, 0, len(result.Rejected))
		for _, r := range result.Rejected {
			ids = append(ids, r.TransactionID)
		}
		log.L.WithFields(log.Fields{
			"rejected":        len(result.Rejected),
			"transaction_ids": ids,
		}).Warn("Rows with unrecognized date format were quarantined")
	}

	if len(result.FractionalIDs) > 0 {
		log.L.WithFields(log.Fields{
			"count":           len(result.FractionalIDs),
			"transaction_ids": result.FractionalIDs,
		}).Warn("Interpolated ProductID is not an integer, rows will not match the product reference")
	}

	if len(result.Transactions) == 0 {
		return nil, computationError(fmt.Errorf("no row has a parseable date"))
	}

	log.L.WithFields(log.Fields{
		"rows":                len(result.Transactions),
		"quantity_fill":       quantityFill.String(),
		"price_fill":          priceFill.String(),
		"filled_quantities":   filledQuantities,
		"filled_prices":       filledPrices,
		"imputed_product_ids": len(imputed),
	}).Info("Data cleaned & transformed successfully")

	return result, nil
}

func (s *Service) parseDate(value string) (time.Time, bool) {
	for _, layout := range s.layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// fillWithRoundedMean parses a nullable numeric column and fills nulls with
// the mean of the non-null values rounded half to even to an integer.
func fillWithRoundedMean(
	rows []domain.RawTransaction,
	cell func(domain.RawTransaction) *string,
	column string,
) ([]decimal.Decimal, decimal.Decimal, int, error) {
	values := make([]decimal.Decimal, len(rows))
	known := make([]bool, len(rows))
	sum := decimal.Zero
	count := 0

	for i, row := range rows {
		raw := cell(row)
		if raw == nil {
			continue
		}
		v, err := decimal.NewFromString(*raw)
		if err != nil {
			return nil, decimal.Zero, 0, parseError(fmt.Errorf("transaction %q: invalid %s %q: %w", row.TransactionID, column, *raw, err))
		}
		values[i] = v
		known[i] = true
		sum = sum.Add(v)
		count++
	}

	if count == len(rows) {
		return values, decimal.Zero, 0, nil
	}
	if count == 0 {
		return nil, decimal.Zero, 0, computationError(fmt.Errorf("cannot impute %s: no non-null values", column))
	}

	fill := sum.Div(decimal.NewFromInt(int64(count))).RoundBank(0)
	filled := 0
	for i := range values {
		if !known[i] {
			values[i] = fill
			filled++
		}
	}

	return values, fill, filled, nil
}

// interpolateProductIDs treats ProductID as a numeric sequence over row order.
// Interior gaps are filled linearly, leading gaps take the first known ID and
// trailing gaps the last one.
func interpolateProductIDs(rows []domain.RawTransaction) ([]float64, map[int]bool, error) {
	ids := make([]float64, len(rows))
	knownIdx := make([]int, 0, len(rows))

	for i, row := range rows {
		if row.ProductID == nil {
			continue
		}
		v, err := strconv.ParseFloat(*row.ProductID, 64)
		if err != nil {
			return nil, nil, parseError(fmt.Errorf("transaction %q: invalid ProductID %q: %w", row.TransactionID, *row.ProductID, err))
		}
		ids[i] = v
		knownIdx = append(knownIdx, i)
	}

	imputed := make(map[int]bool, len(rows)-len(knownIdx))
	if len(knownIdx) == len(rows) {
		return ids, imputed, nil
	}
	if len(knownIdx) == 0 {
		return nil, nil, computationError(fmt.Errorf("cannot interpolate ProductID: no non-null values"))
	}

	first, last := knownIdx[0], knownIdx[len(knownIdx)-1]
	for i := 0; i < first; i++ {
		ids[i] = ids[first]
		imputed[i] = true
	}
	for i := last + 1; i < len(rows); i++ {
		ids[i] = ids[last]
		imputed[i] = true
	}

	for k := 0; k+1 < len(knownIdx); k++ {
		lo, hi := knownIdx[k], knownIdx[k+1]
		if hi-lo == 1 {
			continue
		}
		step := (ids[hi] - ids[lo]) / float64(hi-lo)
		for i := lo + 1; i < hi; i++ {
			ids[i] = ids[lo] + step*float64(i-lo)
			imputed[i] = true
		}
	}

	return ids, imputed, nil
}

func quantityCell(r domain.RawTransaction) *string { return r.Quantity }

func priceCell(r domain.RawTransaction) *string { return r.Price }

func computationError(err error) error {
	return domain.NewStageError(domain.StageClean, domain.KindComputation, "", err)
}

func parseError(err error) error {
	return domain.NewStageError(domain.StageClean, domain.KindParse, "", err)
}
