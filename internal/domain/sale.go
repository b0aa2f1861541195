package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction is one row of a region sales file as read from disk.
// Nullable cells are nil.
type RawTransaction struct {
	TransactionID string
	Date          string
	ProductID     *string
	Quantity      *string
	Price         *string
	Region        string
}

// Transaction is a cleaned sales row: numeric fields are filled and the date
// is resolved to a calendar period.
type Transaction struct {
	TransactionID string          `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	ProductID     float64         `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Region        string          `json:"region,omitempty"`
}

// Period returns the calendar month of the transaction.
func (t Transaction) Period() Period {
	return Period{Year: t.Year, Month: time.Month(t.Month)}
}

// Product is a row of the product reference table.
type Product struct {
	ProductID   float64 `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
}

// EnrichedTransaction is a Transaction left-joined with its Product.
// ProductName and Category are nil when the product is unknown or the
// reference leaves them empty.
type EnrichedTransaction struct {
	Transaction
	ProductName *string         `json:"product_name"`
	Category    *string         `json:"category"`
	TotalSales  decimal.Decimal `json:"total_sales"`
}
