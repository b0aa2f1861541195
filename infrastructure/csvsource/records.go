package csvsource

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-pipeline/internal/domain"
)

// Column names of the input files.
const (
	ColTransactionID = "TransactionID"
	ColDate          = "Date"
	ColProductID     = "ProductID"
	ColQuantity      = "Quantity"
	ColPrice         = "Price"
	ColProductName   = "ProductName"
	ColCategory      = "Category"
)

// ReadTransactions maps a region sales table to raw transactions tagged with region.
func ReadTransactions(t *Table, region string) ([]domain.RawTransaction, error) {
	if err := t.Require(ColTransactionID, ColDate, ColProductID, ColQuantity, ColPrice); err != nil {
		return nil, err
	}

	rows := make([]domain.RawTransaction, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := domain.RawTransaction{
			ProductID: t.Cell(i, ColProductID),
			Quantity:  t.Cell(i, ColQuantity),
			Price:     t.Cell(i, ColPrice),
			Region:    region,
		}
		if id := t.Cell(i, ColTransactionID); id != nil {
			row.TransactionID = *id
		}
		if date := t.Cell(i, ColDate); date != nil {
			row.Date = *date
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ReadProducts maps the product reference table. ProductID must be numeric.
func ReadProducts(t *Table) ([]domain.Product, error) {
	if err := t.Require(ColProductID, ColProductName, ColCategory); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		raw := t.Cell(i, ColProductID)
		if raw == nil {
			return nil, domain.NewStageError(domain.StageLoad, domain.KindParse, t.Path,
				errors.Errorf("row %d: ProductID is empty", i+2))
		}
		id, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			return nil, domain.NewStageError(domain.StageLoad, domain.KindParse, t.Path,
				errors.Wrapf(err, "row %d: invalid ProductID %q", i+2, *raw))
		}

		product := domain.Product{ProductID: id}
		if name := t.Cell(i, ColProductName); name != nil {
			product.ProductName = *name
		}
		if category := t.Cell(i, ColCategory); category != nil {
			product.Category = *category
		}
		products = append(products, product)
	}

	return products, nil
}
