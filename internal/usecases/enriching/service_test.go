package enriching

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

func tx(id string, productID float64, quantity, price string) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Year:          2023,
		Month:         1,
		ProductID:     productID,
		Quantity:      decimal.RequireFromString(quantity),
		Price:         decimal.RequireFromString(price),
	}
}

var products = []domain.Product{
	{ProductID: 101, ProductName: "Laptop", Category: "Electronics"},
	{ProductID: 102, ProductName: "Desk", Category: "Furniture"},
}

func TestService_Enrich(t *testing.T) {
	transactions := []domain.Transaction{
		tx("1", 101, "3", "0.1"),
		tx("2", 999, "2", "15"),
		tx("3", 102, "1", "249.99"),
		tx("4", 101.5, "1", "10"),
	}

	enriched, err := NewService().Enrich(transactions, products)
	require.NoError(t, err)
	require.Len(t, enriched, 4)

	assert.Equal(t, "0.3", enriched[0].TotalSales.String())
	assert.Equal(t, "Laptop", *enriched[0].ProductName)
	assert.Equal(t, "Electronics", *enriched[0].Category)

	assert.Equal(t, "30", enriched[1].TotalSales.String())
	assert.Nil(t, enriched[1].ProductName)
	assert.Nil(t, enriched[1].Category)

	assert.Equal(t, "Furniture", *enriched[2].Category)
	assert.Nil(t, enriched[3].Category)

	for i := range transactions {
		assert.Equal(t, transactions[i].TransactionID, enriched[i].TransactionID)
	}
}

func TestService_Enrich_EmptyReferenceCategoryIsNull(t *testing.T) {
	reference := []domain.Product{{ProductID: 103, ProductName: "Lamp"}}

	enriched, err := NewService().Enrich([]domain.Transaction{tx("1", 103, "2", "5"), tx("2", 999, "1", "1")}, reference)
	require.NoError(t, err)
	require.Len(t, enriched, 2)

	assert.Equal(t, "Lamp", *enriched[0].ProductName)
	assert.Nil(t, enriched[0].Category)
	assert.Nil(t, enriched[1].Category)
}

func TestService_Enrich_DuplicateProduct(t *testing.T) {
	duplicated := append([]domain.Product{{ProductID: 101, ProductName: "Tablet", Category: "Electronics"}}, products...)

	_, err := NewService().Enrich([]domain.Transaction{tx("1", 101, "1", "1")}, duplicated)

	assert.ErrorIs(t, err, domain.ErrComputation)
	var stageErr *domain.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageEnrich, stageErr.Stage)
}
