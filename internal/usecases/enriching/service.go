package enriching

import (
	"fmt"

	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

// Service joins cleaned transactions with the product reference.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Enrich left-joins transactions with products on ProductID and computes
// TotalSales = Quantity x Price. Every transaction is kept; unmatched rows get
// a nil ProductName and Category, and so do matched products whose reference
// cell is empty.
func (s *Service) Enrich(transactions []domain.Transaction, products []domain.Product) ([]domain.EnrichedTransaction, error) {
	byID := make(map[float64]domain.Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ProductID]; dup {
			return nil, domain.NewStageError(domain.StageEnrich, domain.KindComputation, "",
				fmt.Errorf("duplicate ProductID %v in product reference", p.ProductID))
		}
		byID[p.ProductID] = p
	}

	enriched := make([]domain.EnrichedTransaction, 0, len(transactions))
	unmatched := 0
	for _, tx := range transactions {
		row := domain.EnrichedTransaction{
			Transaction: tx,
			TotalSales:  tx.Quantity.Mul(tx.Price),
		}
		if p, ok := byID[tx.ProductID]; ok {
			row.ProductName = optional(p.ProductName)
			row.Category = optional(p.Category)
		} else {
			unmatched++
		}
		enriched = append(enriched, row)
	}

	log.L.WithFields(log.Fields{
		"rows":      len(enriched),
		"unmatched": unmatched,
	}).Info("Data enriched successfully")

	return enriched, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
