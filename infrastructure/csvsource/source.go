package csvsource

import "github.com/vfg2006/sales-pipeline/internal/domain"

// Source reads the pipeline input files from disk.
type Source struct{}

func NewSource() *Source {
	return &Source{}
}

// LoadTransactions loads a region sales file.
func (s *Source) LoadTransactions(path, region string) ([]domain.RawTransaction, error) {
	table, err := Load(path)
	if err != nil {
		return nil, err
	}
	return ReadTransactions(table, region)
}

// LoadProducts loads the product reference file.
func (s *Source) LoadProducts(path string) ([]domain.Product, error) {
	table, err := Load(path)
	if err != nil {
		return nil, err
	}
	return ReadProducts(table)
}
