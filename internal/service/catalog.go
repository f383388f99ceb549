package service

import (
	"strings"

	"github.com/sakif/krishi-mitra/internal/model"
)

// CatalogService serves the static product catalog.
//
// The dataset is loaded once at construction and never mutated — the
// slice handed to searches is read-only after startup, so concurrent
// requests need no locking. There are no persistence or mutation
// endpoints by design.
type CatalogService struct {
	products []model.Product
}

// NewCatalogService creates a CatalogService over the bundled dataset.
func NewCatalogService() *CatalogService {
	return &CatalogService{products: catalogProducts}
}

// NewCatalogServiceWithProducts creates a CatalogService over a custom
// dataset. Used by tests.
func NewCatalogServiceWithProducts(products []model.Product) *CatalogService {
	return &CatalogService{products: products}
}

// Search filters the catalog. Both filters are optional and combine
// with AND:
//
//   - category: exact match against the product category
//   - term: case-insensitive substring match against the product name
//     OR any of its keywords
//
// Empty filters pass everything; Search with no filters returns the
// whole catalog.
func (s *CatalogService) Search(term, category string) []model.Product {
	results := []model.Product{}
	lowerTerm := strings.ToLower(term)

	for _, p := range s.products {
		if category != "" && p.Category != category {
			continue
		}
		if lowerTerm != "" && !matchesTerm(p, lowerTerm) {
			continue
		}
		results = append(results, p)
	}

	return results
}

func matchesTerm(p model.Product, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(p.Name), lowerTerm) {
		return true
	}
	for _, kw := range p.Keywords {
		if strings.Contains(strings.ToLower(kw), lowerTerm) {
			return true
		}
	}
	return false
}
