package scrape

import (
	"math"
	"sort"

	"github.com/adeelraza/go-scrape-fashion/models"
	"github.com/adeelraza/go-scrape-fashion/registry"
)

// dedupeByURL keeps the first product seen per product URL. Used on the
// single-brand path, where the same item surfaces under several search
// terms with one canonical URL.
func dedupeByURL(products []*models.Product) []*models.Product {
	seen := make(map[string]struct{}, len(products))
	unique := make([]*models.Product, 0, len(products))
	for _, product := range products {
		if _, ok := seen[product.ProductURL]; ok {
			continue
		}
		seen[product.ProductURL] = struct{}{}
		unique = append(unique, product)
	}
	return unique
}

// dedupeByNameBrand keeps the first product seen per (name, brand)
// pair. Used on the multi-brand path, where the same item can surface
// under distinct tracking URLs.
func dedupeByNameBrand(products []*models.Product) []*models.Product {
	type key struct{ name, brand string }
	seen := make(map[key]struct{}, len(products))
	unique := make([]*models.Product, 0, len(products))
	for _, product := range products {
		k := key{name: product.Name, brand: product.Brand}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, product)
	}
	return unique
}

// sortByPrice orders products by ascending numeric price. Products
// without a parsed price sort after all priced ones; the sort is stable
// so insertion order breaks ties.
func sortByPrice(products []*models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return numericOrInf(products[i]) < numericOrInf(products[j])
	})
}

func numericOrInf(p *models.Product) float64 {
	if p.PriceNumeric == nil {
		return math.Inf(1)
	}
	return *p.PriceNumeric
}

// FilterProductsByPrice keeps products whose parsed price falls inside
// the named range, bounds inclusive. An unknown range key returns the
// input unchanged; products without a numeric price never match.
func FilterProductsByPrice(products []*models.Product, rangeKey string) []*models.Product {
	band, ok := registry.PriceRanges[rangeKey]
	if !ok {
		return products
	}

	filtered := make([]*models.Product, 0, len(products))
	for _, product := range products {
		if product.PriceNumeric == nil {
			continue
		}
		if price := *product.PriceNumeric; price >= band.Min && price <= band.Max {
			filtered = append(filtered, product)
		}
	}
	return filtered
}
