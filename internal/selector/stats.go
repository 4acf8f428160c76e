package selector

import (
	"math"

	"github.com/hyperjump/erabu/internal/models"
)

// CatalogStats summarizes the current snapshot. Vendors and product types keep
// first-seen order; an empty catalog reports the price range {+Inf, -Inf}.
func (s *Selector) CatalogStats() models.CatalogStats {
	products := s.store.Snapshot().All()
	stats := models.CatalogStats{
		TotalProducts: len(products),
		Vendors:       []string{},
		ProductTypes:  []string{},
		PriceRange:    models.PriceRange{Min: math.Inf(1), Max: math.Inf(-1)},
	}
	vendors := make(map[string]struct{})
	types := make(map[string]struct{})
	for _, p := range products {
		if _, ok := vendors[p.Vendor]; !ok {
			vendors[p.Vendor] = struct{}{}
			stats.Vendors = append(stats.Vendors, p.Vendor)
		}
		if _, ok := types[p.ProductType]; !ok && p.ProductType != "" {
			types[p.ProductType] = struct{}{}
			stats.ProductTypes = append(stats.ProductTypes, p.ProductType)
		}
		stats.PriceRange.Min = math.Min(stats.PriceRange.Min, p.PriceMin)
		stats.PriceRange.Max = math.Max(stats.PriceRange.Max, p.PriceMax)
	}
	return stats
}
