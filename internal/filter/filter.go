// Package filter narrows candidate products by structural predicates and infers
// implicit filters from free-text queries.
package filter

import (
	"strings"

	"github.com/hyperjump/erabu/internal/models"
)

// predicate is one gated filter stage. Stages are ordered cheapest first.
type predicate struct {
	name   string
	active func(f models.SearchFilters) bool
	keep   func(p *models.NormalizedProduct, f models.SearchFilters) bool
}

var predicates = []predicate{
	{
		name:   "available_only",
		active: func(f models.SearchFilters) bool { return f.AvailabilityRequired() },
		keep:   func(p *models.NormalizedProduct, _ models.SearchFilters) bool { return p.Available },
	},
	{
		name:   "min_price",
		active: func(f models.SearchFilters) bool { return positive(f.MinPrice) },
		keep:   func(p *models.NormalizedProduct, f models.SearchFilters) bool { return p.PriceMin >= *f.MinPrice },
	},
	{
		name:   "max_price",
		active: func(f models.SearchFilters) bool { return positive(f.MaxPrice) },
		keep:   func(p *models.NormalizedProduct, f models.SearchFilters) bool { return p.PriceMax <= *f.MaxPrice },
	},
	{
		name:   "vendor",
		active: func(f models.SearchFilters) bool { return f.Vendor != "" },
		keep: func(p *models.NormalizedProduct, f models.SearchFilters) bool {
			return containsFold(p.Vendor, f.Vendor)
		},
	},
	{
		name:   "product_type",
		active: func(f models.SearchFilters) bool { return f.ProductType != "" },
		keep: func(p *models.NormalizedProduct, f models.SearchFilters) bool {
			return containsFold(p.ProductType, f.ProductType)
		},
	},
	{
		name:   "include_tags",
		active: func(f models.SearchFilters) bool { return len(f.IncludeTags) > 0 },
		keep: func(p *models.NormalizedProduct, f models.SearchFilters) bool {
			return anyTagMatches(p.Tags, f.IncludeTags)
		},
	},
	{
		name:   "exclude_tags",
		active: func(f models.SearchFilters) bool { return len(f.ExcludeTags) > 0 },
		keep: func(p *models.NormalizedProduct, f models.SearchFilters) bool {
			return !anyTagMatches(p.Tags, f.ExcludeTags)
		},
	},
}

// ApplyFilters returns the products passing every active filter, in input order.
// The input slice is not modified.
func ApplyFilters(products []models.NormalizedProduct, f models.SearchFilters) []models.NormalizedProduct {
	out := make([]models.NormalizedProduct, len(products))
	copy(out, products)
	for _, pred := range predicates {
		if !pred.active(f) {
			continue
		}
		kept := out[:0]
		for i := range out {
			if pred.keep(&out[i], f) {
				kept = append(kept, out[i])
			}
		}
		out = kept
	}
	return out
}

// ActiveFilters returns the names of the filters f enables, in evaluation order.
func ActiveFilters(f models.SearchFilters) []string {
	var names []string
	for _, pred := range predicates {
		if pred.active(f) {
			names = append(names, pred.name)
		}
	}
	return names
}

// anyTagMatches reports whether any wanted tag is a case-insensitive substring of any product tag.
func anyTagMatches(productTags, wanted []string) bool {
	for _, w := range wanted {
		w = strings.ToLower(w)
		for _, tag := range productTags {
			if strings.Contains(strings.ToLower(tag), w) {
				return true
			}
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func positive(v *float64) bool {
	return v != nil && *v > 0
}
