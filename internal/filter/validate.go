package filter

import "github.com/hyperjump/erabu/internal/models"

// Limits bounds the number of products a selection may return.
type Limits struct {
	Default int
	Min     int
	Max     int
}

// DefaultLimits are the standard selection bounds.
var DefaultLimits = Limits{Default: 10, Min: 1, Max: 20}

// ValidateFilters applies DefaultLimits.
func ValidateFilters(in models.SearchFilters) models.SearchFilters {
	return DefaultLimits.Validate(in)
}

// Validate fills defaults, clamps the limit and drops non-positive prices.
// The returned filters always have AvailableOnly and Limit set.
func (l Limits) Validate(in models.SearchFilters) models.SearchFilters {
	out := in
	if out.AvailableOnly == nil {
		out.AvailableOnly = models.Bool(true)
	} else {
		out.AvailableOnly = models.Bool(*in.AvailableOnly)
	}
	limit := l.Default
	if in.Limit != nil {
		limit = *in.Limit
	}
	if limit < l.Min {
		limit = l.Min
	}
	if limit > l.Max {
		limit = l.Max
	}
	out.Limit = models.Int(limit)
	out.MaxPrice = positiveOrNil(in.MaxPrice)
	out.MinPrice = positiveOrNil(in.MinPrice)
	return out
}

func positiveOrNil(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return models.Float(*v)
}
