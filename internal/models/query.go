package models

// SearchFilters holds the structural constraints of a selection request.
// Nil pointers and empty strings mean the filter is absent. After validation
// AvailableOnly and Limit are always set.
type SearchFilters struct {
	Query         string   `json:"query,omitempty"`
	MaxPrice      *float64 `json:"max_price,omitempty"`
	MinPrice      *float64 `json:"min_price,omitempty"`
	Vendor        string   `json:"vendor,omitempty"`
	ProductType   string   `json:"product_type,omitempty"`
	IncludeTags   []string `json:"include_tags,omitempty"`
	ExcludeTags   []string `json:"exclude_tags,omitempty"`
	AvailableOnly *bool    `json:"available_only,omitempty"`
	Limit         *int     `json:"limit,omitempty"`
}

// AvailabilityRequired reports whether only available products should pass.
func (f SearchFilters) AvailabilityRequired() bool {
	return f.AvailableOnly != nil && *f.AvailableOnly
}

// ResultLimit returns the limit, or fallback when unset.
func (f SearchFilters) ResultLimit(fallback int) int {
	if f.Limit == nil {
		return fallback
	}
	return *f.Limit
}

// SelectionRequest is a request to select products from the catalog.
// An empty Query selects in browsing mode.
type SelectionRequest struct {
	Query      string        `json:"query,omitempty"`
	Filters    SearchFilters `json:"filters,omitempty"`
	MaxResults *int          `json:"max_results,omitempty"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
