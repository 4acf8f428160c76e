package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/hyperjump/erabu/internal/models"
)

// Rejection describes one catalog entry that did not enter the catalog.
type Rejection struct {
	Index  int    `json:"index"`
	ID     int64  `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// LoadResult is the outcome of a batch load.
// Products keep input order; Rejected only reports, it never changes what is accepted.
type LoadResult struct {
	Products []models.NormalizedProduct `json:"products"`
	Rejected []Rejection                `json:"rejected,omitempty"`
}

// LoadCatalog decodes, validates and normalizes each item. Items that fail are skipped.
func LoadCatalog(items []json.RawMessage) *LoadResult {
	res := &LoadResult{Products: make([]models.NormalizedProduct, 0, len(items))}
	seen := make(map[int64]struct{}, len(items))
	for i, item := range items {
		var raw models.RawProduct
		if err := json.Unmarshal(item, &raw); err != nil {
			res.reject(i, 0, fmt.Sprintf("decode: %v", err))
			continue
		}
		res.add(i, raw, seen)
	}
	return res
}

// LoadRaw validates and normalizes already decoded records.
func LoadRaw(raws []models.RawProduct) *LoadResult {
	res := &LoadResult{Products: make([]models.NormalizedProduct, 0, len(raws))}
	seen := make(map[int64]struct{}, len(raws))
	for i, raw := range raws {
		res.add(i, raw, seen)
	}
	return res
}

// ParseCatalog decodes a JSON array of raw records and loads it.
// Only a malformed top-level document is an error.
func ParseCatalog(data []byte) (*LoadResult, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("catalog is not a JSON array: %w", err)
	}
	return LoadCatalog(items), nil
}

func (r *LoadResult) add(i int, raw models.RawProduct, seen map[int64]struct{}) {
	if err := Validate(raw); err != nil {
		r.reject(i, raw.ID, err.Error())
		return
	}
	if _, dup := seen[raw.ID]; dup {
		r.reject(i, raw.ID, "duplicate id")
		return
	}
	seen[raw.ID] = struct{}{}
	r.Products = append(r.Products, Normalize(raw))
}

func (r *LoadResult) reject(i int, id int64, reason string) {
	r.Rejected = append(r.Rejected, Rejection{Index: i, ID: id, Reason: reason})
}
