package filter

import (
	"reflect"
	"testing"

	"github.com/hyperjump/erabu/internal/models"
)

func catalog() []models.NormalizedProduct {
	return []models.NormalizedProduct{
		{ID: 1, Vendor: "Acme Tools", ProductType: "Ladder", Tags: []string{"ladder", "safety"}, Available: true, PriceMin: 100, PriceMax: 200},
		{ID: 2, Vendor: "Zeta", ProductType: "Platform", Tags: []string{"Aluminum"}, Available: true, PriceMin: 50, PriceMax: 50},
		{ID: 3, Vendor: "acme", ProductType: "Step Stool", Tags: nil, Available: false, PriceMin: 20, PriceMax: 30},
		{ID: 4, Vendor: "Other", ProductType: "", Tags: []string{"pro", "SAFETY-first"}, Available: true, PriceMin: 300, PriceMax: 400},
	}
}

func ids(products []models.NormalizedProduct) []int64 {
	out := []int64{}
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters models.SearchFilters
		want    []int64
	}{
		{"no filters", models.SearchFilters{}, []int64{1, 2, 3, 4}},
		{"available only", models.SearchFilters{AvailableOnly: models.Bool(true)}, []int64{1, 2, 4}},
		{"available false keeps all", models.SearchFilters{AvailableOnly: models.Bool(false)}, []int64{1, 2, 3, 4}},
		{"min price checks floor", models.SearchFilters{MinPrice: models.Float(100)}, []int64{1, 4}},
		{"max price checks ceiling", models.SearchFilters{MaxPrice: models.Float(150)}, []int64{2, 3}},
		{"max price includes range", models.SearchFilters{MaxPrice: models.Float(250)}, []int64{1, 2, 3}},
		{"non-positive price ignored", models.SearchFilters{MaxPrice: models.Float(0)}, []int64{1, 2, 3, 4}},
		{"vendor case-insensitive substring", models.SearchFilters{Vendor: "ACME"}, []int64{1, 3}},
		{"product type substring", models.SearchFilters{ProductType: "stool"}, []int64{3}},
		{"include tags any substring", models.SearchFilters{IncludeTags: []string{"safe"}}, []int64{1, 4}},
		{"include tags multiple", models.SearchFilters{IncludeTags: []string{"zzz", "alu"}}, []int64{2}},
		{"exclude tags", models.SearchFilters{ExcludeTags: []string{"safe"}}, []int64{2, 3}},
		{"combined", models.SearchFilters{AvailableOnly: models.Bool(true), Vendor: "acme", MaxPrice: models.Float(500)}, []int64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(ApplyFilters(catalog(), tt.filters))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ApplyFilters() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyFilters_TagScenario(t *testing.T) {
	p := []models.NormalizedProduct{{ID: 9, Tags: []string{"ladder", "safety"}}}
	if len(ApplyFilters(p, models.SearchFilters{IncludeTags: []string{"safe"}})) != 1 {
		t.Error("include_tags=[safe] should keep a product tagged safety")
	}
	if len(ApplyFilters(p, models.SearchFilters{ExcludeTags: []string{"safe"}})) != 0 {
		t.Error("exclude_tags=[safe] should drop a product tagged safety")
	}
}

func TestApplyFilters_Commute(t *testing.T) {
	a := models.SearchFilters{AvailableOnly: models.Bool(true)}
	b := models.SearchFilters{IncludeTags: []string{"safe"}, MaxPrice: models.Float(350)}
	both := models.SearchFilters{AvailableOnly: a.AvailableOnly, IncludeTags: b.IncludeTags, MaxPrice: b.MaxPrice}

	together := ids(ApplyFilters(catalog(), both))
	ab := ids(ApplyFilters(ApplyFilters(catalog(), a), b))
	ba := ids(ApplyFilters(ApplyFilters(catalog(), b), a))
	if !reflect.DeepEqual(together, ab) || !reflect.DeepEqual(ab, ba) {
		t.Errorf("filters do not commute: together=%v a,b=%v b,a=%v", together, ab, ba)
	}
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	in := catalog()
	_ = ApplyFilters(in, models.SearchFilters{AvailableOnly: models.Bool(true)})
	if !reflect.DeepEqual(ids(in), []int64{1, 2, 3, 4}) {
		t.Errorf("input modified: %v", ids(in))
	}
}

func TestActiveFilters(t *testing.T) {
	got := ActiveFilters(models.SearchFilters{AvailableOnly: models.Bool(true), ExcludeTags: []string{"x"}, Vendor: "v"})
	want := []string{"available_only", "vendor", "exclude_tags"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ActiveFilters() = %v, want %v", got, want)
	}
}

func TestValidateFilters(t *testing.T) {
	tests := []struct {
		name      string
		in        models.SearchFilters
		wantLimit int
	}{
		{"default", models.SearchFilters{}, 10},
		{"clamp high", models.SearchFilters{Limit: models.Int(999)}, 20},
		{"clamp zero", models.SearchFilters{Limit: models.Int(0)}, 1},
		{"clamp negative", models.SearchFilters{Limit: models.Int(-3)}, 1},
		{"in range", models.SearchFilters{Limit: models.Int(5)}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateFilters(tt.in)
			if got.Limit == nil || *got.Limit != tt.wantLimit {
				t.Errorf("limit = %v, want %d", got.Limit, tt.wantLimit)
			}
			if got.AvailableOnly == nil || !*got.AvailableOnly {
				t.Error("available_only should default to true")
			}
		})
	}
}

func TestValidateFilters_Prices(t *testing.T) {
	got := ValidateFilters(models.SearchFilters{
		MaxPrice:      models.Float(-1),
		MinPrice:      models.Float(25),
		AvailableOnly: models.Bool(false),
	})
	if got.MaxPrice != nil {
		t.Errorf("non-positive max_price should be dropped, got %v", *got.MaxPrice)
	}
	if got.MinPrice == nil || *got.MinPrice != 25 {
		t.Errorf("min_price = %v", got.MinPrice)
	}
	if *got.AvailableOnly {
		t.Error("explicit available_only=false must be kept")
	}
}
