// Package cli provides CLI output helpers for erabu.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/hyperjump/erabu/internal/filter"
	"github.com/hyperjump/erabu/internal/format"
	"github.com/hyperjump/erabu/internal/models"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteSelection writes a selection result to w in the given format.
// Unknown formats fall back to text.
func WriteSelection(w io.Writer, result *models.SelectionResult, f OutputFormat) error {
	if f == OutputJSON {
		return writeJSON(w, result)
	}
	if result.SearchQuery != "" {
		fmt.Fprintf(w, "\nFound %d products for %q, showing %d\n", result.TotalFound, result.SearchQuery, len(result.Products))
	} else {
		fmt.Fprintf(w, "\nBrowsing %d products, showing %d\n", result.TotalFound, len(result.Products))
	}
	if active := filter.ActiveFilters(result.FiltersApplied); len(active) > 0 {
		fmt.Fprintf(w, "Filters: %s\n", strings.Join(active, ", "))
	}
	fmt.Fprintln(w)
	return format.WriteSummary(w, result.Products)
}

// WriteCards writes a list of cards, such as similar products.
func WriteCards(w io.Writer, cards []models.ProductCard, f OutputFormat) error {
	if f == OutputJSON {
		return writeJSON(w, map[string]interface{}{"products": cards})
	}
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, "No products found.")
		return err
	}
	return format.WriteSummary(w, cards)
}

// WriteStats writes catalog statistics.
func WriteStats(w io.Writer, stats models.CatalogStats, f OutputFormat) error {
	if f == OutputJSON {
		return writeJSON(w, stats)
	}
	fmt.Fprintf(w, "Products:      %d\n", stats.TotalProducts)
	fmt.Fprintf(w, "Vendors:       %s\n", strings.Join(stats.Vendors, ", "))
	fmt.Fprintf(w, "Product types: %s\n", strings.Join(stats.ProductTypes, ", "))
	if math.IsInf(stats.PriceRange.Min, 0) || math.IsInf(stats.PriceRange.Max, 0) {
		_, err := fmt.Fprintln(w, "Price range:   n/a")
		return err
	}
	_, err := fmt.Fprintf(w, "Price range:   %.2f - %.2f\n", stats.PriceRange.Min, stats.PriceRange.Max)
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
