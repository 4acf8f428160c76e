package filter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hyperjump/erabu/internal/models"
)

var (
	maxPriceRegex     = regexp.MustCompile(`(?:under|below|less than|<)\s*(\d+)`)
	minPriceRegex     = regexp.MustCompile(`(?:over|above|more than|>)\s*(\d+)`)
	availabilityRegex = regexp.MustCompile(`\b(?:available|in stock)\b`)
)

// productTypeVocabulary lists product-type keywords in the supported languages.
// It is scanned in order and the first keyword found wins, so longer phrases
// come before the words they contain. The matched keyword itself becomes the
// type filter, which ApplyFilters compares as a case-insensitive substring.
var productTypeVocabulary = []string{
	"step stool",
	"taburete",
	"escalera",
	"escada",
	"échelle",
	"echelle",
	"leiter",
	"ladder",
	"plataforma",
	"plateforme",
	"platform",
	"andamio",
	"scaffold",
	"herramienta",
	"ferramenta",
	"outil",
	"werkzeug",
	"tool",
	"accesorio",
	"accessory",
}

// Extracted holds filters inferred from free text. Nil and empty fields were not found.
type Extracted struct {
	MaxPrice      *float64 `json:"max_price,omitempty"`
	MinPrice      *float64 `json:"min_price,omitempty"`
	ProductType   string   `json:"product_type,omitempty"`
	AvailableOnly *bool    `json:"available_only,omitempty"`
}

// ExtractFiltersFromQuery infers price bounds, product type and availability from query.
// It never fails; fields without a match stay unset.
func ExtractFiltersFromQuery(query string) Extracted {
	var ex Extracted
	q := strings.ToLower(query)
	if q == "" {
		return ex
	}
	ex.MaxPrice = matchPrice(maxPriceRegex, q)
	ex.MinPrice = matchPrice(minPriceRegex, q)
	for _, keyword := range productTypeVocabulary {
		if strings.Contains(q, keyword) {
			ex.ProductType = keyword
			break
		}
	}
	if availabilityRegex.MatchString(q) {
		ex.AvailableOnly = models.Bool(true)
	}
	return ex
}

// MergeExtractedFilters fills fields of explicit that are absent with extracted values.
// Explicit values always win.
func MergeExtractedFilters(explicit models.SearchFilters, ex Extracted) models.SearchFilters {
	merged := explicit
	if merged.MaxPrice == nil && ex.MaxPrice != nil {
		merged.MaxPrice = models.Float(*ex.MaxPrice)
	}
	if merged.MinPrice == nil && ex.MinPrice != nil {
		merged.MinPrice = models.Float(*ex.MinPrice)
	}
	if merged.ProductType == "" && ex.ProductType != "" {
		merged.ProductType = ex.ProductType
	}
	if merged.AvailableOnly == nil && ex.AvailableOnly != nil {
		merged.AvailableOnly = models.Bool(*ex.AvailableOnly)
	}
	return merged
}

func matchPrice(re *regexp.Regexp, q string) *float64 {
	m := re.FindStringSubmatch(q)
	if len(m) < 2 {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}
