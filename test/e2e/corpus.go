// Package e2e provides end-to-end tests with a generated catalog and multiple queries.
package e2e

import (
	"fmt"
	"strings"

	"github.com/hyperjump/erabu/internal/models"
)

// QueryTestCase defines a query and the product that must lead the lexical ranking
// and appear in the selection.
type QueryTestCase struct {
	Query       string
	ExpectedID  int64
	Description string
}

// Corpus holds raw products and query test cases for E2E tests.
type Corpus struct {
	Products     []models.RawProduct
	TestCases    []QueryTestCase
	TotalItems   int
	TotalQueries int
}

var (
	corpusTypes     = []string{"Ladder", "Platform", "Scaffold", "Tool", "Accessory"}
	corpusVendors   = []string{"Acme", "ProClimb", "Werner", "Little Giant"}
	corpusMaterials = []string{"aluminum", "fiberglass", "steel"}
	corpusFeatures  = []string{"folding", "telescopic", "portable", "heavy duty"}
)

// BuildCorpus returns a catalog of n products. Each product title carries a
// unique signature token so queries can assert the correct product is returned.
func BuildCorpus(n int) *Corpus {
	products := make([]models.RawProduct, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, buildProduct(i))
	}
	cases := buildQueryTestCases(products)
	return &Corpus{
		Products:     products,
		TestCases:    cases,
		TotalItems:   len(products),
		TotalQueries: len(cases),
	}
}

// Signature is the unique token in the title of product i.
func Signature(i int) string {
	return fmt.Sprintf("zx%03d", i)
}

func buildProduct(i int) models.RawProduct {
	productType := corpusTypes[i%len(corpusTypes)]
	material := corpusMaterials[i%len(corpusMaterials)]
	sig := Signature(i)
	price := 40 + float64((i*17)%300)

	variants := []models.RawVariant{{SKU: strings.ToUpper(sig) + "-A", Title: "Standard", Price: fmt.Sprintf("%.2f", price)}}
	if i%3 == 0 {
		variants = append(variants, models.RawVariant{SKU: strings.ToUpper(sig) + "-B", Title: "Large", Price: fmt.Sprintf("%.2f", price+25)})
	}
	return models.RawProduct{
		ID:          int64(1000 + i),
		Title:       fmt.Sprintf("%s %s %s", strings.ToUpper(material[:1])+material[1:], productType, strings.ToUpper(sig)),
		Handle:      "product-" + sig,
		BodyHTML:    fmt.Sprintf("<p>Signature item <b>%s</b> for work at height.</p>", strings.ToUpper(sig)),
		Vendor:      corpusVendors[i%len(corpusVendors)],
		ProductType: productType,
		Tags:        material + ", " + corpusFeatures[i%len(corpusFeatures)],
		Variants:    variants,
		Images:      []models.RawImage{{Src: fmt.Sprintf("https://cdn.example.com/%s.jpg", sig)}},
	}
}

// buildQueryTestCases queries a spread of products by type word and signature.
func buildQueryTestCases(products []models.RawProduct) []QueryTestCase {
	var cases []QueryTestCase
	for i := 3; i <= len(products); i += 7 {
		p := products[i-1]
		cases = append(cases, QueryTestCase{
			Query:       strings.ToLower(p.ProductType) + " " + Signature(i),
			ExpectedID:  p.ID,
			Description: fmt.Sprintf("type word plus signature of %q", p.Title),
		})
	}
	return cases
}
