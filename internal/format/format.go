// Package format renders normalized products into compact cards for prompt injection.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/pkg/utils"
)

const (
	// DefaultDescriptionMax is the card description budget in characters.
	DefaultDescriptionMax = 150
	// DefaultMaxTags is the number of tags kept on a card.
	DefaultMaxTags = 3
	// DefaultCurrencySymbol prefixes formatted prices.
	DefaultCurrencySymbol = "$"
	// DefaultProductType is shown when a product has no type.
	DefaultProductType = "Product"
)

// Formatter builds ProductCards under a size budget.
type Formatter struct {
	CurrencySymbol string
	DescriptionMax int
	MaxTags        int
}

// NewFormatter returns a Formatter with the default budget.
func NewFormatter() *Formatter {
	return &Formatter{
		CurrencySymbol: DefaultCurrencySymbol,
		DescriptionMax: DefaultDescriptionMax,
		MaxTags:        DefaultMaxTags,
	}
}

// Price formats the price range of p: a single value when min equals max,
// otherwise "min-max".
func (f *Formatter) Price(p *models.NormalizedProduct) string {
	if p.PriceMin == p.PriceMax {
		return fmt.Sprintf("%s%.2f", f.CurrencySymbol, p.PriceMin)
	}
	return fmt.Sprintf("%s%.2f-%s%.2f", f.CurrencySymbol, p.PriceMin, f.CurrencySymbol, p.PriceMax)
}

// Card renders p. An empty reason is omitted from the card.
func (f *Formatter) Card(p *models.NormalizedProduct, reason string) models.ProductCard {
	productType := p.ProductType
	if productType == "" {
		productType = DefaultProductType
	}
	tags := p.Tags
	if len(tags) > f.MaxTags {
		tags = tags[:f.MaxTags]
	}
	card := models.ProductCard{
		ID:          p.ID,
		Title:       p.Title,
		Price:       f.Price(p),
		Vendor:      p.Vendor,
		Type:        productType,
		Tags:        append([]string{}, tags...),
		Description: TruncateDescription(p.DescriptionText, f.DescriptionMax),
		URL:         p.URL,
		Reason:      reason,
	}
	if len(p.Images) > 0 {
		card.Image = p.Images[0].Src
	}
	return card
}

// FormatPrice formats p with the default currency symbol.
func FormatPrice(p *models.NormalizedProduct) string {
	return NewFormatter().Price(p)
}

// TruncateDescription keeps text of at most max characters as is; longer text
// becomes its first max-3 characters followed by "...".
func TruncateDescription(text string, max int) string {
	return utils.Truncate(text, max)
}

// WriteSummary writes cards as numbered plain-text blocks suitable for an LLM prompt.
func WriteSummary(w io.Writer, cards []models.ProductCard) error {
	var b strings.Builder
	for i, c := range cards {
		fmt.Fprintf(&b, "%d. %s (%s) %s\n", i+1, c.Title, c.Type, c.Price)
		if c.Vendor != "" {
			fmt.Fprintf(&b, "   Vendor: %s\n", c.Vendor)
		}
		if len(c.Tags) > 0 {
			fmt.Fprintf(&b, "   Tags: %s\n", strings.Join(c.Tags, ", "))
		}
		if c.Description != "" {
			fmt.Fprintf(&b, "   %s\n", c.Description)
		}
		fmt.Fprintf(&b, "   %s\n", c.URL)
		if c.Reason != "" {
			fmt.Fprintf(&b, "   Why: %s\n", c.Reason)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Summary returns the WriteSummary rendering of cards as a string.
func Summary(cards []models.ProductCard) string {
	var b strings.Builder
	_ = WriteSummary(&b, cards)
	return b.String()
}
