// Package normalize converts raw storefront records into canonical catalog products.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hyperjump/erabu/internal/models"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Normalize converts a validated RawProduct into a NormalizedProduct.
// It is pure: the same input always yields the same output.
func Normalize(raw models.RawProduct) models.NormalizedProduct {
	tags := ParseTags(raw.Tags)
	description := StripHTML(raw.BodyHTML)
	priceMin, priceMax := PriceRange(raw.Variants)

	return models.NormalizedProduct{
		ID:              raw.ID,
		Title:           raw.Title,
		URL:             ProductURL(raw.Handle),
		Vendor:          raw.Vendor,
		ProductType:     raw.ProductType,
		Tags:            tags,
		Available:       len(raw.Variants) > 0,
		PriceMin:        priceMin,
		PriceMax:        priceMax,
		Images:          normalizeImages(raw.Images),
		DescriptionText: description,
		DocText:         DocText(raw.Title, description, raw.Vendor, raw.ProductType, tags),
		Variants:        normalizeVariants(raw.Variants),
	}
}

// ParseTags splits a comma-separated tag string, trimming entries and dropping empties.
func ParseTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// StripHTML removes tags, collapses whitespace runs to a single space and trims.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}
	text := htmlTagRegex.ReplaceAllString(html, "")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// PriceRange returns the min and max variant price. Unparseable prices count as 0;
// Validate rejects them before normalization.
func PriceRange(variants []models.RawVariant) (float64, float64) {
	if len(variants) == 0 {
		return 0, 0
	}
	lo := parsePrice(variants[0].Price)
	hi := lo
	for _, v := range variants[1:] {
		p := parsePrice(v.Price)
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	return lo, hi
}

// DocText builds the lowercase scoring text: title, description, vendor, type and
// space-joined tags, skipping empty segments.
func DocText(title, description, vendor, productType string, tags []string) string {
	segments := []string{title, description, vendor, productType, strings.Join(tags, " ")}
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// ProductURL returns the storefront path for a product handle.
func ProductURL(handle string) string {
	return "/products/" + handle
}

func parsePrice(s string) float64 {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return p
}

func normalizeImages(raw []models.RawImage) []models.Image {
	images := make([]models.Image, 0, len(raw))
	for _, img := range raw {
		images = append(images, models.Image{Src: img.Src, Alt: img.Alt})
	}
	return images
}

func normalizeVariants(raw []models.RawVariant) []models.Variant {
	if len(raw) == 0 {
		return nil
	}
	variants := make([]models.Variant, 0, len(raw))
	for _, v := range raw {
		variants = append(variants, models.Variant{
			SKU:       v.SKU,
			Price:     parsePrice(v.Price),
			Available: variantAvailable(v),
			Title:     v.Title,
		})
	}
	return variants
}

// variantAvailable prefers the explicit flag, then inventory, then assumes in stock.
func variantAvailable(v models.RawVariant) bool {
	if v.Available != nil {
		return *v.Available
	}
	if v.InventoryQuantity != nil {
		return *v.InventoryQuantity > 0
	}
	return true
}
