package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hyperjump/erabu/internal/models"
)

// ErrInvalidProduct is wrapped by every validation failure.
var ErrInvalidProduct = errors.New("invalid product")

// Validate checks that raw is structurally valid for Normalize.
func Validate(raw models.RawProduct) error {
	if raw.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidProduct, raw.ID)
	}
	if strings.TrimSpace(raw.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidProduct)
	}
	if strings.TrimSpace(raw.Handle) == "" {
		return fmt.Errorf("%w: handle is required", ErrInvalidProduct)
	}
	if len(raw.Variants) == 0 {
		return fmt.Errorf("%w: at least one variant is required", ErrInvalidProduct)
	}
	for i, v := range raw.Variants {
		p, err := strconv.ParseFloat(strings.TrimSpace(v.Price), 64)
		if err != nil {
			return fmt.Errorf("%w: variants[%d].price %q is not a decimal", ErrInvalidProduct, i, v.Price)
		}
		if p < 0 || math.IsInf(p, 0) || math.IsNaN(p) {
			return fmt.Errorf("%w: variants[%d].price %q out of range", ErrInvalidProduct, i, v.Price)
		}
	}
	for i, img := range raw.Images {
		if strings.TrimSpace(img.Src) == "" {
			return fmt.Errorf("%w: images[%d].src is required", ErrInvalidProduct, i)
		}
	}
	return nil
}
