// Package source reads catalog files into normalized products.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/normalize"
)

// Catalog file formats.
const (
	FormatAuto       = "auto"
	FormatRaw        = "raw"
	FormatNormalized = "normalized"
	FormatXLSX       = "xlsx"
)

// ErrUnknownFormat is returned by Open for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown catalog format")

// Open reads the catalog at path. Per-record problems are reported in the
// result's Rejected list; only unreadable or malformed files are errors.
func Open(path, format string) (*normalize.LoadResult, error) {
	format = DetectFormat(path, format)
	switch format {
	case FormatRaw:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		return normalize.ParseCatalog(data)
	case FormatNormalized:
		return openNormalized(path)
	case FormatXLSX:
		return openXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// DetectFormat resolves "auto" (or empty) by file extension: .xlsx is XLSX,
// anything else is a raw JSON export. Other format names are returned lowercased.
func DetectFormat(path, format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && format != FormatAuto {
		return format
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatRaw
}

// openNormalized reads products that were normalized earlier. They are trusted
// and skip validation.
func openNormalized(path string) (*normalize.LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var products []models.NormalizedProduct
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("catalog is not a JSON array of products: %w", err)
	}
	if products == nil {
		products = []models.NormalizedProduct{}
	}
	return &normalize.LoadResult{Products: products}, nil
}
