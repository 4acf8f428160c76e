package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/normalize"
	"github.com/xuri/excelize/v2"
)

// Spreadsheet columns, matched case-insensitively against the header row.
const (
	colID               = "id"
	colHandle           = "handle"
	colTitle            = "title"
	colBodyHTML         = "body_html"
	colVendor           = "vendor"
	colProductType      = "product_type"
	colTags             = "tags"
	colVariantSKU       = "variant_sku"
	colVariantTitle     = "variant_title"
	colVariantPrice     = "variant_price"
	colVariantAvailable = "variant_available"
	colImageSrc         = "image_src"
	colImageAlt         = "image_alt"
)

// row reads cells by column name; missing columns and short rows read as "".
type row struct {
	cells   []string
	columns map[string]int
}

func (r row) get(name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// openXLSX reads the first sheet. Rows sharing an id are one product, each row
// adding a variant and optionally an image; product fields come from the first row.
func openXLSX(path string) (*normalize.LoadResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("open XLSX: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return normalize.LoadRaw(nil), nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns[colID]; !ok {
		return nil, fmt.Errorf("sheet %q has no %q column", sheets[0], colID)
	}

	return normalize.LoadRaw(groupRows(rows[1:], columns)), nil
}

func groupRows(rows [][]string, columns map[string]int) []models.RawProduct {
	var products []models.RawProduct
	index := make(map[int64]int)
	for _, cells := range rows {
		if isBlank(cells) {
			continue
		}
		r := row{cells: cells, columns: columns}
		id, err := strconv.ParseInt(r.get(colID), 10, 64)
		if err != nil || id <= 0 {
			// Kept as its own record so validation reports it.
			products = append(products, productFromRow(0, r))
			continue
		}
		i, ok := index[id]
		if !ok {
			index[id] = len(products)
			products = append(products, productFromRow(id, r))
			continue
		}
		addRowDetails(&products[i], r)
	}
	return products
}

func productFromRow(id int64, r row) models.RawProduct {
	p := models.RawProduct{
		ID:          id,
		Handle:      r.get(colHandle),
		Title:       r.get(colTitle),
		BodyHTML:    r.get(colBodyHTML),
		Vendor:      r.get(colVendor),
		ProductType: r.get(colProductType),
		Tags:        r.get(colTags),
	}
	addRowDetails(&p, r)
	return p
}

func addRowDetails(p *models.RawProduct, r row) {
	if price := r.get(colVariantPrice); price != "" || r.get(colVariantSKU) != "" {
		v := models.RawVariant{
			SKU:   r.get(colVariantSKU),
			Title: r.get(colVariantTitle),
			Price: price,
		}
		if b, err := strconv.ParseBool(r.get(colVariantAvailable)); err == nil {
			v.Available = &b
		}
		p.Variants = append(p.Variants, v)
	}
	if src := r.get(colImageSrc); src != "" && !hasImage(p.Images, src) {
		p.Images = append(p.Images, models.RawImage{Src: src, Alt: r.get(colImageAlt)})
	}
}

func hasImage(images []models.RawImage, src string) bool {
	for _, img := range images {
		if img.Src == src {
			return true
		}
	}
	return false
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
