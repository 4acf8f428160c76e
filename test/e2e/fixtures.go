package e2e

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/hyperjump/erabu/internal/models"
	"github.com/xuri/excelize/v2"
)

// xlsxHeader is the column layout read by the XLSX catalog source.
var xlsxHeader = []interface{}{
	"id", "handle", "title", "body_html", "vendor", "product_type", "tags",
	"variant_sku", "variant_title", "variant_price", "variant_available", "image_src", "image_alt",
}

// WriteCatalogJSON writes products as a raw JSON export to path.
func WriteCatalogJSON(path string, products []models.RawProduct) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// WriteCatalogXLSX writes products to the first sheet of a workbook at path,
// one row per variant. Product columns repeat on every row.
func WriteCatalogXLSX(path string, products []models.RawProduct) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	rowNum := 1
	writeRow := func(values []interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		rowNum++
		return f.SetSheetRow(sheet, cell, &values)
	}

	if err := writeRow(xlsxHeader); err != nil {
		return err
	}
	for _, p := range products {
		for _, v := range p.Variants {
			available := ""
			if v.Available != nil {
				available = strconv.FormatBool(*v.Available)
			}
			var imageSrc, imageAlt string
			if len(p.Images) > 0 {
				imageSrc, imageAlt = p.Images[0].Src, p.Images[0].Alt
			}
			row := []interface{}{
				strconv.FormatInt(p.ID, 10), p.Handle, p.Title, p.BodyHTML, p.Vendor, p.ProductType, p.Tags,
				v.SKU, v.Title, v.Price, available, imageSrc, imageAlt,
			}
			if err := writeRow(row); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}
