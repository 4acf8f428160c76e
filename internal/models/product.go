// Package models defines core data structures for products, filters, scores, and selection results.
package models

// RawProduct is a catalog record as exported by the storefront.
// Prices are decimal strings; tags are a single comma-separated string.
type RawProduct struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	BodyHTML    string       `json:"body_html"`
	Vendor      string       `json:"vendor"`
	ProductType string       `json:"product_type"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Handle      string       `json:"handle"`
	Tags        string       `json:"tags"`
	Variants    []RawVariant `json:"variants"`
	Images      []RawImage   `json:"images,omitempty"`
}

// RawVariant is one purchasable option of a RawProduct.
type RawVariant struct {
	ID                int64  `json:"id,omitempty"`
	Title             string `json:"title,omitempty"`
	SKU               string `json:"sku,omitempty"`
	Price             string `json:"price"`
	Available         *bool  `json:"available,omitempty"`
	InventoryQuantity *int   `json:"inventory_quantity,omitempty"`
}

// RawImage is an image attached to a RawProduct.
type RawImage struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// NormalizedProduct is the canonical product held by the catalog.
// DocText is the only substrate used by the scorers.
type NormalizedProduct struct {
	ID              int64             `json:"id"`
	Title           string            `json:"title"`
	URL             string            `json:"url"`
	Vendor          string            `json:"vendor"`
	ProductType     string            `json:"product_type"`
	Tags            []string          `json:"tags"`
	Available       bool              `json:"available"`
	PriceMin        float64           `json:"price_min"`
	PriceMax        float64           `json:"price_max"`
	Images          []Image           `json:"images"`
	DescriptionText string            `json:"description_text"`
	DocText         string            `json:"doc_text"`
	Variants        []Variant         `json:"variants,omitempty"`
	Attributes      map[string]string `json:"attributes,omitempty"`
	Embedding       []float32         `json:"embedding,omitempty"`
}

// Image is a normalized product image.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// Variant is a normalized product variant.
type Variant struct {
	SKU       string  `json:"sku,omitempty"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
	Title     string  `json:"title,omitempty"`
}
