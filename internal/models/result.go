package models

import (
	"encoding/json"
	"math"
)

// ScoreSource identifies the scorer that produced a ProductScore.
type ScoreSource string

const (
	// SourceBM25 is the lexical term-overlap scorer.
	SourceBM25 ScoreSource = "bm25"
	// SourceSemantic is the synonym-cluster scorer.
	SourceSemantic ScoreSource = "semantic"
	// SourceFused is the reciprocal rank fusion of the other sources.
	SourceFused ScoreSource = "fused"
)

// ProductScore is the score and 1-based rank of one product under one source.
type ProductScore struct {
	ProductID int64       `json:"product_id"`
	Score     float64     `json:"score"`
	Rank      int         `json:"rank"`
	Source    ScoreSource `json:"source"`
}

// ProductCard is the compact display form of a product.
type ProductCard struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Price       string   `json:"price"`
	Vendor      string   `json:"vendor"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Image       string   `json:"image,omitempty"`
	Reason      string   `json:"reason,omitempty"`
}

// SelectionDebug describes how a selection was produced.
// Only FilteredCount is set in browsing mode.
type SelectionDebug struct {
	BM25Top       []int64 `json:"bm25_top,omitempty"`
	SemanticTop   []int64 `json:"semantic_top,omitempty"`
	FusedOrder    []int64 `json:"fused_order,omitempty"`
	FilteredCount int     `json:"filtered_count"`
}

// SelectionResult is the response to a SelectionRequest.
type SelectionResult struct {
	Products       []ProductCard  `json:"products"`
	TotalFound     int            `json:"total_found"`
	SearchQuery    string         `json:"search_query,omitempty"`
	FiltersApplied SearchFilters  `json:"filters_applied"`
	Debug          SelectionDebug `json:"debug"`
}

// PriceRange is a closed price interval. An empty catalog yields {+Inf, -Inf}.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MarshalJSON encodes infinite bounds as null.
func (r PriceRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	}{Min: finite(r.Min), Max: finite(r.Max)})
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// CatalogStats summarizes the loaded catalog.
type CatalogStats struct {
	TotalProducts int        `json:"total_products"`
	Vendors       []string   `json:"vendors"`
	ProductTypes  []string   `json:"product_types"`
	PriceRange    PriceRange `json:"price_range"`
}
