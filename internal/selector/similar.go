package selector

import (
	"math"
	"sort"
	"strings"

	"github.com/hyperjump/erabu/internal/models"
)

const (
	typeMatchWeight   = 3.0
	vendorMatchWeight = 2.0
	sharedTagWeight   = 1.0
	priceBonus        = 1.0
	// priceGapThreshold is the relative price difference under which priceBonus applies.
	priceGapThreshold = 0.5
)

type similarity struct {
	index int
	score float64
}

// SimilarProducts returns up to limit products most similar to the product
// with id, excluding it. limit <= 0 uses the configured similar limit. An
// unknown id yields an empty list.
func (s *Selector) SimilarProducts(id int64, limit int) []models.ProductCard {
	if limit <= 0 {
		limit = s.config.SimilarLimit
	}
	snap := s.store.Snapshot()
	ref, ok := snap.ByID(id)
	if !ok {
		return []models.ProductCard{}
	}
	refTags := tagSet(ref.Tags)

	products := snap.All()
	var scored []similarity
	for i := range products {
		if products[i].ID == ref.ID {
			continue
		}
		if score := similarityScore(&ref, refTags, &products[i]); score > 0 {
			scored = append(scored, similarity{index: i, score: score})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	cards := make([]models.ProductCard, 0, len(scored))
	for _, sc := range scored {
		cards = append(cards, s.formatter.Card(&products[sc.index], reasonSimilar))
	}
	return cards
}

func similarityScore(ref *models.NormalizedProduct, refTags map[string]struct{}, p *models.NormalizedProduct) float64 {
	var score float64
	if ref.ProductType != "" && strings.EqualFold(ref.ProductType, p.ProductType) {
		score += typeMatchWeight
	}
	if ref.Vendor != "" && strings.EqualFold(ref.Vendor, p.Vendor) {
		score += vendorMatchWeight
	}
	for tag := range tagSet(p.Tags) {
		if _, ok := refTags[tag]; ok {
			score += sharedTagWeight
		}
	}
	if priceGap(ref.PriceMin, p.PriceMin) < priceGapThreshold {
		score += priceBonus
	}
	return score
}

// priceGap is |a-b| relative to the larger price; two zero prices have no gap.
func priceGap(a, b float64) float64 {
	hi := math.Max(a, b)
	if hi <= 0 {
		return 0
	}
	return math.Abs(a-b) / hi
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}
