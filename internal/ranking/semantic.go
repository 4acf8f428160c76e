package ranking

import (
	"strings"

	"github.com/hyperjump/erabu/internal/models"
)

const (
	typeBonus   = 0.5
	vendorBonus = 0.3
)

// SynonymCluster is a set of equivalent terms across languages.
type SynonymCluster struct {
	Terms  []string
	Weight float64
}

// DefaultClusters is the built-in synonym table.
var DefaultClusters = []SynonymCluster{
	{Terms: []string{"ladder", "escalera", "step"}, Weight: 1.0},
	{Terms: []string{"platform", "plataforma", "scaffold", "andamio"}, Weight: 1.0},
	{Terms: []string{"telescopic", "telescópica", "telescopica", "extension", "extensible"}, Weight: 0.9},
	{Terms: []string{"folding", "foldable", "plegable"}, Weight: 0.8},
	{Terms: []string{"aluminum", "aluminium", "aluminio"}, Weight: 0.8},
	{Terms: []string{"fiberglass", "fibreglass", "fibra de vidrio"}, Weight: 0.8},
	{Terms: []string{"safety", "safe", "seguridad", "seguro"}, Weight: 0.7},
	{Terms: []string{"tool", "herramienta"}, Weight: 0.6},
	{Terms: []string{"professional", "profesional", "industrial"}, Weight: 0.5},
	{Terms: []string{"portable", "lightweight", "ligera", "liviana"}, Weight: 0.5},
	{Terms: []string{"height", "altura", "tall", "alto"}, Weight: 0.4},
}

// SemanticScorer is a fixed-vocabulary heuristic, not an embedding similarity.
// Each cluster contributes weight times the number of its terms found in both
// the query and doc_text; matching product type and vendor add a bonus.
type SemanticScorer struct {
	clusters []SynonymCluster
}

// NewSemanticScorer returns a scorer over clusters, or DefaultClusters when nil.
func NewSemanticScorer(clusters []SynonymCluster) *SemanticScorer {
	if clusters == nil {
		clusters = DefaultClusters
	}
	return &SemanticScorer{clusters: clusters}
}

// Name implements Scorer.
func (s *SemanticScorer) Name() models.ScoreSource { return models.SourceSemantic }

// Score implements Scorer.
func (s *SemanticScorer) Score(query string, p *models.NormalizedProduct) float64 {
	q := strings.ToLower(query)
	doc := strings.ToLower(p.DocText)

	score := 0.0
	for _, c := range s.clusters {
		matches := 0
		for _, term := range c.Terms {
			if strings.Contains(q, term) && strings.Contains(doc, term) {
				matches++
			}
		}
		score += float64(matches) * c.Weight
	}
	if pt := strings.ToLower(p.ProductType); pt != "" && strings.Contains(q, pt) {
		score += typeBonus
	}
	if v := strings.ToLower(p.Vendor); v != "" && strings.Contains(q, v) {
		score += vendorBonus
	}
	return score
}

// ScoreSemanticSimilarity scores and ranks products with the default synonym table.
func ScoreSemanticSimilarity(query string, products []models.NormalizedProduct) []models.ProductScore {
	return ScoreAll(NewSemanticScorer(nil), query, products)
}
