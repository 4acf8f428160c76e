package ranking

import "github.com/hyperjump/erabu/internal/models"

// AlgorithmHybrid names the lexical + semantic + RRF pipeline.
const AlgorithmHybrid = "hybrid_bm25_semantic_rrf"

// RankingResult is the outcome of RankProducts.
type RankingResult struct {
	// Scores is the fused ranking, best first.
	Scores []models.ProductScore `json:"scores"`
	// Lexical and Semantic are the per-scorer rankings that were fused.
	Lexical         []models.ProductScore `json:"lexical"`
	Semantic        []models.ProductScore `json:"semantic"`
	TotalCandidates int                   `json:"total_candidates"`
	AlgorithmUsed   string                `json:"algorithm_used"`
}

// Ranker runs both scorers and fuses their rankings.
type Ranker struct {
	lexical  Scorer
	semantic Scorer
	k        float64
}

// NewRanker creates a Ranker with the default scorers and RRF constant k.
func NewRanker(k float64) *Ranker {
	if k <= 0 {
		k = DefaultRRFK
	}
	return &Ranker{
		lexical:  LexicalScorer{},
		semantic: NewSemanticScorer(nil),
		k:        k,
	}
}

// WithSemanticScorer replaces the semantic scorer.
func (r *Ranker) WithSemanticScorer(s Scorer) *Ranker {
	r.semantic = s
	return r
}

// RankProducts scores products against query with both scorers and fuses the rankings.
func (r *Ranker) RankProducts(query string, products []models.NormalizedProduct) *RankingResult {
	lexical := ScoreAll(r.lexical, query, products)
	semantic := ScoreAll(r.semantic, query, products)
	return &RankingResult{
		Scores:          FuseRankings(r.k, lexical, semantic),
		Lexical:         lexical,
		Semantic:        semantic,
		TotalCandidates: len(products),
		AlgorithmUsed:   AlgorithmHybrid,
	}
}

// RankProducts ranks with a default Ranker.
func RankProducts(query string, products []models.NormalizedProduct) *RankingResult {
	return NewRanker(DefaultRRFK).RankProducts(query, products)
}
