package ranking

import (
	"strings"

	"github.com/hyperjump/erabu/internal/models"
)

const (
	titleBoost = 2.0
	exactBoost = 1.5
)

// LexicalScorer is a term-overlap heuristic over doc_text. It is reported as
// "bm25" but uses neither IDF nor length normalization: for each query term,
// termFreq counts doc terms containing it as a substring, doubled when the
// title contains the term and multiplied by 1.5 when some doc term equals it.
type LexicalScorer struct{}

// Name implements Scorer.
func (LexicalScorer) Name() models.ScoreSource { return models.SourceBM25 }

// Score implements Scorer.
func (LexicalScorer) Score(query string, p *models.NormalizedProduct) float64 {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return 0
	}
	docTerms := strings.Fields(p.DocText)
	title := strings.ToLower(p.Title)

	score := 0.0
	for _, term := range terms {
		freq := 0
		exact := false
		for _, dt := range docTerms {
			if strings.Contains(dt, term) {
				freq++
				if dt == term {
					exact = true
				}
			}
		}
		contribution := float64(freq)
		if strings.Contains(title, term) {
			contribution *= titleBoost
		}
		if exact {
			contribution *= exactBoost
		}
		score += contribution
	}
	return score
}

// ScoreBM25 scores and ranks products with the lexical scorer.
func ScoreBM25(query string, products []models.NormalizedProduct) []models.ProductScore {
	return ScoreAll(LexicalScorer{}, query, products)
}
