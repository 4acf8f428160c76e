// Package ranking scores catalog products against a query and fuses the scorer rankings.
package ranking

import (
	"sort"

	"github.com/hyperjump/erabu/internal/models"
)

// Scorer scores one product against a query.
type Scorer interface {
	// Score returns the relevance of p to query; higher is better.
	Score(query string, p *models.NormalizedProduct) float64
	// Name identifies the scorer in ProductScore.Source.
	Name() models.ScoreSource
}

// ScoreAll scores every product with s and ranks the result.
func ScoreAll(s Scorer, query string, products []models.NormalizedProduct) []models.ProductScore {
	scores := make([]models.ProductScore, len(products))
	for i := range products {
		scores[i] = models.ProductScore{
			ProductID: products[i].ID,
			Score:     s.Score(query, &products[i]),
			Source:    s.Name(),
		}
	}
	return Rank(scores)
}

// Rank sorts scores descending and assigns 1-based ranks. The sort is stable,
// so equal scores keep their input order. scores is sorted in place and returned.
func Rank(scores []models.ProductScore) []models.ProductScore {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}

// TopIDs returns the product ids of the first n scores.
func TopIDs(scores []models.ProductScore, n int) []int64 {
	if n < 0 || n > len(scores) {
		n = len(scores)
	}
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		ids[i] = scores[i].ProductID
	}
	return ids
}
