package ranking

import "github.com/hyperjump/erabu/internal/models"

// DefaultRRFK is the reciprocal rank fusion smoothing constant.
const DefaultRRFK = 60.0

// FuseRankings combines rankings with Reciprocal Rank Fusion: each id scores
// the sum of 1/(k+rank) over the rankings that contain it. Ids are collected
// in first-seen order and re-ranked with the stable descending sort.
// A k <= 0 uses DefaultRRFK.
func FuseRankings(k float64, rankings ...[]models.ProductScore) []models.ProductScore {
	if k <= 0 {
		k = DefaultRRFK
	}
	index := make(map[int64]int)
	var fused []models.ProductScore
	for _, ranking := range rankings {
		for _, s := range ranking {
			i, ok := index[s.ProductID]
			if !ok {
				i = len(fused)
				index[s.ProductID] = i
				fused = append(fused, models.ProductScore{ProductID: s.ProductID, Source: models.SourceFused})
			}
			fused[i].Score += 1.0 / (k + float64(s.Rank))
		}
	}
	return Rank(fused)
}
