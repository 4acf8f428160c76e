// Package selector orchestrates filtering, ranking and card formatting over the catalog.
package selector

import (
	"strings"

	"github.com/hyperjump/erabu/internal/catalog"
	"github.com/hyperjump/erabu/internal/config"
	"github.com/hyperjump/erabu/internal/filter"
	"github.com/hyperjump/erabu/internal/format"
	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/ranking"
	"go.uber.org/zap"
)

// debugTopN is the number of per-scorer ids reported in SelectionDebug.
const debugTopN = 5

const (
	reasonBest        = "Best match for your query"
	reasonRelevant    = "Highly relevant"
	reasonAlternative = "Good alternative"
	reasonSimilar     = "Similar product"
)

// Selector answers selection requests against the current catalog snapshot.
type Selector struct {
	store     *catalog.Store
	config    *config.SelectionConfig
	limits    filter.Limits
	ranker    *ranking.Ranker
	formatter *format.Formatter
	logger    *zap.Logger
}

// NewSelector creates a Selector. A nil cfg uses the default selection settings;
// a nil logger discards logs.
func NewSelector(store *catalog.Store, cfg *config.SelectionConfig, logger *zap.Logger) *Selector {
	if cfg == nil {
		cfg = config.DefaultSelectionConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		store:  store,
		config: cfg,
		limits: filter.Limits{Default: cfg.DefaultLimit, Min: filter.DefaultLimits.Min, Max: cfg.MaxLimit},
		ranker: ranking.NewRanker(cfg.RRFK),
		formatter: &format.Formatter{
			CurrencySymbol: cfg.CurrencySymbol,
			DescriptionMax: cfg.DescriptionMaxChars,
			MaxTags:        cfg.MaxCardTags,
		},
		logger: logger,
	}
}

// Formatter returns the card formatter used by the selector.
func (s *Selector) Formatter() *format.Formatter {
	return s.formatter
}

// Select filters the catalog and returns up to limit cards. With a query the
// candidates are ranked; without one they keep catalog order.
func (s *Selector) Select(req *models.SelectionRequest) *models.SelectionResult {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		query = strings.TrimSpace(req.Filters.Query)
	}
	filters := s.prepare(query, req)

	snap := s.store.Snapshot()
	candidates := filter.ApplyFilters(snap.All(), filters)
	limit := filters.ResultLimit(s.limits.Default)

	result := &models.SelectionResult{
		SearchQuery:    query,
		FiltersApplied: filters,
		TotalFound:     len(candidates),
		Debug:          models.SelectionDebug{FilteredCount: len(candidates)},
	}

	if query == "" {
		if len(candidates) > limit {
			candidates = candidates[:limit]
		}
		result.Products = make([]models.ProductCard, 0, len(candidates))
		for i := range candidates {
			result.Products = append(result.Products, s.formatter.Card(&candidates[i], ""))
		}
		s.logSelection("browse", query, result)
		return result
	}

	ranked := s.ranker.RankProducts(query, candidates)
	selected := snap.ByIDs(ranking.TopIDs(ranked.Scores, limit))
	result.Products = make([]models.ProductCard, 0, len(selected))
	for i := range selected {
		result.Products = append(result.Products, s.formatter.Card(&selected[i], reasonForPosition(i)))
	}
	result.Debug.BM25Top = ranking.TopIDs(ranked.Lexical, debugTopN)
	result.Debug.SemanticTop = ranking.TopIDs(ranked.Semantic, debugTopN)
	result.Debug.FusedOrder = ranking.TopIDs(ranked.Scores, -1)
	s.logSelection("ranked", query, result)
	return result
}

// prepare builds the effective filters for a request. The max_results cap
// only fills an unset limit; an explicit filters.limit is clamped to the
// validation range instead.
func (s *Selector) prepare(query string, req *models.SelectionRequest) models.SearchFilters {
	maxResults := s.config.MaxResults
	if req.MaxResults != nil && *req.MaxResults < maxResults {
		maxResults = *req.MaxResults
	}

	filters := req.Filters
	if filters.Limit == nil {
		filters.Limit = models.Int(maxResults)
	}
	filters.Query = query
	filters = s.limits.Validate(filters)
	if query != "" {
		filters = filter.MergeExtractedFilters(filters, filter.ExtractFiltersFromQuery(query))
	}
	return filters
}

func reasonForPosition(i int) string {
	switch {
	case i == 0:
		return reasonBest
	case i <= 2:
		return reasonRelevant
	default:
		return reasonAlternative
	}
}

func (s *Selector) logSelection(mode, query string, result *models.SelectionResult) {
	s.logger.Debug("selection",
		zap.String("mode", mode),
		zap.String("query", query),
		zap.Int("filtered", result.TotalFound),
		zap.Int("returned", len(result.Products)),
		zap.Strings("filters", filter.ActiveFilters(result.FiltersApplied)),
	)
}

// ProductsByIDs formats the products for ids in the order given. Unknown ids are skipped.
func (s *Selector) ProductsByIDs(ids []int64) []models.ProductCard {
	products := s.store.ByIDs(ids)
	cards := make([]models.ProductCard, 0, len(products))
	for i := range products {
		cards = append(cards, s.formatter.Card(&products[i], ""))
	}
	return cards
}
