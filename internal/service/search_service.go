package service

import (
	"context"
	"fmt"
	"strings"

	"toiletmap-api/internal/geo"
	"toiletmap-api/internal/metrics"
	"toiletmap-api/internal/models"
	"toiletmap-api/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// PlaceSearcher finds points of interest from an external provider.
type PlaceSearcher interface {
	SearchPlaces(ctx context.Context, query string, center models.Location, radius float64) ([]models.SearchCandidate, error)
}

// IndexSearcher finds stored toilets by text.
type IndexSearcher interface {
	SearchToiletsByText(ctx context.Context, query string, center models.Location, limit int) ([]models.SearchCandidate, error)
}

// SearchCache caches place search results.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]models.SearchCandidate, bool, error)
	Set(ctx context.Context, key string, hits []models.SearchCandidate) error
}

// SearchService merges the index and place searches into one candidate list.
type SearchService struct {
	index  IndexSearcher
	places PlaceSearcher
	cache  SearchCache
	radius float64
	limit  int
}

// NewSearchService creates a search service. places and cache may be nil.
func NewSearchService(index IndexSearcher, places PlaceSearcher, cache SearchCache, radius float64, limit int) *SearchService {
	return &SearchService{index: index, places: places, cache: cache, radius: radius, limit: limit}
}

// Search runs both searches concurrently and returns index hits followed by
// place hits, keeping the first hit at each rounded location. A failing
// source is logged and treated as empty; an error is returned only when
// both fail.
func (s *SearchService) Search(ctx context.Context, query string, center models.Location) ([]models.SearchCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if err := validateLocation(center); err != nil {
		return nil, err
	}

	var indexHits, placeHits []models.SearchCandidate
	var indexErr, placeErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		indexHits, indexErr = s.index.SearchToiletsByText(gctx, query, center, s.limit)
		return nil
	})
	if s.places != nil {
		g.Go(func() error {
			placeHits, placeErr = s.searchPlaces(gctx, query, center)
			return nil
		})
	}
	_ = g.Wait()

	if indexErr != nil {
		log.Warn().Err(indexErr).Str("query", query).Msg("service: index search failed")
	}
	if placeErr != nil {
		log.Warn().Err(placeErr).Str("query", query).Msg("service: place search failed")
	}
	if indexErr != nil && (placeErr != nil || s.places == nil) {
		return nil, fmt.Errorf("service: search failed: %w", indexErr)
	}

	return mergeCandidates(indexHits, placeHits), nil
}

func (s *SearchService) searchPlaces(ctx context.Context, query string, center models.Location) ([]models.SearchCandidate, error) {
	key := repository.SearchCacheKey(query, center, s.radius)
	if s.cache != nil {
		hits, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("service: search cache read failed")
		case ok:
			metrics.SearchCacheHitsTotal.Inc()
			return hits, nil
		default:
			metrics.SearchCacheMissesTotal.Inc()
		}
	}

	hits, err := s.places.SearchPlaces(ctx, query, center, s.radius)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, hits); err != nil {
			log.Warn().Err(err).Msg("service: search cache write failed")
		}
	}
	return hits, nil
}

func mergeCandidates(groups ...[]models.SearchCandidate) []models.SearchCandidate {
	seen := map[geo.Key]struct{}{}
	out := []models.SearchCandidate{}
	for _, g := range groups {
		for _, c := range g {
			k := geo.KeyOf(c.Location())
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
