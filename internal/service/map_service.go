package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"toiletmap-api/internal/metrics"
	"toiletmap-api/internal/models"
	"toiletmap-api/internal/reconcile"
	"toiletmap-api/internal/stream"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ToiletWatcher streams the ambient toilet set.
type ToiletWatcher interface {
	WatchToilets(ctx context.Context, limit int, interval time.Duration) <-chan []models.ToiletRecord
}

// ArchiveWatcher streams a user's archived toilets.
type ArchiveWatcher interface {
	WatchArchived(ctx context.Context, ownerID string, interval time.Duration) <-chan []models.ArchivedRecord
}

// Searcher produces search candidates for a query.
type Searcher interface {
	Search(ctx context.Context, query string, center models.Location) ([]models.SearchCandidate, error)
}

// MapStore is everything the map service reads from.
type MapStore interface {
	FetchAllToilets(ctx context.Context, limit int) ([]models.ToiletRecord, error)
	FetchArchived(ctx context.Context, ownerID string) ([]models.ArchivedRecord, error)
	GetHome(ctx context.Context, ownerID string) (*models.HomeRecord, error)
	ToiletWatcher
	ArchiveWatcher
}

// AnnotationQuery selects what goes into a reconciled annotation list.
type AnnotationQuery struct {
	UID            string
	User           *models.Location
	Query          string
	SortByDistance bool
}

// MapService builds the reconciled annotation list shown on the map.
type MapService struct {
	store        MapStore
	search       Searcher
	ambientLimit int
	pollInterval time.Duration
}

// NewMapService creates a new map service
func NewMapService(store MapStore, search Searcher, ambientLimit int, pollInterval time.Duration) *MapService {
	return &MapService{store: store, search: search, ambientLimit: ambientLimit, pollInterval: pollInterval}
}

func (s *MapService) searchCenter(q AnnotationQuery) (models.Location, bool) {
	if q.Query == "" || q.User == nil {
		return models.Location{}, false
	}
	return *q.User, true
}

func (s *MapService) home(ctx context.Context, uid string) (*models.HomeRecord, error) {
	if uid == "" {
		return nil, nil
	}
	h, err := s.store.GetHome(ctx, uid)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return h, err
}

// Annotations fetches every source concurrently and reconciles them once.
// A search is run only when both a query and a user location are given.
// Search failures degrade to no search hits.
func (s *MapService) Annotations(ctx context.Context, q AnnotationQuery) (*reconcile.Result, error) {
	if q.User != nil {
		if err := validateLocation(*q.User); err != nil {
			return nil, err
		}
	}

	var (
		ambient  []models.ToiletRecord
		archived []models.ArchivedRecord
		hits     []models.SearchCandidate
		home     *models.HomeRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ambient, err = s.store.FetchAllToilets(gctx, s.ambientLimit)
		if err != nil {
			return fmt.Errorf("service: failed to fetch toilets: %w", err)
		}
		return nil
	})
	if q.UID != "" {
		g.Go(func() error {
			var err error
			archived, err = s.store.FetchArchived(gctx, q.UID)
			if err != nil {
				return fmt.Errorf("service: failed to fetch archived toilets: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			home, err = s.home(gctx, q.UID)
			if err != nil {
				return fmt.Errorf("service: failed to fetch home toilet: %w", err)
			}
			return nil
		})
	}
	if center, ok := s.searchCenter(q); ok {
		g.Go(func() error {
			var err error
			hits, err = s.search.Search(gctx, q.Query, center)
			if err != nil {
				log.Warn().Err(err).Str("query", q.Query).Msg("service: search for annotations failed")
				hits = nil
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := reconcile.ReconcileWithHome(archived, ambient, hits, home, q.User)
	if q.SortByDistance {
		reconcile.SortByDistance(res.Annotations)
	}
	metrics.AnnotationsReturned.Observe(float64(len(res.Annotations)))
	return &res, nil
}

// Stream emits a reconciled list every time the ambient set, the user's
// archives or the search results change. It emits nothing until each source
// has produced once. The channel closes when ctx is done.
func (s *MapService) Stream(ctx context.Context, q AnnotationQuery) (<-chan reconcile.Result, error) {
	if q.User != nil {
		if err := validateLocation(*q.User); err != nil {
			return nil, err
		}
	}

	home, err := s.home(ctx, q.UID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch home toilet: %w", err)
	}

	ambientCh := s.store.WatchToilets(ctx, s.ambientLimit, s.pollInterval)

	var archivedCh <-chan []models.ArchivedRecord
	if q.UID != "" {
		archivedCh = s.store.WatchArchived(ctx, q.UID, s.pollInterval)
	} else {
		archivedCh = once[[]models.ArchivedRecord](nil)
	}

	searchCh := make(chan []models.SearchCandidate, 1)
	if center, ok := s.searchCenter(q); ok {
		go func() {
			defer close(searchCh)
			hits, err := s.search.Search(ctx, q.Query, center)
			if err != nil {
				log.Warn().Err(err).Str("query", q.Query).Msg("service: search for stream failed")
				hits = nil
			}
			searchCh <- hits
		}()
	} else {
		searchCh <- nil
		close(searchCh)
	}

	return stream.CombineLatest3(ctx, ambientCh, archivedCh, (<-chan []models.SearchCandidate)(searchCh),
		func(ambient []models.ToiletRecord, archived []models.ArchivedRecord, hits []models.SearchCandidate) reconcile.Result {
			res := reconcile.ReconcileWithHome(archived, ambient, hits, home, q.User)
			if q.SortByDistance {
				reconcile.SortByDistance(res.Annotations)
			}
			return res
		}), nil
}

func once[T any](v T) <-chan T {
	ch := make(chan T, 1)
	ch <- v
	close(ch)
	return ch
}
