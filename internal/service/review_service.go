package service

import (
	"context"
	"errors"
	"fmt"

	"toiletmap-api/internal/models"
	"toiletmap-api/internal/repository"
	"toiletmap-api/internal/review"
)

// ReviewStore reads and writes reviews of a toilet.
type ReviewStore interface {
	FetchReviews(ctx context.Context, toiletID string) ([]models.Review, error)
	CreateReview(ctx context.Context, rv models.Review) error
	FetchReviewsBySender(ctx context.Context, uid string) ([]models.Review, error)
	UpdateReview(ctx context.Context, rv models.Review) error
}

// ToiletResolver maps places to toilet ids.
type ToiletResolver interface {
	Resolve(ctx context.Context, loc models.Location) (id string, isNew bool, err error)
	EnsureToilet(ctx context.Context, uid string, rec models.ToiletRecord) (string, error)
}

// ReviewService lists, scores and records reviews.
type ReviewService struct {
	reviews ReviewStore
	toilets ToiletResolver
}

// NewReviewService creates a new review service
func NewReviewService(reviews ReviewStore, toilets ToiletResolver) *ReviewService {
	return &ReviewService{reviews: reviews, toilets: toilets}
}

// List returns the reviews of the toilet at loc. An unknown place has no
// reviews; reading never creates a toilet.
func (s *ReviewService) List(ctx context.Context, loc models.Location) ([]models.Review, error) {
	id, isNew, err := s.toilets.Resolve(ctx, loc)
	if err != nil {
		return nil, err
	}
	if isNew {
		return []models.Review{}, nil
	}

	reviews, err := s.reviews.FetchReviews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

// Score aggregates the reviews of the toilet at loc for uid. It returns nil
// without error when the place has no reviews.
func (s *ReviewService) Score(ctx context.Context, uid string, loc models.Location) (*models.ReviewScore, error) {
	if uid == "" {
		return nil, ErrNoCurrentUser
	}
	reviews, err := s.List(ctx, loc)
	if err != nil {
		return nil, err
	}
	return review.Aggregate(reviews, uid)
}

// ReviewRequest is a user's answers for the toilet at a location.
type ReviewRequest struct {
	Name                  string  `json:"name"`
	Detail                string  `json:"detail"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	CanUse                bool    `json:"can_use"`
	IsFree                bool    `json:"is_free"`
	HasWashlet            bool    `json:"has_washlet"`
	HasAccessibleRestroom bool    `json:"has_accessible_restroom"`
}

// Create records uid's review, creating the toilet when the place is new.
// A user reviews each toilet at most once.
func (s *ReviewService) Create(ctx context.Context, uid string, req ReviewRequest) (*models.Review, error) {
	if uid == "" {
		return nil, ErrNoCurrentUser
	}

	toiletID, err := s.toilets.EnsureToilet(ctx, uid, models.ToiletRecord{
		Name:      req.Name,
		Detail:    req.Detail,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return nil, err
	}

	existing, err := s.reviews.FetchReviews(ctx, toiletID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch reviews: %w", err)
	}
	if !review.NotReviewedYet(existing, uid) {
		return nil, ErrAlreadyReviewed
	}

	rv := models.Review{
		ToiletID:              toiletID,
		SenderUID:             uid,
		CanUse:                req.CanUse,
		IsFree:                req.IsFree,
		HasWashlet:            req.HasWashlet,
		HasAccessibleRestroom: req.HasAccessibleRestroom,
	}
	if err := s.reviews.CreateReview(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("service: failed to create review: %w", err)
	}
	return &rv, nil
}

// ListMine returns every review uid wrote, newest first.
func (s *ReviewService) ListMine(ctx context.Context, uid string) ([]models.Review, error) {
	if uid == "" {
		return nil, ErrNoCurrentUser
	}
	reviews, err := s.reviews.FetchReviewsBySender(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch user reviews: %w", err)
	}
	return reviews, nil
}

// ReviewAnswers are the facet answers of a review.
type ReviewAnswers struct {
	CanUse                bool `json:"can_use"`
	IsFree                bool `json:"is_free"`
	HasWashlet            bool `json:"has_washlet"`
	HasAccessibleRestroom bool `json:"has_accessible_restroom"`
}

// Update replaces the answers of uid's review id.
func (s *ReviewService) Update(ctx context.Context, uid, id string, answers ReviewAnswers) (*models.Review, error) {
	mine, err := s.ListMine(ctx, uid)
	if err != nil {
		return nil, err
	}

	for _, rv := range mine {
		if rv.ID != id {
			continue
		}
		rv.CanUse = answers.CanUse
		rv.IsFree = answers.IsFree
		rv.HasWashlet = answers.HasWashlet
		rv.HasAccessibleRestroom = answers.HasAccessibleRestroom
		if err := s.reviews.UpdateReview(ctx, rv); err != nil {
			return nil, fmt.Errorf("service: failed to update review: %w", err)
		}
		return &rv, nil
	}
	return nil, ErrNotFound
}
