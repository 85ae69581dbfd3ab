// Package review turns a toilet's review list into facet percentages.
package review

import (
	"errors"

	"toiletmap-api/internal/models"
)

// ErrNoCurrentUser is returned when no signed-in user is known.
var ErrNoCurrentUser = errors.New("review: no current user")

// Aggregate computes the share of true answers for each facet, as a
// percentage of len(reviews). Values are not rounded.
//
// It returns (nil, nil) for an empty list. The user check runs first, so an
// empty currentUserID always yields ErrNoCurrentUser.
func Aggregate(reviews []models.Review, currentUserID string) (*models.ReviewScore, error) {
	if currentUserID == "" {
		return nil, ErrNoCurrentUser
	}
	if len(reviews) == 0 {
		return nil, nil
	}

	var canUse, isFree, washlet, accessible int
	for _, r := range reviews {
		if r.CanUse {
			canUse++
		}
		if r.IsFree {
			isFree++
		}
		if r.HasWashlet {
			washlet++
		}
		if r.HasAccessibleRestroom {
			accessible++
		}
	}

	total := float64(len(reviews))
	return &models.ReviewScore{
		CanUseRate:                float64(canUse) / total * 100,
		IsFreeRate:                float64(isFree) / total * 100,
		HasWashletRate:            float64(washlet) / total * 100,
		HasAccessibleRestroomRate: float64(accessible) / total * 100,
		AlreadyReviewed:           !reviewedBy(reviews, currentUserID),
	}, nil
}

// NotReviewedYet reports whether uid may still post a review. It is true
// when there is no user or no reviews.
func NotReviewedYet(reviews []models.Review, uid string) bool {
	if uid == "" || len(reviews) == 0 {
		return true
	}
	return !reviewedBy(reviews, uid)
}

func reviewedBy(reviews []models.Review, uid string) bool {
	for _, r := range reviews {
		if r.SenderUID == uid {
			return true
		}
	}
	return false
}
