package models

import "time"

// Review is one user's facet answers about a toilet.
type Review struct {
	ID                    string    `json:"id" firestore:"id"`
	ToiletID              string    `json:"toilet_id" firestore:"-"`
	SenderUID             string    `json:"sender_uid" firestore:"sender_uid"`
	CanUse                bool      `json:"can_use" firestore:"can_use"`
	IsFree                bool      `json:"is_free" firestore:"is_free"`
	HasWashlet            bool      `json:"has_washlet" firestore:"has_washlet"`
	HasAccessibleRestroom bool      `json:"has_accessible_restroom" firestore:"has_accessible_restroom"`
	CreatedAt             time.Time `json:"created_at" firestore:"created_at"`
}

// ReviewScore holds the share of positive answers per facet, in percent.
//
// AlreadyReviewed is true when the current user is NOT among the reviewers.
// The name is kept for compatibility with existing clients.
type ReviewScore struct {
	CanUseRate                float64 `json:"can_use_rate"`
	IsFreeRate                float64 `json:"is_free_rate"`
	HasWashletRate            float64 `json:"has_washlet_rate"`
	HasAccessibleRestroomRate float64 `json:"has_accessible_restroom_rate"`
	AlreadyReviewed           bool    `json:"already_reviewed"`
}
