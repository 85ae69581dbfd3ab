package models

import "time"

// ToiletRecord is a toilet persisted in the backend. ID is empty until the
// record has been stored.
type ToiletRecord struct {
	ID        string    `json:"id" firestore:"-"`
	Sender    string    `json:"sender,omitempty" firestore:"sender"`
	Name      string    `json:"name" firestore:"name"`
	Detail    string    `json:"detail" firestore:"detail"`
	Latitude  float64   `json:"latitude" firestore:"latitude"`
	Longitude float64   `json:"longitude" firestore:"longitude"`
	Archived  bool      `json:"archived" firestore:"-"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

// Location returns the record's coordinates.
func (t ToiletRecord) Location() Location {
	return Location{Latitude: t.Latitude, Longitude: t.Longitude}
}

// ArchivedRecord is a user's bookmark of a ToiletRecord. Name, Detail and the
// coordinates are copied from the toilet at archive time.
type ArchivedRecord struct {
	ID        string    `json:"id" firestore:"-"`
	ToiletRef string    `json:"toilet_id" firestore:"origin"`
	Sender    string    `json:"sender" firestore:"sender"`
	Name      string    `json:"name" firestore:"name"`
	Detail    string    `json:"detail" firestore:"detail"`
	Memo      string    `json:"memo" firestore:"memo"`
	Latitude  float64   `json:"latitude" firestore:"latitude"`
	Longitude float64   `json:"longitude" firestore:"longitude"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

// Location returns the archived coordinates.
func (a ArchivedRecord) Location() Location {
	return Location{Latitude: a.Latitude, Longitude: a.Longitude}
}

// HomeRecord is the single home toilet a user may register.
type HomeRecord struct {
	Sender    string  `json:"sender" firestore:"sender"`
	Name      string  `json:"name" firestore:"name"`
	Detail    string  `json:"detail" firestore:"detail"`
	Latitude  float64 `json:"latitude" firestore:"latitude"`
	Longitude float64 `json:"longitude" firestore:"longitude"`
}

// Location returns the home toilet's coordinates.
func (h HomeRecord) Location() Location {
	return Location{Latitude: h.Latitude, Longitude: h.Longitude}
}

// SearchOrigin names the search backend a candidate came from.
type SearchOrigin string

const (
	// OriginPlace marks hits from the external place search.
	OriginPlace SearchOrigin = "place"
	// OriginIndex marks hits from the full-text index over stored toilets.
	OriginIndex SearchOrigin = "index"
)

// SearchCandidate is an ephemeral search hit. It is never persisted.
type SearchCandidate struct {
	Title     string       `json:"title"`
	Subtitle  string       `json:"subtitle"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	ToiletRef string       `json:"toilet_id,omitempty"`
	Origin    SearchOrigin `json:"origin"`
}

// Location returns the hit's coordinates.
func (s SearchCandidate) Location() Location {
	return Location{Latitude: s.Latitude, Longitude: s.Longitude}
}
