package models

import "encoding/json"

// SourceKind identifies which record an annotation was derived from.
type SourceKind string

const (
	SourceOwned    SourceKind = "owned"
	SourceArchived SourceKind = "archived"
	SourceSearch   SourceKind = "search"
	SourceHome     SourceKind = "home"
)

// AnnotationSource is the closed set of payloads a MapAnnotation can carry.
// Only the types in this package implement it.
type AnnotationSource interface {
	Kind() SourceKind
	sealed()
}

// OwnedSource wraps an ambient ToiletRecord.
type OwnedSource struct {
	Toilet ToiletRecord `json:"toilet"`
}

// ArchivedSource wraps the current user's ArchivedRecord.
type ArchivedSource struct {
	Archived ArchivedRecord `json:"archived"`
}

// SearchSource wraps a transient SearchCandidate.
type SearchSource struct {
	Candidate SearchCandidate `json:"candidate"`
}

// HomeSource wraps the user's HomeRecord.
type HomeSource struct {
	Home HomeRecord `json:"home"`
}

func (OwnedSource) Kind() SourceKind    { return SourceOwned }
func (ArchivedSource) Kind() SourceKind { return SourceArchived }
func (SearchSource) Kind() SourceKind   { return SourceSearch }
func (HomeSource) Kind() SourceKind     { return SourceHome }

func (OwnedSource) sealed()    {}
func (ArchivedSource) sealed() {}
func (SearchSource) sealed()   {}
func (HomeSource) sealed()     {}

// MapAnnotation is a single pin ready for display.
type MapAnnotation struct {
	Latitude    float64          `json:"latitude"`
	Longitude   float64          `json:"longitude"`
	Title       string           `json:"title"`
	Subtitle    string           `json:"subtitle"`
	Distance    *float64         `json:"distance"`
	IsArchived  bool             `json:"is_archived"`
	IsHighlight bool             `json:"is_highlight"`
	ToiletID    string           `json:"toilet_id,omitempty"`
	Source      AnnotationSource `json:"-"`
}

// Location returns the annotation's coordinates.
func (a MapAnnotation) Location() Location {
	return Location{Latitude: a.Latitude, Longitude: a.Longitude}
}

// MarshalJSON adds the source kind and payload next to the display fields.
func (a MapAnnotation) MarshalJSON() ([]byte, error) {
	type plain MapAnnotation
	out := struct {
		plain
		Kind   SourceKind       `json:"kind,omitempty"`
		Source AnnotationSource `json:"source,omitempty"`
	}{plain: plain(a), Source: a.Source}
	if a.Source != nil {
		out.Kind = a.Source.Kind()
	}
	return json.Marshal(out)
}
