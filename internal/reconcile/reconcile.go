// Package reconcile merges the user's archived toilets, the ambient toilet
// set and transient search hits into one list of map annotations with at
// most one pin per place.
//
// Precedence is archived, then search, then ambient:
//   - an ambient toilet is hidden when a search hit or an archived toilet
//     sits at the same rounded location;
//   - a search hit is hidden when an archived toilet sits there.
//
// Duplicates inside a single source are passed through unchanged.
package reconcile

import (
	"sort"

	"toiletmap-api/internal/geo"
	"toiletmap-api/internal/models"
)

// Reconcile returns archived, surviving ambient, then surviving search
// annotations, in input order within each group. Distance is set when user
// is non-nil.
func Reconcile(archived []models.ArchivedRecord, ambient []models.ToiletRecord, search []models.SearchCandidate, user *models.Location) []models.MapAnnotation {
	archivedKeys := make(map[geo.Key]struct{}, len(archived))
	for _, a := range archived {
		archivedKeys[geo.KeyOf(a.Location())] = struct{}{}
	}
	searchKeys := make(map[geo.Key]struct{}, len(search))
	for _, s := range search {
		searchKeys[geo.KeyOf(s.Location())] = struct{}{}
	}

	out := make([]models.MapAnnotation, 0, len(archived)+len(ambient)+len(search))
	for _, a := range archived {
		out = append(out, FromArchived(a))
	}
	for _, t := range ambient {
		k := geo.KeyOf(t.Location())
		if _, ok := searchKeys[k]; ok {
			continue
		}
		if _, ok := archivedKeys[k]; ok {
			continue
		}
		out = append(out, FromToilet(t))
	}
	for _, s := range search {
		if _, ok := archivedKeys[geo.KeyOf(s.Location())]; ok {
			continue
		}
		out = append(out, FromSearch(s))
	}

	if user != nil {
		for i := range out {
			AttachDistance(&out[i], *user)
		}
	}
	return out
}

// Result is a reconciled list plus the home annotation, which is always
// carried in its own slot.
type Result struct {
	Annotations []models.MapAnnotation `json:"annotations"`
	Home        *models.MapAnnotation  `json:"home"`
}

// ReconcileWithHome runs Reconcile and builds the home annotation when home
// is set. The home pin never takes part in precedence.
func ReconcileWithHome(archived []models.ArchivedRecord, ambient []models.ToiletRecord, search []models.SearchCandidate, home *models.HomeRecord, user *models.Location) Result {
	res := Result{Annotations: Reconcile(archived, ambient, search, user)}
	if home != nil {
		h := FromHome(*home)
		if user != nil {
			AttachDistance(&h, *user)
		}
		res.Home = &h
	}
	return res
}

// FromArchived builds the annotation for one of the user's bookmarks.
func FromArchived(a models.ArchivedRecord) models.MapAnnotation {
	return models.MapAnnotation{
		Latitude:   a.Latitude,
		Longitude:  a.Longitude,
		Title:      a.Name,
		Subtitle:   a.Detail,
		IsArchived: true,
		ToiletID:   a.ToiletRef,
		Source:     models.ArchivedSource{Archived: a},
	}
}

// FromToilet builds the annotation for a stored toilet.
func FromToilet(t models.ToiletRecord) models.MapAnnotation {
	return models.MapAnnotation{
		Latitude:   t.Latitude,
		Longitude:  t.Longitude,
		Title:      t.Name,
		Subtitle:   t.Detail,
		IsArchived: t.Archived,
		ToiletID:   t.ID,
		Source:     models.OwnedSource{Toilet: t},
	}
}

// FromSearch builds the highlighted annotation for a search hit.
func FromSearch(s models.SearchCandidate) models.MapAnnotation {
	return models.MapAnnotation{
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		Title:       s.Title,
		Subtitle:    s.Subtitle,
		IsHighlight: true,
		ToiletID:    s.ToiletRef,
		Source:      models.SearchSource{Candidate: s},
	}
}

// FromHome builds the annotation for a user's home toilet.
func FromHome(h models.HomeRecord) models.MapAnnotation {
	return models.MapAnnotation{
		Latitude:  h.Latitude,
		Longitude: h.Longitude,
		Title:     h.Name,
		Subtitle:  h.Detail,
		Source:    models.HomeSource{Home: h},
	}
}

// AttachDistance sets a.Distance to the flat-projection distance to user.
func AttachDistance(a *models.MapAnnotation, user models.Location) {
	d := geo.Distance(user, a.Location())
	a.Distance = &d
}

// SortByDistance orders anns nearest first. Annotations without a distance
// go last and keep their relative order, as do equal distances.
func SortByDistance(anns []models.MapAnnotation) {
	sort.SliceStable(anns, func(i, j int) bool {
		di, dj := anns[i].Distance, anns[j].Distance
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		}
		return *di < *dj
	})
}
