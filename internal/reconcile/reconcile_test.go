package reconcile

import (
	"encoding/json"
	"testing"

	"toiletmap-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	placeA = models.Location{Latitude: 35.681236, Longitude: 139.767125}
	placeB = models.Location{Latitude: 35.675, Longitude: 139.732}
	placeC = models.Location{Latitude: 35.690, Longitude: 139.700}
)

func toilet(id string, loc models.Location) models.ToiletRecord {
	return models.ToiletRecord{ID: id, Name: "toilet " + id, Latitude: loc.Latitude, Longitude: loc.Longitude}
}

func archive(id string, loc models.Location) models.ArchivedRecord {
	return models.ArchivedRecord{ID: id, ToiletRef: "ref-" + id, Name: "archived " + id, Latitude: loc.Latitude, Longitude: loc.Longitude}
}

func hit(title string, loc models.Location) models.SearchCandidate {
	return models.SearchCandidate{Title: title, Latitude: loc.Latitude, Longitude: loc.Longitude, Origin: models.OriginPlace}
}

func titles(anns []models.MapAnnotation) []string {
	out := make([]string, len(anns))
	for i, a := range anns {
		out[i] = a.Title
	}
	return out
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		archived []models.ArchivedRecord
		ambient  []models.ToiletRecord
		search   []models.SearchCandidate
		expected []string
	}{
		{
			name:     "all empty",
			expected: []string{},
		},
		{
			name:     "ambient only passes through",
			ambient:  []models.ToiletRecord{toilet("1", placeA), toilet("2", placeB)},
			expected: []string{"toilet 1", "toilet 2"},
		},
		{
			name:     "archived hides ambient at same place",
			archived: []models.ArchivedRecord{archive("1", placeA)},
			ambient:  []models.ToiletRecord{toilet("1", placeA), toilet("2", placeB)},
			expected: []string{"archived 1", "toilet 2"},
		},
		{
			name:     "search hides ambient at same place",
			ambient:  []models.ToiletRecord{toilet("1", placeA), toilet("2", placeB)},
			search:   []models.SearchCandidate{hit("hit", placeB)},
			expected: []string{"toilet 1", "hit"},
		},
		{
			name:     "archived hides search at same place",
			archived: []models.ArchivedRecord{archive("1", placeA)},
			search:   []models.SearchCandidate{hit("hit a", placeA), hit("hit c", placeC)},
			expected: []string{"archived 1", "hit c"},
		},
		{
			name:     "all three collide",
			archived: []models.ArchivedRecord{archive("1", placeA)},
			ambient:  []models.ToiletRecord{toilet("1", placeA)},
			search:   []models.SearchCandidate{hit("hit", placeA)},
			expected: []string{"archived 1"},
		},
		{
			name:     "collision after rounding",
			archived: []models.ArchivedRecord{archive("1", placeA)},
			ambient: []models.ToiletRecord{
				toilet("1", models.Location{Latitude: placeA.Latitude + 1e-10, Longitude: placeA.Longitude - 1e-10}),
			},
			expected: []string{"archived 1"},
		},
		{
			name:     "intra-source duplicates are kept",
			ambient:  []models.ToiletRecord{toilet("1", placeA), toilet("2", placeA)},
			expected: []string{"toilet 1", "toilet 2"},
		},
		{
			name:     "group order is archived ambient search",
			archived: []models.ArchivedRecord{archive("1", placeC)},
			ambient:  []models.ToiletRecord{toilet("1", placeA)},
			search:   []models.SearchCandidate{hit("hit", placeB)},
			expected: []string{"archived 1", "toilet 1", "hit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Reconcile(tt.archived, tt.ambient, tt.search, nil)

			assert.Equal(t, tt.expected, titles(out))
			for _, a := range out {
				assert.Nil(t, a.Distance)
			}
		})
	}
}

func TestReconcile_Flags(t *testing.T) {
	out := Reconcile(
		[]models.ArchivedRecord{archive("1", placeA)},
		[]models.ToiletRecord{toilet("2", placeB)},
		[]models.SearchCandidate{hit("hit", placeC)},
		nil,
	)
	require.Len(t, out, 3)

	assert.True(t, out[0].IsArchived)
	assert.False(t, out[0].IsHighlight)
	assert.Equal(t, "ref-1", out[0].ToiletID)
	assert.Equal(t, models.SourceArchived, out[0].Source.Kind())

	assert.False(t, out[1].IsArchived)
	assert.False(t, out[1].IsHighlight)
	assert.Equal(t, "2", out[1].ToiletID)
	assert.Equal(t, models.SourceOwned, out[1].Source.Kind())

	assert.True(t, out[2].IsHighlight)
	assert.Equal(t, models.SourceSearch, out[2].Source.Kind())
	src, ok := out[2].Source.(models.SearchSource)
	require.True(t, ok)
	assert.Equal(t, "hit", src.Candidate.Title)
}

func TestReconcile_Distance(t *testing.T) {
	user := placeA
	out := Reconcile(nil, []models.ToiletRecord{toilet("1", placeA), toilet("2", placeB)}, nil, &user)
	require.Len(t, out, 2)

	require.NotNil(t, out[0].Distance)
	assert.Zero(t, *out[0].Distance)
	require.NotNil(t, out[1].Distance)
	assert.Greater(t, *out[1].Distance, 3000.0)
}

func TestReconcileWithHome(t *testing.T) {
	home := models.HomeRecord{Name: "home", Latitude: placeA.Latitude, Longitude: placeA.Longitude}
	user := placeB

	res := ReconcileWithHome(nil, []models.ToiletRecord{toilet("1", placeA)}, nil, &home, &user)

	// Home does not suppress an ambient toilet at the same place.
	assert.Equal(t, []string{"toilet 1"}, titles(res.Annotations))
	require.NotNil(t, res.Home)
	assert.Equal(t, "home", res.Home.Title)
	assert.Equal(t, models.SourceHome, res.Home.Source.Kind())
	require.NotNil(t, res.Home.Distance)

	res = ReconcileWithHome(nil, nil, nil, nil, nil)
	assert.Nil(t, res.Home)
	assert.Empty(t, res.Annotations)
}

func TestSortByDistance(t *testing.T) {
	d := func(v float64) *float64 { return &v }
	anns := []models.MapAnnotation{
		{Title: "nil-1"},
		{Title: "far", Distance: d(300)},
		{Title: "near", Distance: d(10)},
		{Title: "nil-2"},
		{Title: "mid-1", Distance: d(100)},
		{Title: "mid-2", Distance: d(100)},
	}

	SortByDistance(anns)

	assert.Equal(t, []string{"near", "mid-1", "mid-2", "far", "nil-1", "nil-2"}, titles(anns))
}

func TestMapAnnotation_MarshalJSON(t *testing.T) {
	out := Reconcile(nil, nil, []models.SearchCandidate{hit("hit", placeA)}, nil)
	require.Len(t, out, 1)

	raw, err := json.Marshal(out[0])
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "search", body["kind"])
	assert.Equal(t, true, body["is_highlight"])
	assert.Nil(t, body["distance"])
	source, ok := body["source"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, source, "candidate")
}
