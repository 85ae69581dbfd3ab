package identity

import (
	"testing"

	"toiletmap-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceMinter hands out ids in order.
func sequenceMinter(ids ...string) MinterFunc {
	i := 0
	return func() string {
		id := ids[i]
		i++
		return id
	}
}

func TestResolver_Resolve(t *testing.T) {
	known := []models.ToiletRecord{
		{ID: "t1", Latitude: 35.0, Longitude: 139.0},
		{ID: "t2", Latitude: 35.1, Longitude: 139.1},
		{ID: "t3", Latitude: 35.1, Longitude: 139.1},
	}

	tests := []struct {
		name          string
		loc           models.Location
		known         []models.ToiletRecord
		expectedID    string
		expectedIsNew bool
	}{
		{
			name:          "existing location",
			loc:           models.Location{Latitude: 35.0, Longitude: 139.0},
			known:         known,
			expectedID:    "t1",
			expectedIsNew: false,
		},
		{
			name:          "matches after rounding",
			loc:           models.Location{Latitude: 35.000000001, Longitude: 139.000000004},
			known:         known,
			expectedID:    "t1",
			expectedIsNew: false,
		},
		{
			name:          "first match wins",
			loc:           models.Location{Latitude: 35.1, Longitude: 139.1},
			known:         known,
			expectedID:    "t2",
			expectedIsNew: false,
		},
		{
			name:          "unknown location",
			loc:           models.Location{Latitude: 34.0, Longitude: 135.0},
			known:         known,
			expectedID:    "minted",
			expectedIsNew: true,
		},
		{
			name:          "empty snapshot",
			loc:           models.Location{Latitude: 35.0, Longitude: 139.0},
			known:         nil,
			expectedID:    "minted",
			expectedIsNew: true,
		},
		{
			name: "records without id are skipped",
			loc:  models.Location{Latitude: 35.0, Longitude: 139.0},
			known: []models.ToiletRecord{
				{Latitude: 35.0, Longitude: 139.0},
			},
			expectedID:    "minted",
			expectedIsNew: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(sequenceMinter("minted"))

			id, isNew := r.Resolve(tt.loc, tt.known)

			assert.Equal(t, tt.expectedID, id)
			assert.Equal(t, tt.expectedIsNew, isNew)
		})
	}
}

func TestResolver_MintSkipsTakenIDs(t *testing.T) {
	known := []models.ToiletRecord{{ID: "t1", Latitude: 35.0, Longitude: 139.0}}
	r := NewResolver(sequenceMinter("", "t1", "t9"))

	id, isNew := r.Resolve(models.Location{Latitude: 1, Longitude: 1}, known)

	assert.True(t, isNew)
	assert.Equal(t, "t9", id)
}

func TestUUIDMinter(t *testing.T) {
	r := NewResolver(UUIDMinter)

	a, isNew := r.Resolve(models.Location{Latitude: 1, Longitude: 1}, nil)
	require.True(t, isNew)
	b, _ := r.Resolve(models.Location{Latitude: 1, Longitude: 1}, nil)

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
