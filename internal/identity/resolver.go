// Package identity maps a location to the backend identifier of the toilet
// at that place, minting a fresh identifier when none is known.
package identity

import (
	"toiletmap-api/internal/geo"
	"toiletmap-api/internal/models"

	"github.com/google/uuid"
)

// IDMinter produces identifiers for records that do not exist yet. Minting
// must not persist anything.
type IDMinter interface {
	NewID() string
}

// MinterFunc adapts a function to IDMinter.
type MinterFunc func() string

func (f MinterFunc) NewID() string { return f() }

// UUIDMinter mints random UUIDv4 strings.
var UUIDMinter = MinterFunc(uuid.NewString)

// Resolver answers "which toilet is at this location".
type Resolver struct {
	minter IDMinter
}

// NewResolver returns a Resolver that mints new identifiers with m.
func NewResolver(m IDMinter) *Resolver {
	return &Resolver{minter: m}
}

// Resolve scans known for the first persisted record at the same rounded
// location as loc. When found it returns that record's ID and false.
// Otherwise it returns a freshly minted ID and true; the caller is expected
// to create the record under that ID.
//
// Two concurrent callers resolving the same new place may both get isNew.
func (r *Resolver) Resolve(loc models.Location, known []models.ToiletRecord) (id string, isNew bool) {
	key := geo.KeyOf(loc)
	for _, rec := range known {
		if rec.ID == "" {
			continue
		}
		if geo.KeyOf(rec.Location()) == key {
			return rec.ID, false
		}
	}
	return r.mint(known), true
}

// mint returns an ID that does not collide with any record in known.
func (r *Resolver) mint(known []models.ToiletRecord) string {
	for {
		id := r.minter.NewID()
		if id == "" {
			continue
		}
		taken := false
		for _, rec := range known {
			if rec.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}
