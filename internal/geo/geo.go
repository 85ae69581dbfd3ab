// Package geo holds the coordinate rounding that defines place identity and
// the flat-projection distance used to rank annotations.
package geo

import (
	"math"

	"toiletmap-api/internal/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
)

// Precision is the number of decimal digits kept by Round8.
const Precision = 8

const scale = 1e8

// Round8 rounds v half away from zero to eight decimal digits.
func Round8(v float64) float64 {
	return math.Round(v*scale) / scale
}

// Key is the rounded form of a Location. Two locations denote the same place
// iff their keys are equal.
type Key struct {
	Lat float64
	Lon float64
}

// KeyOf rounds each axis of loc independently.
func KeyOf(loc models.Location) Key {
	return Key{Lat: Round8(loc.Latitude), Lon: Round8(loc.Longitude)}
}

// Same reports whether a and b round to the same place.
func Same(a, b models.Location) bool {
	return KeyOf(a) == KeyOf(b)
}

// Distance returns the distance in meters between a and b measured on the
// Web Mercator plane. The planar length is scaled by the cosine of the mean
// latitude so the result is a ground distance. It is not a great-circle
// distance and drifts from one over long spans.
func Distance(a, b models.Location) float64 {
	pa := project.Point(orb.Point{a.Longitude, a.Latitude}, project.WGS84.ToMercator)
	pb := project.Point(orb.Point{b.Longitude, b.Latitude}, project.WGS84.ToMercator)

	meanLat := (a.Latitude + b.Latitude) / 2 * math.Pi / 180
	return planar.Distance(pa, pb) * math.Cos(meanLat)
}
