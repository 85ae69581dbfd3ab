package service

import (
	"errors"
	"fmt"
	"math"

	"toiletmap-api/internal/models"
	"toiletmap-api/internal/repository"
	"toiletmap-api/internal/review"
)

var (
	ErrInvalidInput    = errors.New("service: invalid input")
	ErrEmptyQuery      = fmt.Errorf("%w: query cannot be empty", ErrInvalidInput)
	ErrAlreadyReviewed = errors.New("service: already reviewed")
	ErrNotFound        = repository.ErrNotFound
	ErrNoCurrentUser   = review.ErrNoCurrentUser
)

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func validateLocation(loc models.Location) error {
	if !finite(loc.Latitude) || !finite(loc.Longitude) {
		return fmt.Errorf("%w: coordinates must be finite numbers", ErrInvalidInput)
	}
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("%w: invalid latitude: %f", ErrInvalidInput, loc.Latitude)
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("%w: invalid longitude: %f", ErrInvalidInput, loc.Longitude)
	}
	return nil
}
