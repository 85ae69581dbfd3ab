package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"toiletmap-api/internal/middleware"
	"toiletmap-api/internal/models"
	"toiletmap-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// writeError maps service errors to a status and a JSON body. Unknown errors
// are logged and reported as 500 without detail.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoCurrentUser):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign-in required"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": "already reviewed"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("handler: request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(middleware.UIDKey)
}

// queryLocation reads the lat and lon query parameters. ok is false when both
// are absent; a single missing, malformed or non-finite value is an error.
func queryLocation(c *gin.Context) (loc models.Location, ok bool, err error) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" && lonStr == "" {
		return models.Location{}, false, nil
	}
	if latStr == "" || lonStr == "" {
		return models.Location{}, false, errors.New("missing required query parameters 'lat' and 'lon'")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return models.Location{}, false, errors.New("invalid latitude format")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return models.Location{}, false, errors.New("invalid longitude format")
	}
	return models.Location{Latitude: lat, Longitude: lon}, true, nil
}

// requireLocation is queryLocation with both parameters mandatory.
func requireLocation(c *gin.Context) (models.Location, bool) {
	loc, ok, err := queryLocation(c)
	if err == nil && !ok {
		err = errors.New("missing required query parameters 'lat' and 'lon'")
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Location{}, false
	}
	return loc, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}
