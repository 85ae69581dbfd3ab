package handler

import (
	"context"
	"net/http"

	"toiletmap-api/internal/models"

	"github.com/gin-gonic/gin"
)

// SearchService runs a search session around a center.
type SearchService interface {
	Search(ctx context.Context, query string, center models.Location) ([]models.SearchCandidate, error)
}

// SearchHandler handles place search requests
type SearchHandler struct {
	service SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

// Search godoc
// @Summary  Search toilets and places around a location
// @Tags     search
// @Produce  json
// @Param    q    query string true "search text"
// @Param    lat  query number true "center latitude"
// @Param    lon  query number true "center longitude"
// @Success  200 {array} models.SearchCandidate
// @Failure  400 {object} map[string]string
// @Router   /v1/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}
	center, ok := requireLocation(c)
	if !ok {
		return
	}

	hits, err := h.service.Search(c.Request.Context(), query, center)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, hits)
}
