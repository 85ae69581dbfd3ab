package handler

import (
	"context"
	"net/http"

	"toiletmap-api/internal/models"

	"github.com/gin-gonic/gin"
)

// HomeService reads and replaces the home toilet.
type HomeService interface {
	Get(ctx context.Context, uid string) (*models.HomeRecord, error)
	Put(ctx context.Context, uid string, h models.HomeRecord) (*models.HomeRecord, error)
}

// HomeHandler handles home toilet requests
type HomeHandler struct {
	service HomeService
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(svc HomeService) *HomeHandler {
	return &HomeHandler{service: svc}
}

// Get godoc
// @Summary  The signed-in user's home toilet
// @Tags     home
// @Produce  json
// @Success  200 {object} models.HomeRecord
// @Failure  404 {object} map[string]string
// @Router   /v1/me/home [get]
func (h *HomeHandler) Get(c *gin.Context) {
	home, err := h.service.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}

	if home == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no home toilet registered"})
		return
	}

	c.JSON(http.StatusOK, home)
}

// Put godoc
// @Summary  Replace the signed-in user's home toilet
// @Tags     home
// @Accept   json
// @Produce  json
// @Param    body body models.HomeRecord true "home"
// @Success  200 {object} models.HomeRecord
// @Router   /v1/me/home [put]
func (h *HomeHandler) Put(c *gin.Context) {
	var req models.HomeRecord
	if !bindJSON(c, &req) {
		return
	}

	home, err := h.service.Put(c.Request.Context(), currentUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, home)
}
