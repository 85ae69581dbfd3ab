package handler

import (
	"context"
	"net/http"

	"toiletmap-api/internal/models"
	"toiletmap-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ToiletService creates, resolves, edits and bookmarks toilets.
type ToiletService interface {
	Resolve(ctx context.Context, loc models.Location) (string, bool, error)
	Create(ctx context.Context, uid string, rec models.ToiletRecord) (*models.ToiletRecord, bool, error)
	Archive(ctx context.Context, uid string, req service.ArchiveRequest) (*models.ArchivedRecord, bool, error)
	Unarchive(ctx context.Context, uid, id string) error
	Get(ctx context.Context, id string) (*models.ToiletRecord, error)
	ListCreated(ctx context.Context, uid string) ([]models.ToiletRecord, error)
	Update(ctx context.Context, uid, id string, edit service.ToiletEdit) (*models.ToiletRecord, error)
	Delete(ctx context.Context, uid, id string) error
}

// ToiletHandler handles toilet and archive requests
type ToiletHandler struct {
	service ToiletService
}

// NewToiletHandler creates a new toilet handler
func NewToiletHandler(svc ToiletService) *ToiletHandler {
	return &ToiletHandler{service: svc}
}

// ToiletRequest is the body of POST /v1/toilets.
type ToiletRequest struct {
	Name      string  `json:"name" binding:"required"`
	Detail    string  `json:"detail"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ResolveResponse is the id a location maps to.
type ResolveResponse struct {
	ID    string `json:"id"`
	IsNew bool   `json:"is_new"`
}

func createdStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}

// Create godoc
// @Summary  Register a toilet, or return the one already at the location
// @Tags     toilets
// @Accept   json
// @Produce  json
// @Param    body body ToiletRequest true "toilet"
// @Success  201 {object} models.ToiletRecord
// @Success  200 {object} models.ToiletRecord
// @Router   /v1/toilets [post]
func (h *ToiletHandler) Create(c *gin.Context) {
	var req ToiletRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, created, err := h.service.Create(c.Request.Context(), currentUser(c), models.ToiletRecord{
		Name:      req.Name,
		Detail:    req.Detail,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(createdStatus(created), rec)
}

// Resolve godoc
// @Summary  Map a location to a toilet id without writing anything
// @Tags     toilets
// @Accept   json
// @Produce  json
// @Param    body body models.Location true "location"
// @Success  200 {object} ResolveResponse
// @Router   /v1/toilets/resolve [post]
func (h *ToiletHandler) Resolve(c *gin.Context) {
	var loc models.Location
	if !bindJSON(c, &loc) {
		return
	}

	id, isNew, err := h.service.Resolve(c.Request.Context(), loc)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ResolveResponse{ID: id, IsNew: isNew})
}

// Get godoc
// @Summary  A toilet by id
// @Tags     toilets
// @Produce  json
// @Param    id path string true "toilet id"
// @Success  200 {object} models.ToiletRecord
// @Failure  404 {object} map[string]string
// @Router   /v1/toilets/{id} [get]
func (h *ToiletHandler) Get(c *gin.Context) {
	t, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// ListCreated godoc
// @Summary  Toilets registered by the current user
// @Tags     toilets
// @Produce  json
// @Success  200 {array} models.ToiletRecord
// @Router   /v1/me/toilets [get]
func (h *ToiletHandler) ListCreated(c *gin.Context) {
	toilets, err := h.service.ListCreated(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toilets)
}

// Update godoc
// @Summary  Rename one of the current user's toilets
// @Tags     toilets
// @Accept   json
// @Produce  json
// @Param    id   path string             true "toilet id"
// @Param    body body service.ToiletEdit true "new name and detail"
// @Success  200 {object} models.ToiletRecord
// @Failure  404 {object} map[string]string
// @Router   /v1/toilets/{id} [patch]
func (h *ToiletHandler) Update(c *gin.Context) {
	var edit service.ToiletEdit
	if !bindJSON(c, &edit) {
		return
	}

	t, err := h.service.Update(c.Request.Context(), currentUser(c), c.Param("id"), edit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Delete godoc
// @Summary  Delete one of the current user's toilets
// @Tags     toilets
// @Param    id path string true "toilet id"
// @Success  204
// @Failure  404 {object} map[string]string
// @Router   /v1/toilets/{id} [delete]
func (h *ToiletHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Archive godoc
// @Summary  Bookmark the toilet at a location
// @Tags     archives
// @Accept   json
// @Produce  json
// @Param    body body service.ArchiveRequest true "place"
// @Success  201 {object} models.ArchivedRecord
// @Success  200 {object} models.ArchivedRecord
// @Router   /v1/archives [post]
func (h *ToiletHandler) Archive(c *gin.Context) {
	var req service.ArchiveRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, created, err := h.service.Archive(c.Request.Context(), currentUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(createdStatus(created), rec)
}

// Unarchive godoc
// @Summary  Remove a bookmark
// @Tags     archives
// @Param    id path string true "archive id"
// @Success  204
// @Failure  404 {object} map[string]string
// @Router   /v1/archives/{id} [delete]
func (h *ToiletHandler) Unarchive(c *gin.Context) {
	if err := h.service.Unarchive(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
