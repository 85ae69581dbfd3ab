package handler

import (
	"context"
	"net/http"

	"toiletmap-api/internal/reconcile"
	"toiletmap-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AnnotationService builds reconciled map annotations.
type AnnotationService interface {
	Annotations(ctx context.Context, q service.AnnotationQuery) (*reconcile.Result, error)
	Stream(ctx context.Context, q service.AnnotationQuery) (<-chan reconcile.Result, error)
}

// AnnotationHandler serves the map pins.
type AnnotationHandler struct {
	service AnnotationService
}

// NewAnnotationHandler creates a new annotation handler
func NewAnnotationHandler(svc AnnotationService) *AnnotationHandler {
	return &AnnotationHandler{service: svc}
}

func (h *AnnotationHandler) query(c *gin.Context) (service.AnnotationQuery, bool) {
	loc, ok, err := queryLocation(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.AnnotationQuery{}, false
	}
	q := service.AnnotationQuery{
		UID:            currentUser(c),
		Query:          c.Query("q"),
		SortByDistance: c.Query("sort") == "distance",
	}
	if ok {
		q.User = &loc
	}
	return q, true
}

// List godoc
// @Summary  Reconciled map annotations
// @Tags     annotations
// @Produce  json
// @Param    lat   query number false "user latitude"
// @Param    lon   query number false "user longitude"
// @Param    q     query string false "search text, needs lat and lon"
// @Param    sort  query string false "distance"
// @Success  200 {object} reconcile.Result
// @Failure  400 {object} map[string]string
// @Router   /v1/annotations [get]
func (h *AnnotationHandler) List(c *gin.Context) {
	q, ok := h.query(c)
	if !ok {
		return
	}

	res, err := h.service.Annotations(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Stream godoc
// @Summary  Live map annotations as server-sent events
// @Tags     annotations
// @Produce  text/event-stream
// @Param    lat   query number false "user latitude"
// @Param    lon   query number false "user longitude"
// @Param    q     query string false "search text, needs lat and lon"
// @Param    sort  query string false "distance"
// @Success  200 {object} reconcile.Result
// @Router   /v1/annotations/stream [get]
func (h *AnnotationHandler) Stream(c *gin.Context) {
	q, ok := h.query(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	ch, err := h.service.Stream(ctx, q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	for {
		select {
		case <-ctx.Done():
			return
		case res, ok := <-ch:
			if !ok {
				return
			}
			c.SSEvent("annotations", res)
			c.Writer.Flush()
		}
	}
}
