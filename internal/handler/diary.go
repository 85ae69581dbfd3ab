package handler

import (
	"context"
	"net/http"
	"time"

	"toiletmap-api/internal/models"
	"toiletmap-api/internal/service"

	"github.com/gin-gonic/gin"
)

// DiaryService records and summarises toilet visits.
type DiaryService interface {
	Record(ctx context.Context, uid string, req service.DiaryRequest) (*models.DiaryEntry, error)
	RecordLocal(ctx context.Context, uid string, req service.DiaryRequest) (*models.DiaryEntry, error)
	SyncLocal(ctx context.Context, uid string) (int, error)
	List(ctx context.Context, uid string) ([]models.DiaryEntry, error)
	Edit(ctx context.Context, uid, id string, edit service.DiaryEdit) error
	Delete(ctx context.Context, uid, id string) error
	Day(ctx context.Context, uid string, day time.Time) (*models.DiaryDay, error)
}

// DiaryHandler handles diary requests
type DiaryHandler struct {
	service DiaryService
}

// NewDiaryHandler creates a new diary handler
func NewDiaryHandler(svc DiaryService) *DiaryHandler {
	return &DiaryHandler{service: svc}
}

// List godoc
// @Summary  Diaries shared with the signed-in user
// @Tags     diaries
// @Produce  json
// @Success  200 {array} models.DiaryEntry
// @Router   /v1/diaries [get]
func (h *DiaryHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Record godoc
// @Summary  Record a visit
// @Tags     diaries
// @Accept   json
// @Produce  json
// @Param    local query bool false "keep the entry in the local store until synced"
// @Param    body  body service.DiaryRequest true "visit"
// @Success  201 {object} models.DiaryEntry
// @Router   /v1/diaries [post]
func (h *DiaryHandler) Record(c *gin.Context) {
	var req service.DiaryRequest
	if !bindJSON(c, &req) {
		return
	}

	record := h.service.Record
	if c.Query("local") == "true" {
		record = h.service.RecordLocal
	}
	d, err := record(c.Request.Context(), currentUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, d)
}

// Sync godoc
// @Summary  Upload locally recorded visits
// @Tags     diaries
// @Produce  json
// @Success  200 {object} map[string]int
// @Router   /v1/diaries/sync [post]
func (h *DiaryHandler) Sync(c *gin.Context) {
	n, err := h.service.SyncLocal(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"synced": n})
}

// Edit godoc
// @Summary  Change type, date and memo of a diary
// @Tags     diaries
// @Accept   json
// @Param    id   path string true "diary id"
// @Param    body body service.DiaryEdit true "fields"
// @Success  204
// @Failure  404 {object} map[string]string
// @Router   /v1/diaries/{id} [patch]
func (h *DiaryHandler) Edit(c *gin.Context) {
	var edit service.DiaryEdit
	if !bindJSON(c, &edit) {
		return
	}

	if err := h.service.Edit(c.Request.Context(), currentUser(c), c.Param("id"), edit); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete godoc
// @Summary  Delete a diary
// @Tags     diaries
// @Param    id path string true "diary id"
// @Success  204
// @Router   /v1/diaries/{id} [delete]
func (h *DiaryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Day godoc
// @Summary  Visits on one calendar day and the most used toilet
// @Tags     diaries
// @Produce  json
// @Param    date query string true  "YYYY-MM-DD"
// @Param    tz   query string false "IANA time zone, default UTC"
// @Success  200 {object} models.DiaryDay
// @Router   /v1/diaries/day [get]
func (h *DiaryHandler) Day(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'date'"})
		return
	}

	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time zone"})
			return
		}
		loc = l
	}

	day, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}

	summary, err := h.service.Day(c.Request.Context(), currentUser(c), day)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
