package handler

import (
	"context"
	"net/http"

	"toiletmap-api/internal/models"
	"toiletmap-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewService lists, scores and records reviews.
type ReviewService interface {
	List(ctx context.Context, loc models.Location) ([]models.Review, error)
	Score(ctx context.Context, uid string, loc models.Location) (*models.ReviewScore, error)
	Create(ctx context.Context, uid string, req service.ReviewRequest) (*models.Review, error)
	ListMine(ctx context.Context, uid string) ([]models.Review, error)
	Update(ctx context.Context, uid, id string, answers service.ReviewAnswers) (*models.Review, error)
}

// ReviewHandler handles review requests
type ReviewHandler struct {
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(svc ReviewService) *ReviewHandler {
	return &ReviewHandler{service: svc}
}

// Score godoc
// @Summary  Facet percentages for the toilet at a location
// @Tags     reviews
// @Produce  json
// @Param    lat query number true "latitude"
// @Param    lon query number true "longitude"
// @Success  200 {object} models.ReviewScore
// @Failure  404 {object} map[string]string
// @Router   /v1/reviews [get]
func (h *ReviewHandler) Score(c *gin.Context) {
	loc, ok := requireLocation(c)
	if !ok {
		return
	}

	score, err := h.service.Score(c.Request.Context(), currentUser(c), loc)
	if err != nil {
		writeError(c, err)
		return
	}

	if score == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no reviews for the specified location"})
		return
	}

	c.JSON(http.StatusOK, score)
}

// List godoc
// @Summary  Reviews of the toilet at a location
// @Tags     reviews
// @Produce  json
// @Param    lat query number true "latitude"
// @Param    lon query number true "longitude"
// @Success  200 {array} models.Review
// @Router   /v1/reviews/list [get]
func (h *ReviewHandler) List(c *gin.Context) {
	loc, ok := requireLocation(c)
	if !ok {
		return
	}

	reviews, err := h.service.List(c.Request.Context(), loc)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// Create godoc
// @Summary  Review the toilet at a location
// @Tags     reviews
// @Accept   json
// @Produce  json
// @Param    body body service.ReviewRequest true "review"
// @Success  201 {object} models.Review
// @Failure  409 {object} map[string]string
// @Router   /v1/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req service.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	rv, err := h.service.Create(c.Request.Context(), currentUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rv)
}

// ListMine godoc
// @Summary  Reviews written by the current user
// @Tags     reviews
// @Produce  json
// @Success  200 {array} models.Review
// @Router   /v1/me/reviews [get]
func (h *ReviewHandler) ListMine(c *gin.Context) {
	reviews, err := h.service.ListMine(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Update godoc
// @Summary  Change the answers of one of the current user's reviews
// @Tags     reviews
// @Accept   json
// @Produce  json
// @Param    id   path string                true "review id"
// @Param    body body service.ReviewAnswers true "answers"
// @Success  200 {object} models.Review
// @Failure  404 {object} map[string]string
// @Router   /v1/reviews/{id} [patch]
func (h *ReviewHandler) Update(c *gin.Context) {
	var answers service.ReviewAnswers
	if !bindJSON(c, &answers) {
		return
	}

	rv, err := h.service.Update(c.Request.Context(), currentUser(c), c.Param("id"), answers)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}
