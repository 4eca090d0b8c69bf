package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"handyhub/internal/middleware"
	"handyhub/internal/pkg/response"
	"handyhub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}

// bind decodes and validates the JSON body, writing the error response
// itself when it fails.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.InvalidJSON(c)
		return false
	}
	if fields := validator.Validate(req); fields != nil {
		response.ValidationFailed(c, fields)
		return false
	}
	return true
}

// CreateBooking handles POST /api/v1/bookings
// @Summary Book a service
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequest true "Booking"
// @Success 201 {object} response.Response{data=Booking}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	var req CreateRequest
	if !bind(c, &req) {
		return
	}

	b, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

// TransitionBooking handles POST /api/v1/bookings/:id/transition
// @Summary Move a booking to another status
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param request body TransitionRequest true "Target status"
// @Success 200 {object} response.Response{data=Booking}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings/{id}/transition [post]
func (h *Handler) TransitionBooking(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req TransitionRequest
	if !bind(c, &req) {
		return
	}

	b, err := h.service.Transition(c.Request.Context(), id, req, actor)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// SetActualCost handles PATCH /api/v1/bookings/:id/cost
func (h *Handler) SetActualCost(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CostRequest
	if !bind(c, &req) {
		return
	}

	b, err := h.service.SetActualCost(c.Request.Context(), actor, id, *req.ActualCost)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// ReviewBooking handles POST /api/v1/bookings/:id/review
func (h *Handler) ReviewBooking(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if !bind(c, &req) {
		return
	}

	b, err := h.service.Review(c.Request.Context(), actor, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// AssignHandyman handles POST /api/v1/admin/bookings/:id/assign
func (h *Handler) AssignHandyman(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req AssignRequest
	if !bind(c, &req) {
		return
	}

	b, err := h.service.Assign(c.Request.Context(), actor, id, req.HandymanID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// HandymanReviews handles GET /api/v1/handymen/:id/reviews (public)
func (h *Handler) HandymanReviews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid handyman ID")
		return
	}

	rows, err := h.service.Reviews(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]ReviewResponse, 0, len(rows))
	for _, b := range rows {
		out = append(out, NewReviewResponse(b))
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": out})
}
