package dashboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"handyhub/internal/middleware"
	"handyhub/internal/pkg/response"
)

type Handler struct {
	composer *Composer
}

func NewHandler(composer *Composer) *Handler {
	return &Handler{composer: composer}
}

// view resolves the caller's variant, writing the error response itself.
func (h *Handler) view(c *gin.Context) (View, bool) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return nil, false
	}
	v, err := h.composer.ForActor(c.Request.Context(), actor)
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}
	return v, true
}

// GetDashboard handles GET /api/v1/dashboard
// @Summary Role-scoped dashboard
// @Description Customers see their bookings, handymen their assignments and admins everything plus the stats overview.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=Dashboard}
// @Router /dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	d, err := v.Dashboard(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

// ListBookings handles GET /api/v1/bookings
func (h *Handler) ListBookings(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	items, err := h.composer.Items(c.Request.Context(), v)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

// GetBooking handles GET /api/v1/bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}
	v, ok := h.view(c)
	if !ok {
		return
	}
	item, err := h.composer.Item(c.Request.Context(), v, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// RegisterRoutes expects r to sit behind JWTAuth.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.GetDashboard)
	r.GET("/bookings", h.ListBookings)
	r.GET("/bookings/:id", h.GetBooking)
}
