package booking

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes mounts the unauthenticated booking reads.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/handymen/:id/reviews", h.HandymanReviews)
}

// RegisterRoutes mounts the booking writes; rg must sit behind JWTAuth.
// Reads of bookings live with the dashboard because they are role-scoped.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.POST("/bookings/:id/transition", h.TransitionBooking)
	rg.PATCH("/bookings/:id/cost", h.SetActualCost)
	rg.POST("/bookings/:id/review", h.ReviewBooking)
}

// RegisterAdminRoutes expects rg to sit behind AdminOnly.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/assign", h.AssignHandyman)
}
