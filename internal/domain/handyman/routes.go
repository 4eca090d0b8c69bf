package handyman

import (
	"github.com/gin-gonic/gin"

	"handyhub/internal/domain"
	"handyhub/internal/middleware"
)

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/handymen", h.ListHandymen)
}

// RegisterRoutes expects r to sit behind JWTAuth.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.PATCH("/handymen/me", middleware.RequireRole(domain.RoleHandyman), h.UpdateMe)
}

// RegisterAdminRoutes expects r to sit behind AdminOnly.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	handymen := r.Group("/handymen")
	{
		handymen.GET("", h.AdminListHandymen)
		handymen.POST("/:id/verify", h.Verify)
		handymen.PATCH("/:id/active", h.SetActive)
	}
}
