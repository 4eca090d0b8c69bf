package catalog

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	services := r.Group("/services")
	{
		services.GET("", h.ListServices)   // GET /api/v1/services?category=...
		services.GET("/:id", h.GetService) // GET /api/v1/services/:id
	}
}

// RegisterAdminRoutes expects r to sit behind AdminOnly.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	services := r.Group("/services")
	{
		services.GET("", h.AdminListServices)
		services.POST("", h.CreateService)
		services.PUT("/:id", h.UpdateService)
		services.DELETE("/:id", h.DeleteService)
	}
}
