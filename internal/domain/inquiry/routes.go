package inquiry

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers public inquiry routes
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/inquiries", handler.Submit)
}

// RegisterAdminRoutes registers admin inquiry routes
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	inquiries := r.Group("/inquiries")
	{
		inquiries.GET("", handler.List)
		inquiries.PATCH("/:id/status", handler.UpdateStatus)
	}
}
