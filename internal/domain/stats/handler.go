package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"handyhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetOverview handles GET /api/v1/admin/stats
// @Summary Platform overview
// @Tags Admin Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=Overview}
// @Router /admin/stats [get]
func (h *Handler) GetOverview(c *gin.Context) {
	o, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

// RegisterAdminRoutes expects r to sit behind AdminOnly.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetOverview)
}
