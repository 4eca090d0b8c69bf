package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"handyhub/internal/pkg/response"
	"handyhub/internal/pkg/validator"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return 0, false
	}
	return id, true
}

// ListServices handles GET /api/v1/services
// @Summary List active services
// @Tags Catalog
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Response
// @Router /services [get]
func (h *Handler) ListServices(c *gin.Context) {
	rows, err := h.catalog.ListActive(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": rows})
}

// GetService handles GET /api/v1/services/:id
func (h *Handler) GetService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s, err := h.catalog.GetActive(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, s)
}

// AdminListServices handles GET /api/v1/admin/services, inactive included.
func (h *Handler) AdminListServices(c *gin.Context) {
	rows, err := h.catalog.ListAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": rows})
}

// CreateService handles POST /api/v1/admin/services
// @Summary Create service
// @Tags Admin Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpsertRequest true "Service"
// @Success 201 {object} response.Response{data=Service}
// @Failure 422 {object} response.Response
// @Router /admin/services [post]
func (h *Handler) CreateService(c *gin.Context) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidJSON(c)
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	s, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, s)
}

// UpdateService handles PUT /api/v1/admin/services/:id
func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidJSON(c)
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	s, err := h.catalog.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, s)
}

// DeleteService handles DELETE /api/v1/admin/services/:id
func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
