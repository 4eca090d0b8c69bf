package inquiry

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"handyhub/internal/pkg/response"
	"handyhub/internal/pkg/validator"
)

// Handler handles inquiry HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates inquiry handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /api/v1/inquiries (public)
// @Summary Submit contact form
// @Description Public endpoint for visitors to send a question to the team
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Inquiry"
// @Success 201 {object} response.Response{data=Inquiry}
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /inquiries [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidJSON(c)
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	i, err := h.service.Submit(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": i.ID, "status": i.Status})
}

// List handles GET /api/v1/admin/inquiries
// @Summary List inquiries
// @Tags Admin Inquiries
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(new, in_progress, resolved)
// @Success 200 {object} response.Response{data=ListResponse}
// @Router /admin/inquiries [get]
func (h *Handler) List(c *gin.Context) {
	res, err := h.service.List(c.Request.Context(), Status(c.Query("status")))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// UpdateStatus handles PATCH /api/v1/admin/inquiries/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid inquiry ID")
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidJSON(c)
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	i, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, i)
}
