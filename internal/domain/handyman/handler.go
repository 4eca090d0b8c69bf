package handyman

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
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid handyman ID")
		return 0, false
	}
	return id, true
}

// ListHandymen handles GET /api/v1/handymen (public)
// @Summary List verified handymen
// @Tags Handymen
// @Produce json
// @Success 200 {object} response.Response
// @Router /handymen [get]
func (h *Handler) ListHandymen(c *gin.Context) {
	rows, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"handymen": rows})
}

// UpdateMe handles PATCH /api/v1/handymen/me
func (h *Handler) UpdateMe(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidJSON(c)
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	p, err := h.service.UpdateOwn(c.Request.Context(), actor.ID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// AdminListHandymen handles GET /api/v1/admin/handymen
func (h *Handler) AdminListHandymen(c *gin.Context) {
	rows, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"handymen": rows})
}

// Verify handles POST /api/v1/admin/handymen/:id/verify
// @Summary Verify a handyman
// @Tags Admin Handymen
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Handyman ID"
// @Param request body VerifyRequest false "Defaults to verified=true"
// @Success 200 {object} response.Response{data=Profile}
// @Failure 404 {object} response.Response
// @Router /admin/handymen/{id}/verify [post]
func (h *Handler) Verify(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req VerifyRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.InvalidJSON(c)
			return
		}
	}
	verified := req.Verified == nil || *req.Verified

	p, err := h.service.SetVerified(c.Request.Context(), id, verified)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// SetActive handles PATCH /api/v1/admin/handymen/:id/active
func (h *Handler) SetActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidJSON(c)
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	p, err := h.service.SetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}
