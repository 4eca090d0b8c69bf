package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"handyhub/internal/domain/profile"
	"handyhub/internal/middleware"
	"handyhub/internal/pkg/response"
	"handyhub/internal/pkg/validator"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service  *Service
	profiles *profile.Service
}

func NewHandler(service *Service, profiles *profile.Service) *Handler {
	return &Handler{service: service, profiles: profiles}
}

// Register handles POST /api/v1/auth/register
// @Summary		Register a customer or handyman
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	RegisterRequest	true	"payload"
// @Success		201	{object}	response.Response{data=TokenResponse}
// @Failure		409	{object}	response.Response
// @Failure		422	{object}	response.Response
// @Router		/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidJSON(c)
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// Login handles POST /api/v1/auth/login
// @Summary		Log in
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	LoginRequest	true	"payload"
// @Success		200	{object}	response.Response{data=TokenResponse}
// @Failure		401	{object}	response.Response
// @Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidJSON(c)
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// GetMe handles GET /api/v1/auth/me
func (h *Handler) GetMe(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	p, err := h.profiles.Get(c.Request.Context(), actor.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p.Public())
}

// UpdateMe handles PATCH /api/v1/auth/me
func (h *Handler) UpdateMe(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	var req profile.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidJSON(c)
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	p, err := h.profiles.UpdateMe(c.Request.Context(), actor.ID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p.Public())
}
