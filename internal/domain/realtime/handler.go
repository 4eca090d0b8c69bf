package realtime

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"handyhub/internal/domain"
	"handyhub/internal/pkg/jwt"
	"handyhub/internal/pkg/response"
)

type Handler struct {
	hub      *Hub
	jwt      *jwt.Service
	upgrader websocket.Upgrader
}

// NewHandler accepts upgrades from the given origins. "*" allows any;
// requests without an Origin header (non-browser clients) always pass.
func NewHandler(hub *Hub, jwtService *jwt.Service, origins []string) *Handler {
	return &Handler{
		hub: hub,
		jwt: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
			},
		},
	}
}

// Connect handles GET /api/v1/ws?token=JWT
//
// The token travels in the query string since browsers cannot set headers
// on a websocket handshake.
func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "TOKEN_MISSING", "token query parameter is required")
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the handshake error.
		return
	}
	h.hub.ServeWS(conn, domain.Actor{ID: claims.UserID, Role: role})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ws", h.Connect)
}
