// Package server assembles the HTTP surface from the domain packages.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"handyhub/internal/backend"
	"handyhub/internal/domain/auth"
	"handyhub/internal/domain/booking"
	"handyhub/internal/domain/catalog"
	"handyhub/internal/domain/dashboard"
	"handyhub/internal/domain/handyman"
	"handyhub/internal/domain/inquiry"
	"handyhub/internal/domain/profile"
	"handyhub/internal/domain/realtime"
	"handyhub/internal/domain/stats"
	"handyhub/internal/middleware"
	"handyhub/internal/pkg/jwt"
)

// Dependencies is everything the router needs from main.
type Dependencies struct {
	Client  backend.Client
	Counter stats.Counter
	// Cache may be nil.
	Cache    stats.Cache
	CacheTTL time.Duration
	JWT      *jwt.Service
	Origins  []string
	Log      *slog.Logger
}

// NewRouter wires services and handlers onto a fresh engine. The returned
// hub is the one booking writes publish to.
func NewRouter(deps Dependencies) (*gin.Engine, *realtime.Hub) {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	if deps.Counter == nil {
		deps.Counter = stats.NewClientCounter(deps.Client)
	}

	// Repositories & services
	profiles := profile.NewRepository(deps.Client)
	profileService := profile.NewService(profiles)
	statsService := stats.NewService(deps.Counter, deps.Cache, deps.CacheTTL, log)
	handymanService := handyman.NewService(handyman.NewRepository(deps.Client), statsService, log)
	authService := auth.NewService(profiles, handymanService, deps.JWT, log)
	catalogService := catalog.NewCatalog(catalog.NewRepository(deps.Client), log)
	inquiryService := inquiry.NewService(inquiry.NewRepository(deps.Client), statsService, log)

	hub := realtime.NewHub(log)
	bookingService := booking.NewService(
		booking.NewStore(deps.Client),
		catalogService,
		handymanService,
		statsService,
		hub,
		log,
	)
	composer := dashboard.NewComposer(bookingService, catalogService, profileService, handymanService, statsService)

	// Handlers
	authHandler := auth.NewHandler(authService, profileService)
	catalogHandler := catalog.NewHandler(catalogService)
	handymanHandler := handyman.NewHandler(handymanService)
	bookingHandler := booking.NewHandler(bookingService)
	dashboardHandler := dashboard.NewHandler(composer)
	inquiryHandler := inquiry.NewHandler(inquiryService)
	statsHandler := stats.NewHandler(statsService)
	realtimeHandler := realtime.NewHandler(hub, deps.JWT, middleware.Origins(deps.Origins))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(log),
		middleware.AccessLog(log),
		middleware.CORS(deps.Origins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// Public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		handymanHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		inquiry.RegisterPublicRoutes(v1, inquiryHandler)
		// websocket authenticates from the query string
		realtimeHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(deps.JWT))
		{
			authHandler.RegisterProtectedRoutes(protected)
			handymanHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(deps.JWT), middleware.AdminOnly())
		{
			catalogHandler.RegisterAdminRoutes(admin)
			handymanHandler.RegisterAdminRoutes(admin)
			bookingHandler.RegisterAdminRoutes(admin)
			inquiry.RegisterAdminRoutes(admin, inquiryHandler)
			statsHandler.RegisterAdminRoutes(admin)
		}
	}

	return r, hub
}
