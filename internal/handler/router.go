package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"parking-booking/internal/domain/user"
	"parking-booking/internal/handler/api"
	"parking-booking/internal/handler/middleware"
	"parking-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Bookings *api.BookingHandler
	Slots    *api.SlotHandler
	Admin    *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.NewRateLimiter(cfg.RateLimit).Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		// availability is public
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/slots/:id/availability", Handler: h.Slots.Availability},
			{Method: http.MethodGet, Path: "/locations/:id/available-slots", Handler: h.Slots.AvailableSlots},
		})

		authed := apiGroup.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			addRoutes(authed, []route{
				{Method: http.MethodPost, Path: "/bookings", Handler: h.Bookings.Create},
				{Method: http.MethodGet, Path: "/bookings", Handler: h.Bookings.List},
				{Method: http.MethodGet, Path: "/bookings/:id", Handler: h.Bookings.Get},
				{Method: http.MethodPost, Path: "/bookings/:id/cancel", Handler: h.Bookings.Cancel},
				{Method: http.MethodPost, Path: "/bookings/:id/payments", Handler: h.Bookings.Charge},
				{Method: http.MethodGet, Path: "/bookings/:id/payment", Handler: h.Bookings.GetPayment},
				{Method: http.MethodGet, Path: "/payments", Handler: h.Bookings.ListPayments},
			})

			ownerOrAdmin := []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleOwner, user.RoleAdmin)}
			addRoutes(authed, []route{
				{Method: http.MethodGet, Path: "/slots/:id/bookings", Handler: h.Slots.ListBookingsBySlot, Mw: ownerOrAdmin},
				{Method: http.MethodGet, Path: "/locations/:id/bookings", Handler: h.Slots.ListBookingsByLocation, Mw: ownerOrAdmin},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/bookings", Handler: h.Admin.ListBookings},
				{Method: http.MethodGet, Path: "/payments", Handler: h.Admin.ListPayments},
				{Method: http.MethodGet, Path: "/stats", Handler: h.Admin.Stats},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
