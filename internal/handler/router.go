package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"swimbooking/internal/domain/user"
	"swimbooking/internal/handler/api"
	"swimbooking/internal/handler/middleware"
	"swimbooking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine         *gin.Engine
	Config         config.Config
	AuthHandler    *api.AuthHandler
	BookingHandler *api.BookingHandler
	SessionHandler *api.SessionHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

func NewRouter(p RouterParams) {
	setupMiddleware(p.Engine, p.Config)
	setupRoutes(p)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := p.AuthMiddleware.RequireAuth()
	adminOnly := p.AuthMiddleware.RequireRole(user.RoleAdmin)
	limited := p.RateLimiter.Limit()

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: p.AuthHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(requireAuth)
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: p.AuthHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: p.AuthHandler.Me},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(requireAuth)
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: p.BookingHandler.Create, Mw: []gin.HandlerFunc{limited}},
				{Method: http.MethodPost, Path: "/recurring", Handler: p.BookingHandler.CreateRecurring, Mw: []gin.HandlerFunc{limited}},
				{Method: http.MethodPost, Path: "/cancel-block", Handler: p.BookingHandler.CancelBlock, Mw: []gin.HandlerFunc{limited}},
				{Method: http.MethodPost, Path: "/bulk", Handler: p.BookingHandler.Bulk, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodGet, Path: "/:id", Handler: p.BookingHandler.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: p.BookingHandler.CancelByParent, Mw: []gin.HandlerFunc{limited}},
				{Method: http.MethodPost, Path: "/:id/reschedule", Handler: p.BookingHandler.Reschedule, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		authed := apiGroup.Group("")
		authed.Use(requireAuth)
		{
			addRoutes(authed, []route{
				{Method: http.MethodGet, Path: "/swimmers/:id/bookings", Handler: p.BookingHandler.ListForSwimmer},
				{Method: http.MethodGet, Path: "/sessions/:id", Handler: p.SessionHandler.Get},
				{Method: http.MethodGet, Path: "/parents/:id/floating-sessions", Handler: p.SessionHandler.ListFloating},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(requireAuth, adminOnly)
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/bookings/:id/cancel", Handler: p.BookingHandler.CancelByAdmin},
				{Method: http.MethodPost, Path: "/bookings/:id/complete", Handler: p.BookingHandler.Complete},
				{Method: http.MethodPost, Path: "/sessions/:id/close", Handler: p.SessionHandler.Close},
				{Method: http.MethodGet, Path: "/sessions/count-drift", Handler: p.SessionHandler.CountDrift},
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
