package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quiniela-inc/quiniela/internal/infrastructure/config"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/middleware"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/routes"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

// Router owns the gin engine and mounts the API surface.
type Router struct {
	engine    *gin.Engine
	container *Container
	cfg       *config.Config
	logger    logger.Interface
}

func NewRouter(container *Container, cfg *config.Config, log logger.Interface) *Router {
	return &Router{
		engine:    gin.New(),
		container: container,
		cfg:       cfg,
		logger:    log.With("component", "router"),
	}
}

// Setup installs middleware and routes and returns the engine ready to serve.
func (r *Router) Setup() *gin.Engine {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestLogger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.ErrorHandler())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")

	routes.RegisterPoolRoutes(
		api,
		r.container.AccessHandler,
		r.container.PredictionHandler,
		r.container.AuthMiddleware,
		r.container.TenantMiddleware,
		r.container.RateLimiter,
		r.container.Values,
		r.logger,
	)

	routes.RegisterAdminRoutes(
		api,
		r.container.SettingHandler,
		r.container.PoolHandler,
		r.container.CodeBatchHandler,
		r.container.InvitationHandler,
		r.container.MatchHandler,
		r.container.AuthMiddleware,
		r.container.TenantMiddleware,
	)

	return r.engine
}
