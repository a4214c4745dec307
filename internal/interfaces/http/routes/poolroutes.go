package routes

import (
	"github.com/gin-gonic/gin"

	settingusecases "github.com/quiniela-inc/quiniela/internal/application/setting/usecases"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/ratelimit"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/handlers"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/middleware"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

// RegisterPoolRoutes mounts the player-facing pool surface: pre-flight
// credential checks, the three registration modes and pick submission.
func RegisterPoolRoutes(
	rg *gin.RouterGroup,
	accessHandler *handlers.AccessHandler,
	predictionHandler *handlers.PredictionHandler,
	authMW *middleware.AuthMiddleware,
	tenantMW *middleware.TenantMiddleware,
	limiter ratelimit.RateLimiter,
	values *settingusecases.Values,
	log logger.Interface,
) {
	pools := rg.Group("/pools/:poolSid")
	pools.Use(authMW.OptionalAuth(), tenantMW.Resolve())

	// Pre-flight checks are public: the registration form runs them before
	// the user has authenticated.
	pools.GET("/codes/:code/validate", accessHandler.ValidateCode)
	pools.GET("/invitations/:token/validate", accessHandler.ValidateInvitation)

	register := pools.Group("/register")
	register.Use(authMW.RequireAuth(), middleware.RegistrationRateLimit(limiter, values, log))
	register.POST("/public", accessHandler.RegisterPublic)
	register.POST("/code", accessHandler.RegisterWithCode)
	register.POST("/invite", accessHandler.RegisterWithInvitation)

	pools.POST("/predictions", authMW.RequireAuth(), predictionHandler.SavePrediction)
}
