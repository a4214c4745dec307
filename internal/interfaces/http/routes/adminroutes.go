package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/quiniela-inc/quiniela/internal/interfaces/http/handlers/admin"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/middleware"
	"github.com/quiniela-inc/quiniela/internal/shared/authorization"
)

// RegisterAdminRoutes mounts the administration surface. Everything here
// requires an authenticated tenant admin of the addressed tenant; GLOBAL
// setting writes additionally require superadmin, enforced in the handler.
func RegisterAdminRoutes(
	rg *gin.RouterGroup,
	settingHandler *admin.SettingHandler,
	poolHandler *admin.PoolHandler,
	codeBatchHandler *admin.CodeBatchHandler,
	invitationHandler *admin.InvitationHandler,
	matchHandler *admin.MatchHandler,
	authMW *middleware.AuthMiddleware,
	tenantMW *middleware.TenantMiddleware,
) {
	adm := rg.Group("/admin")
	adm.Use(authMW.RequireAuth(), tenantMW.Resolve(), authorization.RequireTenantAdmin())

	settings := adm.Group("/settings")
	settings.GET("", settingHandler.ResolveAll)
	settings.GET("/:key", settingHandler.Resolve)
	settings.PUT("/:key", settingHandler.Upsert)
	settings.DELETE("/:key", settingHandler.Delete)

	pools := adm.Group("/pools")
	pools.POST("", poolHandler.Create)
	pools.PUT("/:poolSid/status", poolHandler.UpdateStatus)
	pools.PUT("/:poolSid/policy", poolHandler.UpdatePolicy)

	pools.POST("/:poolSid/code-batches", codeBatchHandler.Create)
	pools.POST("/:poolSid/code-batches/:batchSid/pause", codeBatchHandler.Pause)
	pools.POST("/:poolSid/code-batches/:batchSid/resume", codeBatchHandler.Resume)

	pools.POST("/:poolSid/invitations", invitationHandler.Create)
	pools.POST("/:poolSid/invitations/:invitationSid/resend", invitationHandler.Resend)

	pools.POST("/:poolSid/matches", matchHandler.Create)
	pools.POST("/:poolSid/matches/:matchSid/result", matchHandler.RecordResult)
}
