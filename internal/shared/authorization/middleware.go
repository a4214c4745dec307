package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/quiniela-inc/quiniela/internal/shared/constants"
)

// RequireTenantAdmin allows tenant administrators and superadmins through.
func RequireTenantAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ParseUserRole(c.GetString(constants.ContextKeyUserRole))
		if !role.IsTenantAdmin() {
			c.JSON(403, gin.H{
				"error": "tenant admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperadmin allows only platform superadmins through.
func RequireSuperadmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ParseUserRole(c.GetString(constants.ContextKeyUserRole))
		if !role.IsSuperadmin() {
			c.JSON(403, gin.H{
				"error": "superadmin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
