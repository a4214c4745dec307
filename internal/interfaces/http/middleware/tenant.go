package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quiniela-inc/quiniela/internal/domain/tenant"
	"github.com/quiniela-inc/quiniela/internal/shared/authorization"
	"github.com/quiniela-inc/quiniela/internal/shared/constants"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
	"github.com/quiniela-inc/quiniela/internal/shared/utils"
)

// TenantMiddleware resolves the tenant addressed by the X-Tenant header.
// Every tenant-scoped route runs behind it; routes without a tenant context
// (health, superadmin listings) skip it.
type TenantMiddleware struct {
	tenantRepo tenant.Repository
	logger     logger.Interface
}

func NewTenantMiddleware(tenantRepo tenant.Repository, logger logger.Interface) *TenantMiddleware {
	return &TenantMiddleware{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// Resolve loads the tenant named by the X-Tenant slug and stores its ID and
// SID in the request context. Suspended tenants are refused outright. When
// the request carries token claims bound to a tenant, the claims must match
// the addressed tenant; superadmin tokens may address any tenant.
func (m *TenantMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.GetHeader(constants.HeaderXTenant)
		if slug == "" {
			utils.ErrorResponse(c, http.StatusBadRequest, "missing X-Tenant header")
			c.Abort()
			return
		}

		t, err := m.tenantRepo.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, tenant.ErrTenantNotFound) {
				utils.ErrorResponse(c, http.StatusNotFound, "unknown tenant")
				c.Abort()
				return
			}
			m.logger.Errorw("failed to resolve tenant", "slug", slug, "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to resolve tenant")
			c.Abort()
			return
		}

		if !t.IsActive() {
			utils.ErrorResponse(c, http.StatusForbidden, "tenant is suspended")
			c.Abort()
			return
		}

		role := authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
		if claimsTenant := c.GetString(constants.ContextKeyTenantSID); claimsTenant != "" &&
			claimsTenant != t.SID() && !role.IsSuperadmin() {
			utils.ReasonResponse(c, http.StatusForbidden, "TENANT_MISMATCH", "token is not valid for this tenant")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTenantID, t.ID())
		c.Set(constants.ContextKeyTenantSID, t.SID())
		c.Next()
	}
}
