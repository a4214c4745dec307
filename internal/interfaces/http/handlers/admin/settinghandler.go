package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	settingusecases "github.com/quiniela-inc/quiniela/internal/application/setting/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/handlers/common"
	"github.com/quiniela-inc/quiniela/internal/shared/authorization"
	"github.com/quiniela-inc/quiniela/internal/shared/constants"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
	"github.com/quiniela-inc/quiniela/internal/shared/utils"
)

// SettingHandler exposes the override cascade to administrators: reading
// resolved values and writing or deleting overrides at a given scope.
type SettingHandler struct {
	resolve    *settingusecases.ResolveSettingUseCase
	resolveAll *settingusecases.ResolveAllSettingsUseCase
	upsert     *settingusecases.UpsertSettingUseCase
	delete     *settingusecases.DeleteSettingUseCase
	logger     logger.Interface
}

func NewSettingHandler(
	resolve *settingusecases.ResolveSettingUseCase,
	resolveAll *settingusecases.ResolveAllSettingsUseCase,
	upsert *settingusecases.UpsertSettingUseCase,
	del *settingusecases.DeleteSettingUseCase,
	logger logger.Interface,
) *SettingHandler {
	return &SettingHandler{
		resolve:    resolve,
		resolveAll: resolveAll,
		upsert:     upsert,
		delete:     del,
		logger:     logger,
	}
}

// ResolveAll returns every registered key resolved for the addressed scope,
// each value tagged with the cascade level it came from.
// GET /api/v1/admin/settings?poolId=...
func (h *SettingHandler) ResolveAll(c *gin.Context) {
	result, err := h.resolveAll.Execute(c.Request.Context(), settingusecases.ResolveAllSettingsQuery{
		TenantSID: c.GetString(constants.ContextKeyTenantSID),
		PoolSID:   c.Query("poolId"),
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Resolve returns one key resolved for the addressed scope.
// GET /api/v1/admin/settings/:key?poolId=...
func (h *SettingHandler) Resolve(c *gin.Context) {
	result, err := h.resolve.Execute(c.Request.Context(), settingusecases.ResolveSettingQuery{
		TenantSID: c.GetString(constants.ContextKeyTenantSID),
		PoolSID:   c.Query("poolId"),
		Key:       c.Param("key"),
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type upsertSettingRequest struct {
	Scope  string `json:"scope" binding:"required"`
	PoolID string `json:"poolId"`
	Value  string `json:"value" binding:"required"`
}

// Upsert creates or replaces one override. GLOBAL writes are the platform
// operator's alone; TENANT and POOL writes apply to the addressed tenant.
// PUT /api/v1/admin/settings/:key
func (h *SettingHandler) Upsert(c *gin.Context) {
	var req upsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	scope := setting.Scope(req.Scope)
	if !h.allowScope(c, scope) {
		return
	}

	result, err := h.upsert.Execute(c.Request.Context(), settingusecases.UpsertSettingCommand{
		Scope:     scope,
		TenantSID: h.tenantRefFor(c, scope),
		PoolSID:   req.PoolID,
		Key:       c.Param("key"),
		Value:     req.Value,
		UpdatedBy: c.GetUint(constants.ContextKeyUserID),
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "setting saved", result)
}

// Delete removes one override, restoring fall-through to the next level.
// DELETE /api/v1/admin/settings/:key?scope=...&poolId=...
func (h *SettingHandler) Delete(c *gin.Context) {
	scope := setting.Scope(c.Query("scope"))
	if !h.allowScope(c, scope) {
		return
	}

	err := h.delete.Execute(c.Request.Context(), settingusecases.DeleteSettingCommand{
		Scope:     scope,
		TenantSID: h.tenantRefFor(c, scope),
		PoolSID:   c.Query("poolId"),
		Key:       c.Param("key"),
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.NoContentResponse(c)
}

// allowScope enforces who may write at each cascade level.
func (h *SettingHandler) allowScope(c *gin.Context, scope setting.Scope) bool {
	if !scope.IsValid() {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid setting scope")
		return false
	}
	if scope == setting.ScopeGlobal {
		role := authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
		if !role.IsSuperadmin() {
			utils.ErrorResponse(c, http.StatusForbidden, "global settings require superadmin access")
			return false
		}
	}
	return true
}

// tenantRefFor returns the tenant SID the override row should reference.
// GLOBAL rows reference no tenant regardless of the addressed one.
func (h *SettingHandler) tenantRefFor(c *gin.Context, scope setting.Scope) string {
	if scope == setting.ScopeGlobal {
		return ""
	}
	return c.GetString(constants.ContextKeyTenantSID)
}
