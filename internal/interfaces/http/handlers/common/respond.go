package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	accessusecases "github.com/quiniela-inc/quiniela/internal/application/access/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/domain/prediction"
	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/domain/tenant"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
	"github.com/quiniela-inc/quiniela/internal/shared/utils"
)

// RespondError translates application and domain errors into HTTP responses.
// Admission denials carry their stable reason code so clients can branch
// without parsing text; misconfiguration is a server fault and says so.
func RespondError(c *gin.Context, log logger.Interface, err error) {
	var denied *access.DeniedError
	if errors.As(err, &denied) {
		utils.ReasonResponse(c, http.StatusForbidden, string(denied.Reason), denied.Message)
		return
	}

	var misconfigured *access.ConfigError
	if errors.As(err, &misconfigured) {
		log.Errorw("access configuration fault", "path", c.Request.URL.Path, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "pool access is misconfigured")
		return
	}

	switch {
	case errors.Is(err, pool.ErrPoolNotFound),
		errors.Is(err, tenant.ErrTenantNotFound),
		errors.Is(err, access.ErrBatchNotFound),
		errors.Is(err, access.ErrInvitationNotFound),
		errors.Is(err, prediction.ErrMatchNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())

	case errors.Is(err, access.ErrRegistrationExists):
		utils.ErrorResponse(c, http.StatusConflict, "user is already registered for this pool")

	case errors.Is(err, accessusecases.ErrPoolClosed),
		errors.Is(err, accessusecases.ErrRegistrationWindow),
		errors.Is(err, accessusecases.ErrPoolFull),
		errors.Is(err, accessusecases.ErrAccessTypeMismatch),
		errors.Is(err, access.ErrInvitationNotPending):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())

	case errors.Is(err, accessusecases.ErrEmailDomainNotAllowed):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, accessusecases.ErrCaptchaRequired),
		errors.Is(err, accessusecases.ErrCaptchaFailed):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, prediction.ErrPredictionsLocked):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())

	case errors.Is(err, setting.ErrUnknownSettingKey),
		errors.Is(err, setting.ErrInvalidValue),
		errors.Is(err, setting.ErrInvalidScope),
		errors.Is(err, setting.ErrGlobalScopeIDs),
		errors.Is(err, setting.ErrTenantScopeIDs),
		errors.Is(err, setting.ErrPoolScopeIDs):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())

	default:
		log.Errorw("request failed", "path", c.Request.URL.Path, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}
