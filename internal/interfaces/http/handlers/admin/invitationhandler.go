package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accessusecases "github.com/quiniela-inc/quiniela/internal/application/access/usecases"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/handlers/common"
	"github.com/quiniela-inc/quiniela/internal/shared/constants"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
	"github.com/quiniela-inc/quiniela/internal/shared/utils"
)

// InvitationHandler exposes email invitation administration for
// EMAIL_INVITE pools.
type InvitationHandler struct {
	createInvitation *accessusecases.CreateInvitationUseCase
	resendInvitation *accessusecases.ResendInvitationUseCase
	logger           logger.Interface
}

func NewInvitationHandler(
	createInvitation *accessusecases.CreateInvitationUseCase,
	resendInvitation *accessusecases.ResendInvitationUseCase,
	logger logger.Interface,
) *InvitationHandler {
	return &InvitationHandler{
		createInvitation: createInvitation,
		resendInvitation: resendInvitation,
		logger:           logger,
	}
}

type createInvitationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Create issues an invitation for one email address and sends it when a
// mailer is configured.
// POST /api/v1/admin/pools/:poolSid/invitations
func (h *InvitationHandler) Create(c *gin.Context) {
	var req createInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.createInvitation.Execute(c.Request.Context(), accessusecases.CreateInvitationCommand{
		TenantID:  c.GetUint(constants.ContextKeyTenantID),
		TenantSID: c.GetString(constants.ContextKeyTenantSID),
		PoolSID:   c.Param("poolSid"),
		Email:     req.Email,
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.CreatedResponse(c, result, "invitation created")
}

// Resend re-delivers a pending invitation and bumps its send counter.
// POST /api/v1/admin/pools/:poolSid/invitations/:invitationSid/resend
func (h *InvitationHandler) Resend(c *gin.Context) {
	result, err := h.resendInvitation.Execute(c.Request.Context(), accessusecases.ResendInvitationCommand{
		TenantID:      c.GetUint(constants.ContextKeyTenantID),
		PoolSID:       c.Param("poolSid"),
		InvitationSID: c.Param("invitationSid"),
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "invitation resent", result)
}
