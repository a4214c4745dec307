package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accessusecases "github.com/quiniela-inc/quiniela/internal/application/access/usecases"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/handlers/common"
	"github.com/quiniela-inc/quiniela/internal/shared/constants"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
	"github.com/quiniela-inc/quiniela/internal/shared/utils"
)

// AccessHandler exposes the admission surface of a pool: the pre-flight
// credential checks and the three registration modes.
type AccessHandler struct {
	validateCode       *accessusecases.ValidateCodeUseCase
	validateInvitation *accessusecases.ValidateInvitationUseCase
	registerPublic     *accessusecases.RegisterPublicUseCase
	registerWithCode   *accessusecases.RegisterWithCodeUseCase
	registerWithInvite *accessusecases.RegisterWithInvitationUseCase
	logger             logger.Interface
}

func NewAccessHandler(
	validateCode *accessusecases.ValidateCodeUseCase,
	validateInvitation *accessusecases.ValidateInvitationUseCase,
	registerPublic *accessusecases.RegisterPublicUseCase,
	registerWithCode *accessusecases.RegisterWithCodeUseCase,
	registerWithInvite *accessusecases.RegisterWithInvitationUseCase,
	logger logger.Interface,
) *AccessHandler {
	return &AccessHandler{
		validateCode:       validateCode,
		validateInvitation: validateInvitation,
		registerPublic:     registerPublic,
		registerWithCode:   registerWithCode,
		registerWithInvite: registerWithInvite,
		logger:             logger,
	}
}

// ValidateCode answers the pre-flight "is this code usable" question.
// GET /api/v1/pools/:poolSid/codes/:code/validate
func (h *AccessHandler) ValidateCode(c *gin.Context) {
	result, err := h.validateCode.Execute(c.Request.Context(), accessusecases.ValidateCodeQuery{
		TenantID: c.GetUint(constants.ContextKeyTenantID),
		PoolSID:  c.Param("poolSid"),
		Code:     c.Param("code"),
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ValidateInvitation answers the pre-flight check for an invitation token.
// GET /api/v1/pools/:poolSid/invitations/:token/validate
func (h *AccessHandler) ValidateInvitation(c *gin.Context) {
	result, err := h.validateInvitation.Execute(c.Request.Context(), accessusecases.ValidateInvitationQuery{
		Token: c.Param("token"),
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type registerRequest struct {
	DisplayName  string `json:"displayName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	CaptchaToken string `json:"captchaToken"`
	Code         string `json:"code"`
	Token        string `json:"token"`
}

// RegisterPublic admits the caller into an open pool.
// POST /api/v1/pools/:poolSid/register/public
func (h *AccessHandler) RegisterPublic(c *gin.Context) {
	cmd, ok := h.bindRegistration(c)
	if !ok {
		return
	}
	result, err := h.registerPublic.Execute(c.Request.Context(), cmd)
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.CreatedResponse(c, result, "registered")
}

// RegisterWithCode admits the caller into a CODE pool, consuming one use of
// the submitted invite code.
// POST /api/v1/pools/:poolSid/register/code
func (h *AccessHandler) RegisterWithCode(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}
	result, err := h.registerWithCode.Execute(c.Request.Context(), accessusecases.RegisterWithCodeCommand{
		RegistrationCommand: h.commandFrom(c, req),
		Code:                req.Code,
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.CreatedResponse(c, result, "registered")
}

// RegisterWithInvitation admits the caller into an EMAIL_INVITE pool,
// accepting the submitted invitation token.
// POST /api/v1/pools/:poolSid/register/invite
func (h *AccessHandler) RegisterWithInvitation(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}
	result, err := h.registerWithInvite.Execute(c.Request.Context(), accessusecases.RegisterWithInvitationCommand{
		RegistrationCommand: h.commandFrom(c, req),
		Token:               req.Token,
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.CreatedResponse(c, result, "registered")
}

func (h *AccessHandler) bindRegistration(c *gin.Context) (accessusecases.RegistrationCommand, bool) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return accessusecases.RegistrationCommand{}, false
	}
	return h.commandFrom(c, req), true
}

func (h *AccessHandler) commandFrom(c *gin.Context, req registerRequest) accessusecases.RegistrationCommand {
	return accessusecases.RegistrationCommand{
		TenantID:     c.GetUint(constants.ContextKeyTenantID),
		TenantSID:    c.GetString(constants.ContextKeyTenantSID),
		PoolSID:      c.Param("poolSid"),
		UserID:       c.GetUint(constants.ContextKeyUserID),
		UserSID:      c.GetString(constants.ContextKeyUserSID),
		DisplayName:  req.DisplayName,
		Email:        req.Email,
		Phone:        req.Phone,
		CaptchaToken: req.CaptchaToken,
		ClientIP:     c.ClientIP(),
	}
}
