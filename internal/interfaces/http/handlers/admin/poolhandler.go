package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	poolusecases "github.com/quiniela-inc/quiniela/internal/application/pool/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/handlers/common"
	"github.com/quiniela-inc/quiniela/internal/shared/constants"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
	"github.com/quiniela-inc/quiniela/internal/shared/utils"
)

// PoolHandler exposes pool administration: creating a pool with its access
// policy, moving it through its lifecycle, and tuning the policy constraints.
type PoolHandler struct {
	createPool   *poolusecases.CreatePoolUseCase
	updateStatus *poolusecases.UpdatePoolStatusUseCase
	updatePolicy *poolusecases.UpdatePolicyUseCase
	logger       logger.Interface
}

func NewPoolHandler(
	createPool *poolusecases.CreatePoolUseCase,
	updateStatus *poolusecases.UpdatePoolStatusUseCase,
	updatePolicy *poolusecases.UpdatePolicyUseCase,
	logger logger.Interface,
) *PoolHandler {
	return &PoolHandler{
		createPool:   createPool,
		updateStatus: updateStatus,
		updatePolicy: updatePolicy,
		logger:       logger,
	}
}

type createPoolRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	AccessType  string `json:"accessType" binding:"required"`

	RequireCaptcha        bool       `json:"requireCaptcha"`
	DomainAllowList       []string   `json:"domainAllowList"`
	MaxRegistrations      *int       `json:"maxRegistrations"`
	RegistrationStartDate *time.Time `json:"registrationStartDate"`
	RegistrationEndDate   *time.Time `json:"registrationEndDate"`
}

type poolResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	Policy      *policyResponse `json:"policy,omitempty"`
	CreatedAt   string          `json:"createdAt"`
}

type policyResponse struct {
	AccessType            string     `json:"accessType"`
	RequireCaptcha        bool       `json:"requireCaptcha"`
	DomainAllowList       []string   `json:"domainAllowList,omitempty"`
	MaxRegistrations      *int       `json:"maxRegistrations,omitempty"`
	RegistrationStartDate *time.Time `json:"registrationStartDate,omitempty"`
	RegistrationEndDate   *time.Time `json:"registrationEndDate,omitempty"`
}

// Create creates a pool together with its access policy.
// POST /api/v1/admin/pools
func (h *PoolHandler) Create(c *gin.Context) {
	var req createPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.createPool.Execute(c.Request.Context(), poolusecases.CreatePoolCommand{
		TenantID:              c.GetUint(constants.ContextKeyTenantID),
		Name:                  req.Name,
		Description:           req.Description,
		AccessType:            access.AccessType(req.AccessType),
		RequireCaptcha:        req.RequireCaptcha,
		DomainAllowList:       req.DomainAllowList,
		MaxRegistrations:      req.MaxRegistrations,
		RegistrationStartDate: req.RegistrationStartDate,
		RegistrationEndDate:   req.RegistrationEndDate,
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.CreatedResponse(c, toPoolResponse(result.Pool, result.Policy), "pool created")
}

type updatePoolStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves a pool through DRAFT, ACTIVE and ARCHIVED.
// PUT /api/v1/admin/pools/:poolSid/status
func (h *PoolHandler) UpdateStatus(c *gin.Context) {
	var req updatePoolStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	p, err := h.updateStatus.Execute(c.Request.Context(), poolusecases.UpdatePoolStatusCommand{
		TenantID: c.GetUint(constants.ContextKeyTenantID),
		PoolSID:  c.Param("poolSid"),
		Status:   pool.PoolStatus(req.Status),
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "pool status updated", toPoolResponse(p, nil))
}

type updatePolicyRequest struct {
	RequireCaptcha        *bool      `json:"requireCaptcha"`
	DomainAllowList       *[]string  `json:"domainAllowList"`
	MaxRegistrations      *int       `json:"maxRegistrations"`
	ClearMaxRegistrations bool       `json:"clearMaxRegistrations"`
	RegistrationStartDate *time.Time `json:"registrationStartDate"`
	RegistrationEndDate   *time.Time `json:"registrationEndDate"`
	SetRegistrationWindow bool       `json:"setRegistrationWindow"`
}

// UpdatePolicy changes the constraint fields of a pool's access policy. The
// access type itself cannot change after creation.
// PUT /api/v1/admin/pools/:poolSid/policy
func (h *PoolHandler) UpdatePolicy(c *gin.Context) {
	var req updatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	cmd := poolusecases.UpdatePolicyCommand{
		TenantID:              c.GetUint(constants.ContextKeyTenantID),
		PoolSID:               c.Param("poolSid"),
		RequireCaptcha:        req.RequireCaptcha,
		RegistrationStartDate: req.RegistrationStartDate,
		RegistrationEndDate:   req.RegistrationEndDate,
		SetRegistrationWindow: req.SetRegistrationWindow,
	}
	if req.DomainAllowList != nil {
		cmd.DomainAllowList = *req.DomainAllowList
		cmd.SetDomainAllowList = true
	}
	if req.MaxRegistrations != nil || req.ClearMaxRegistrations {
		cmd.MaxRegistrations = req.MaxRegistrations
		cmd.SetMaxRegistrations = true
	}

	policy, err := h.updatePolicy.Execute(c.Request.Context(), cmd)
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "policy updated", toPolicyResponse(policy))
}

func toPoolResponse(p *pool.Pool, policy *access.Policy) poolResponse {
	out := poolResponse{
		ID:          p.SID(),
		Name:        p.Name(),
		Description: p.Description(),
		Status:      string(p.Status()),
		CreatedAt:   p.CreatedAt().UTC().Format(time.RFC3339),
	}
	if policy != nil {
		resp := toPolicyResponse(policy)
		out.Policy = &resp
	}
	return out
}

func toPolicyResponse(policy *access.Policy) policyResponse {
	return policyResponse{
		AccessType:            string(policy.AccessType()),
		RequireCaptcha:        policy.RequireCaptcha(),
		DomainAllowList:       policy.DomainAllowList(),
		MaxRegistrations:      policy.MaxRegistrations(),
		RegistrationStartDate: policy.RegistrationStartDate(),
		RegistrationEndDate:   policy.RegistrationEndDate(),
	}
}
