package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	accessusecases "github.com/quiniela-inc/quiniela/internal/application/access/usecases"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/handlers/common"
	"github.com/quiniela-inc/quiniela/internal/shared/constants"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
	"github.com/quiniela-inc/quiniela/internal/shared/utils"
)

// CodeBatchHandler exposes invite code minting and batch-level pause and
// resume for CODE pools.
type CodeBatchHandler struct {
	createBatch *accessusecases.CreateCodeBatchUseCase
	pauseBatch  *accessusecases.PauseCodeBatchUseCase
	logger      logger.Interface
}

func NewCodeBatchHandler(
	createBatch *accessusecases.CreateCodeBatchUseCase,
	pauseBatch *accessusecases.PauseCodeBatchUseCase,
	logger logger.Interface,
) *CodeBatchHandler {
	return &CodeBatchHandler{
		createBatch: createBatch,
		pauseBatch:  pauseBatch,
		logger:      logger,
	}
}

type createCodeBatchRequest struct {
	Name        string     `json:"name" binding:"required"`
	CodeCount   int        `json:"codeCount" binding:"required,min=1"`
	UsesPerCode int        `json:"usesPerCode" binding:"required,min=1"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// Create mints a batch of invite codes. The plaintext codes appear in this
// response only; afterwards the batch exposes counters, not codes.
// POST /api/v1/admin/pools/:poolSid/code-batches
func (h *CodeBatchHandler) Create(c *gin.Context) {
	var req createCodeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.createBatch.Execute(c.Request.Context(), accessusecases.CreateCodeBatchCommand{
		TenantID:    c.GetUint(constants.ContextKeyTenantID),
		PoolSID:     c.Param("poolSid"),
		Name:        req.Name,
		CodeCount:   req.CodeCount,
		UsesPerCode: req.UsesPerCode,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.CreatedResponse(c, result, "code batch created")
}

// Pause suspends every code in the batch. Players who registered through a
// paused code lose access until the batch is resumed.
// POST /api/v1/admin/pools/:poolSid/code-batches/:batchSid/pause
func (h *CodeBatchHandler) Pause(c *gin.Context) {
	h.setPaused(c, false)
}

// Resume lifts a batch pause, restoring each code to the status its
// counters imply.
// POST /api/v1/admin/pools/:poolSid/code-batches/:batchSid/resume
func (h *CodeBatchHandler) Resume(c *gin.Context) {
	h.setPaused(c, true)
}

func (h *CodeBatchHandler) setPaused(c *gin.Context, resume bool) {
	err := h.pauseBatch.Execute(c.Request.Context(), accessusecases.PauseCodeBatchCommand{
		TenantID: c.GetUint(constants.ContextKeyTenantID),
		BatchSID: c.Param("batchSid"),
		Resume:   resume,
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	if resume {
		utils.SuccessResponse(c, http.StatusOK, "code batch resumed", nil)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "code batch paused", nil)
}
