package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	predictionusecases "github.com/quiniela-inc/quiniela/internal/application/prediction/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/prediction"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/handlers/common"
	"github.com/quiniela-inc/quiniela/internal/shared/constants"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
	"github.com/quiniela-inc/quiniela/internal/shared/utils"
)

// PredictionHandler exposes pick submission, the protected action behind the
// per-request access re-check.
type PredictionHandler struct {
	savePrediction *predictionusecases.SavePredictionUseCase
	logger         logger.Interface
}

func NewPredictionHandler(savePrediction *predictionusecases.SavePredictionUseCase, logger logger.Interface) *PredictionHandler {
	return &PredictionHandler{
		savePrediction: savePrediction,
		logger:         logger,
	}
}

type savePredictionRequest struct {
	MatchID   string `json:"matchId" binding:"required"`
	HomeGoals *int   `json:"homeGoals" binding:"required"`
	AwayGoals *int   `json:"awayGoals" binding:"required"`
}

type predictionResponse struct {
	MatchID   string `json:"matchId"`
	HomeGoals int    `json:"homeGoals"`
	AwayGoals int    `json:"awayGoals"`
	Points    *int   `json:"points,omitempty"`
	UpdatedAt string `json:"updatedAt"`
}

// SavePrediction stores or replaces the caller's pick for one match.
// POST /api/v1/pools/:poolSid/predictions
func (h *PredictionHandler) SavePrediction(c *gin.Context) {
	var req savePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	pick, err := h.savePrediction.Execute(c.Request.Context(), predictionusecases.SavePredictionCommand{
		TenantID:  c.GetUint(constants.ContextKeyTenantID),
		TenantSID: c.GetString(constants.ContextKeyTenantSID),
		PoolSID:   c.Param("poolSid"),
		UserID:    c.GetUint(constants.ContextKeyUserID),
		MatchSID:  req.MatchID,
		HomeGoals: *req.HomeGoals,
		AwayGoals: *req.AwayGoals,
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "prediction saved", toPredictionResponse(req.MatchID, pick))
}

func toPredictionResponse(matchSID string, p *prediction.Prediction) predictionResponse {
	return predictionResponse{
		MatchID:   matchSID,
		HomeGoals: p.HomeGoals(),
		AwayGoals: p.AwayGoals(),
		Points:    p.Points(),
		UpdatedAt: p.UpdatedAt().UTC().Format(time.RFC3339),
	}
}
