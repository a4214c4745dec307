package admin

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

// MatchHandler exposes fixture administration: creating matches and
// recording final results, which scores every stored pick.
type MatchHandler struct {
	createMatch  *predictionusecases.CreateMatchUseCase
	recordResult *predictionusecases.RecordResultUseCase
	logger       logger.Interface
}

func NewMatchHandler(
	createMatch *predictionusecases.CreateMatchUseCase,
	recordResult *predictionusecases.RecordResultUseCase,
	logger logger.Interface,
) *MatchHandler {
	return &MatchHandler{
		createMatch:  createMatch,
		recordResult: recordResult,
		logger:       logger,
	}
}

type createMatchRequest struct {
	HomeTeam  string    `json:"homeTeam" binding:"required"`
	AwayTeam  string    `json:"awayTeam" binding:"required"`
	KickoffAt time.Time `json:"kickoffAt" binding:"required"`
}

type matchResponse struct {
	ID        string `json:"id"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	KickoffAt string `json:"kickoffAt"`
	Status    string `json:"status"`
}

// Create adds one fixture to a pool.
// POST /api/v1/admin/pools/:poolSid/matches
func (h *MatchHandler) Create(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	match, err := h.createMatch.Execute(c.Request.Context(), predictionusecases.CreateMatchCommand{
		TenantID:  c.GetUint(constants.ContextKeyTenantID),
		PoolSID:   c.Param("poolSid"),
		HomeTeam:  req.HomeTeam,
		AwayTeam:  req.AwayTeam,
		KickoffAt: req.KickoffAt,
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.CreatedResponse(c, toMatchResponse(match), "match created")
}

type recordResultRequest struct {
	HomeScore *int `json:"homeScore" binding:"required"`
	AwayScore *int `json:"awayScore" binding:"required"`
}

// RecordResult finishes a match and scores every prediction against the
// final result.
// POST /api/v1/admin/pools/:poolSid/matches/:matchSid/result
func (h *MatchHandler) RecordResult(c *gin.Context) {
	var req recordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	err := h.recordResult.Execute(c.Request.Context(), predictionusecases.RecordResultCommand{
		TenantID:  c.GetUint(constants.ContextKeyTenantID),
		PoolSID:   c.Param("poolSid"),
		MatchSID:  c.Param("matchSid"),
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		common.RespondError(c, h.logger, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "result recorded", nil)
}

func toMatchResponse(m *prediction.Match) matchResponse {
	return matchResponse{
		ID:        m.SID(),
		HomeTeam:  m.HomeTeam(),
		AwayTeam:  m.AwayTeam(),
		KickoffAt: m.KickoffAt().UTC().Format(time.RFC3339),
		Status:    string(m.Status()),
	}
}
