package usecases

import (
	"context"
	"errors"
	"fmt"

	accessusecases "github.com/quiniela-inc/quiniela/internal/application/access/usecases"
	settingusecases "github.com/quiniela-inc/quiniela/internal/application/setting/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/prediction"
	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type SavePredictionCommand struct {
	TenantID  uint
	TenantSID string
	PoolSID   string
	UserID    uint
	MatchSID  string
	HomeGoals int
	AwayGoals int
}

// SavePredictionUseCase stores or replaces one pick. Access is re-checked
// on every save, so a revoked credential blocks picks immediately, and the
// lock offset from settings is applied against the match kickoff.
type SavePredictionUseCase struct {
	assertAccess   *accessusecases.AssertAccessUseCase
	matchRepo      prediction.MatchRepository
	predictionRepo prediction.Repository
	values         *settingusecases.Values
	logger         logger.Interface
}

func NewSavePredictionUseCase(
	assertAccess *accessusecases.AssertAccessUseCase,
	matchRepo prediction.MatchRepository,
	predictionRepo prediction.Repository,
	values *settingusecases.Values,
	logger logger.Interface,
) *SavePredictionUseCase {
	return &SavePredictionUseCase{
		assertAccess:   assertAccess,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		values:         values,
		logger:         logger,
	}
}

func (uc *SavePredictionUseCase) Execute(ctx context.Context, cmd SavePredictionCommand) (*prediction.Prediction, error) {
	reg, err := uc.assertAccess.Execute(ctx, accessusecases.AssertAccessQuery{
		TenantID: cmd.TenantID,
		PoolSID:  cmd.PoolSID,
		UserID:   cmd.UserID,
	})
	if err != nil {
		return nil, err
	}

	match, err := uc.matchRepo.GetBySID(ctx, cmd.MatchSID)
	if err != nil {
		return nil, err
	}
	if match.PoolID() != reg.PoolID() {
		return nil, prediction.ErrMatchNotFound
	}

	lockOffset := uc.values.PredictionLockOffset(ctx, cmd.TenantSID, cmd.PoolSID)
	if match.IsLocked(biztime.NowUTC(), lockOffset) {
		return nil, prediction.ErrPredictionsLocked
	}

	existing, err := uc.predictionRepo.GetByRegistrationAndMatch(ctx, reg.ID(), match.ID())
	if err != nil && !errors.Is(err, prediction.ErrPredictionNotFound) {
		return nil, fmt.Errorf("failed to load existing prediction: %w", err)
	}

	var pick *prediction.Prediction
	if existing != nil {
		if err := existing.UpdatePick(cmd.HomeGoals, cmd.AwayGoals); err != nil {
			return nil, err
		}
		pick = existing
	} else {
		pick, err = prediction.NewPrediction(reg.ID(), match.ID(), cmd.HomeGoals, cmd.AwayGoals)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.predictionRepo.Upsert(ctx, pick); err != nil {
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}
	uc.logger.Debugw("prediction saved",
		"match_sid", cmd.MatchSID,
		"user_id", cmd.UserID,
		"pool_sid", cmd.PoolSID,
	)
	return pick, nil
}
