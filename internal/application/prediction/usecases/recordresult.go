package usecases

import (
	"context"
	"fmt"

	accessusecases "github.com/quiniela-inc/quiniela/internal/application/access/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/domain/prediction"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type RecordResultCommand struct {
	TenantID  uint
	PoolSID   string
	MatchSID  string
	HomeScore int
	AwayScore int
}

// RecordResultUseCase finishes a match and scores every prediction against
// the final result in one transaction.
type RecordResultUseCase struct {
	poolRepo       pool.Repository
	matchRepo      prediction.MatchRepository
	predictionRepo prediction.Repository
	tm             accessusecases.Transactor
	logger         logger.Interface
}

func NewRecordResultUseCase(
	poolRepo pool.Repository,
	matchRepo prediction.MatchRepository,
	predictionRepo prediction.Repository,
	tm accessusecases.Transactor,
	logger logger.Interface,
) *RecordResultUseCase {
	return &RecordResultUseCase{
		poolRepo:       poolRepo,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		tm:             tm,
		logger:         logger,
	}
}

func (uc *RecordResultUseCase) Execute(ctx context.Context, cmd RecordResultCommand) error {
	p, err := uc.poolRepo.GetBySID(ctx, cmd.PoolSID)
	if err != nil {
		return err
	}
	if !p.BelongsToTenant(cmd.TenantID) {
		return access.Denied(access.ReasonTenantMismatch, "pool does not belong to this tenant")
	}

	match, err := uc.matchRepo.GetBySID(ctx, cmd.MatchSID)
	if err != nil {
		return err
	}
	if match.PoolID() != p.ID() {
		return prediction.ErrMatchNotFound
	}

	return uc.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := match.RecordResult(cmd.HomeScore, cmd.AwayScore); err != nil {
			return err
		}
		if err := uc.matchRepo.Update(txCtx, match); err != nil {
			return fmt.Errorf("failed to update match: %w", err)
		}

		picks, err := uc.predictionRepo.ListByMatch(txCtx, match.ID())
		if err != nil {
			return fmt.Errorf("failed to list predictions: %w", err)
		}
		for _, pick := range picks {
			pick.Score(cmd.HomeScore, cmd.AwayScore)
			if err := uc.predictionRepo.Upsert(txCtx, pick); err != nil {
				return fmt.Errorf("failed to save scored prediction: %w", err)
			}
		}

		uc.logger.Infow("match result recorded",
			"match_sid", cmd.MatchSID,
			"home", cmd.HomeScore,
			"away", cmd.AwayScore,
			"scored", len(picks),
		)
		return nil
	})
}
