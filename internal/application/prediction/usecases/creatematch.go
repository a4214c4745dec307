package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/domain/prediction"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type CreateMatchCommand struct {
	TenantID  uint
	PoolSID   string
	HomeTeam  string
	AwayTeam  string
	KickoffAt time.Time
}

type CreateMatchUseCase struct {
	poolRepo  pool.Repository
	matchRepo prediction.MatchRepository
	logger    logger.Interface
}

func NewCreateMatchUseCase(
	poolRepo pool.Repository,
	matchRepo prediction.MatchRepository,
	logger logger.Interface,
) *CreateMatchUseCase {
	return &CreateMatchUseCase{
		poolRepo:  poolRepo,
		matchRepo: matchRepo,
		logger:    logger,
	}
}

func (uc *CreateMatchUseCase) Execute(ctx context.Context, cmd CreateMatchCommand) (*prediction.Match, error) {
	p, err := uc.poolRepo.GetBySID(ctx, cmd.PoolSID)
	if err != nil {
		return nil, err
	}
	if !p.BelongsToTenant(cmd.TenantID) {
		return nil, access.Denied(access.ReasonTenantMismatch, "pool does not belong to this tenant")
	}

	match, err := prediction.NewMatch(p.ID(), cmd.HomeTeam, cmd.AwayTeam, cmd.KickoffAt)
	if err != nil {
		return nil, err
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	uc.logger.Infow("match created",
		"pool_sid", cmd.PoolSID,
		"match_sid", match.SID(),
		"kickoff_at", match.KickoffAt(),
	)
	return match, nil
}
