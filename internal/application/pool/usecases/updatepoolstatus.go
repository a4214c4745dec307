package usecases

import (
	"context"
	"fmt"

	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type UpdatePoolStatusCommand struct {
	TenantID uint
	PoolSID  string
	Status   pool.PoolStatus
}

type UpdatePoolStatusUseCase struct {
	poolRepo pool.Repository
	logger   logger.Interface
}

func NewUpdatePoolStatusUseCase(poolRepo pool.Repository, logger logger.Interface) *UpdatePoolStatusUseCase {
	return &UpdatePoolStatusUseCase{poolRepo: poolRepo, logger: logger}
}

func (uc *UpdatePoolStatusUseCase) Execute(ctx context.Context, cmd UpdatePoolStatusCommand) (*pool.Pool, error) {
	p, err := uc.poolRepo.GetBySID(ctx, cmd.PoolSID)
	if err != nil {
		return nil, err
	}
	if !p.BelongsToTenant(cmd.TenantID) {
		return nil, access.Denied(access.ReasonTenantMismatch, "pool does not belong to this tenant")
	}

	switch cmd.Status {
	case pool.PoolActive:
		if err := p.Activate(); err != nil {
			return nil, err
		}
	case pool.PoolArchived:
		p.Archive()
	default:
		return nil, fmt.Errorf("unsupported pool status transition to %s", cmd.Status)
	}

	if err := uc.poolRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update pool: %w", err)
	}
	uc.logger.Infow("pool status changed", "pool_sid", p.SID(), "status", cmd.Status)
	return p, nil
}
