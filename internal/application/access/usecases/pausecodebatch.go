package usecases

import (
	"context"
	"fmt"

	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type PauseCodeBatchCommand struct {
	TenantID uint
	BatchSID string
	// Resume lifts the pause instead of applying one.
	Resume bool
}

// PauseCodeBatchUseCase suspends or restores a whole batch of codes.
// Pausing retroactively locks out players who registered through the batch,
// because the held-credential re-check refuses paused codes.
type PauseCodeBatchUseCase struct {
	batchRepo access.CodeBatchRepository
	codeRepo  access.InviteCodeRepository
	tm        Transactor
	logger    logger.Interface
}

func NewPauseCodeBatchUseCase(
	batchRepo access.CodeBatchRepository,
	codeRepo access.InviteCodeRepository,
	tm Transactor,
	logger logger.Interface,
) *PauseCodeBatchUseCase {
	return &PauseCodeBatchUseCase{
		batchRepo: batchRepo,
		codeRepo:  codeRepo,
		tm:        tm,
		logger:    logger,
	}
}

func (uc *PauseCodeBatchUseCase) Execute(ctx context.Context, cmd PauseCodeBatchCommand) error {
	batch, err := uc.batchRepo.GetBySID(ctx, cmd.BatchSID)
	if err != nil {
		return err
	}
	if batch.TenantID() != cmd.TenantID {
		return access.Denied(access.ReasonTenantMismatch, "batch does not belong to this tenant")
	}

	err = uc.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if cmd.Resume {
			batch.Resume()
		} else {
			batch.Pause()
		}
		if err := uc.batchRepo.Update(txCtx, batch); err != nil {
			return fmt.Errorf("failed to update batch: %w", err)
		}
		if cmd.Resume {
			return uc.codeRepo.ResumeByBatchID(txCtx, batch.ID(), biztime.NowUTC())
		}
		return uc.codeRepo.PauseByBatchID(txCtx, batch.ID())
	})
	if err != nil {
		return err
	}

	action := "paused"
	if cmd.Resume {
		action = "resumed"
	}
	uc.logger.Infow("code batch "+action, "batch_sid", cmd.BatchSID)
	return nil
}
