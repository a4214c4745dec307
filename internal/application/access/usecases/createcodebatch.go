package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quiniela-inc/quiniela/internal/application/access/dto"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type CreateCodeBatchCommand struct {
	TenantID    uint
	PoolSID     string
	Name        string
	CodeCount   int
	UsesPerCode int
	ExpiresAt   *time.Time
}

// maxBatchSize bounds one minting request.
const maxBatchSize = 10000

type CreateCodeBatchUseCase struct {
	poolRepo   pool.Repository
	policyRepo access.PolicyRepository
	batchRepo  access.CodeBatchRepository
	codeRepo   access.InviteCodeRepository
	tm         Transactor
	logger     logger.Interface
}

func NewCreateCodeBatchUseCase(
	poolRepo pool.Repository,
	policyRepo access.PolicyRepository,
	batchRepo access.CodeBatchRepository,
	codeRepo access.InviteCodeRepository,
	tm Transactor,
	logger logger.Interface,
) *CreateCodeBatchUseCase {
	return &CreateCodeBatchUseCase{
		poolRepo:   poolRepo,
		policyRepo: policyRepo,
		batchRepo:  batchRepo,
		codeRepo:   codeRepo,
		tm:         tm,
		logger:     logger,
	}
}

// Execute mints a batch of invite codes for a CODE pool. The code strings
// are returned once, here; afterwards only their usage state is readable.
func (uc *CreateCodeBatchUseCase) Execute(ctx context.Context, cmd CreateCodeBatchCommand) (*dto.CodeBatchDTO, error) {
	if cmd.CodeCount > maxBatchSize {
		return nil, fmt.Errorf("codeCount exceeds the maximum of %d", maxBatchSize)
	}

	p, err := uc.poolRepo.GetBySID(ctx, cmd.PoolSID)
	if err != nil {
		return nil, err
	}
	if !p.BelongsToTenant(cmd.TenantID) {
		return nil, access.Denied(access.ReasonTenantMismatch, "pool does not belong to this tenant")
	}

	policy, err := uc.policyRepo.GetByPoolID(ctx, p.ID())
	if err != nil {
		if errors.Is(err, access.ErrPolicyNotFound) {
			return nil, access.Misconfigured(fmt.Sprintf("pool %s has no access policy", cmd.PoolSID))
		}
		return nil, fmt.Errorf("failed to load access policy: %w", err)
	}
	if policy.AccessType() != access.AccessCode {
		return nil, ErrAccessTypeMismatch
	}

	batch, err := access.NewCodeBatch(policy.ID(), cmd.TenantID, cmd.Name, cmd.CodeCount, cmd.UsesPerCode, cmd.ExpiresAt)
	if err != nil {
		return nil, err
	}

	var codes []*access.InviteCode
	err = uc.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.batchRepo.Create(txCtx, batch); err != nil {
			return fmt.Errorf("failed to create code batch: %w", err)
		}
		codes, err = batch.GenerateCodes()
		if err != nil {
			return err
		}
		if err := uc.codeRepo.CreateBatch(txCtx, codes); err != nil {
			return fmt.Errorf("failed to create invite codes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("code batch created",
		"pool_sid", cmd.PoolSID,
		"batch_sid", batch.SID(),
		"code_count", cmd.CodeCount,
		"uses_per_code", cmd.UsesPerCode,
	)
	return dto.FromCodeBatch(batch, codes), nil
}
