package usecases

import (
	"context"
	"fmt"
	"time"

	accessusecases "github.com/quiniela-inc/quiniela/internal/application/access/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type CreatePoolCommand struct {
	TenantID    uint
	Name        string
	Description string
	AccessType  access.AccessType

	RequireCaptcha        bool
	DomainAllowList       []string
	MaxRegistrations      *int
	RegistrationStartDate *time.Time
	RegistrationEndDate   *time.Time
}

type CreatePoolResult struct {
	Pool   *pool.Pool
	Policy *access.Policy
}

// CreatePoolUseCase creates a pool together with its access policy. A pool
// without a policy cannot admit anyone, so the two rows are written in one
// transaction.
type CreatePoolUseCase struct {
	poolRepo   pool.Repository
	policyRepo access.PolicyRepository
	tm         accessusecases.Transactor
	logger     logger.Interface
}

func NewCreatePoolUseCase(
	poolRepo pool.Repository,
	policyRepo access.PolicyRepository,
	tm accessusecases.Transactor,
	logger logger.Interface,
) *CreatePoolUseCase {
	return &CreatePoolUseCase{
		poolRepo:   poolRepo,
		policyRepo: policyRepo,
		tm:         tm,
		logger:     logger,
	}
}

func (uc *CreatePoolUseCase) Execute(ctx context.Context, cmd CreatePoolCommand) (*CreatePoolResult, error) {
	p, err := pool.NewPool(cmd.TenantID, cmd.Name, cmd.Description)
	if err != nil {
		return nil, err
	}

	var policy *access.Policy
	err = uc.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.poolRepo.Create(txCtx, p); err != nil {
			return fmt.Errorf("failed to create pool: %w", err)
		}

		policy, err = access.NewPolicy(p.ID(), cmd.AccessType)
		if err != nil {
			return err
		}
		policy.SetRequireCaptcha(cmd.RequireCaptcha)
		if len(cmd.DomainAllowList) > 0 {
			policy.SetDomainAllowList(cmd.DomainAllowList)
		}
		policy.SetMaxRegistrations(cmd.MaxRegistrations)
		policy.SetRegistrationWindow(cmd.RegistrationStartDate, cmd.RegistrationEndDate)

		if err := uc.policyRepo.Create(txCtx, policy); err != nil {
			return fmt.Errorf("failed to create access policy: %w", err)
		}

		uc.logger.Infow("pool created",
			"pool_sid", p.SID(),
			"tenant_id", cmd.TenantID,
			"access_type", cmd.AccessType,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreatePoolResult{Pool: p, Policy: policy}, nil
}
