package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

// UpdatePolicyCommand updates the mutable constraint fields of a pool's
// access policy. The access type itself is immutable; changing it would
// strand registrations whose credential links no longer match the mode.
type UpdatePolicyCommand struct {
	TenantID uint
	PoolSID  string

	RequireCaptcha        *bool
	DomainAllowList       []string
	SetDomainAllowList    bool
	MaxRegistrations      *int
	SetMaxRegistrations   bool
	RegistrationStartDate *time.Time
	RegistrationEndDate   *time.Time
	SetRegistrationWindow bool
}

type UpdatePolicyUseCase struct {
	poolRepo   pool.Repository
	policyRepo access.PolicyRepository
	logger     logger.Interface
}

func NewUpdatePolicyUseCase(
	poolRepo pool.Repository,
	policyRepo access.PolicyRepository,
	logger logger.Interface,
) *UpdatePolicyUseCase {
	return &UpdatePolicyUseCase{
		poolRepo:   poolRepo,
		policyRepo: policyRepo,
		logger:     logger,
	}
}

func (uc *UpdatePolicyUseCase) Execute(ctx context.Context, cmd UpdatePolicyCommand) (*access.Policy, error) {
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

	if cmd.RequireCaptcha != nil {
		policy.SetRequireCaptcha(*cmd.RequireCaptcha)
	}
	if cmd.SetDomainAllowList {
		policy.SetDomainAllowList(cmd.DomainAllowList)
	}
	if cmd.SetMaxRegistrations {
		policy.SetMaxRegistrations(cmd.MaxRegistrations)
	}
	if cmd.SetRegistrationWindow {
		policy.SetRegistrationWindow(cmd.RegistrationStartDate, cmd.RegistrationEndDate)
	}

	if err := uc.policyRepo.Update(ctx, policy); err != nil {
		return nil, fmt.Errorf("failed to update access policy: %w", err)
	}
	uc.logger.Infow("access policy updated", "pool_sid", cmd.PoolSID)
	return policy, nil
}
