package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quiniela-inc/quiniela/internal/application/access/dto"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type ValidateCodeQuery struct {
	TenantID uint
	PoolSID  string
	Code     string
}

// ValidateCodeUseCase answers the pre-flight "is this code usable" question
// without consuming anything. The answer is advisory: the authoritative
// check happens again inside the registration transaction.
type ValidateCodeUseCase struct {
	poolRepo   pool.Repository
	policyRepo access.PolicyRepository
	codeRepo   access.InviteCodeRepository
	logger     logger.Interface
	now        nowFunc
}

func NewValidateCodeUseCase(
	poolRepo pool.Repository,
	policyRepo access.PolicyRepository,
	codeRepo access.InviteCodeRepository,
	logger logger.Interface,
) *ValidateCodeUseCase {
	return &ValidateCodeUseCase{
		poolRepo:   poolRepo,
		policyRepo: policyRepo,
		codeRepo:   codeRepo,
		logger:     logger,
		now:        biztime.NowUTC,
	}
}

func (uc *ValidateCodeUseCase) Execute(ctx context.Context, query ValidateCodeQuery) (*dto.CodeValidationDTO, error) {
	code := strings.TrimSpace(query.Code)
	if code == "" {
		return &dto.CodeValidationDTO{Valid: false, Reason: string(access.ReasonCodeRequired)}, nil
	}

	p, err := uc.poolRepo.GetBySID(ctx, query.PoolSID)
	if err != nil {
		return nil, err
	}
	if !p.BelongsToTenant(query.TenantID) {
		return &dto.CodeValidationDTO{Valid: false, Reason: string(access.ReasonTenantMismatch)}, nil
	}

	policy, err := uc.policyRepo.GetByPoolID(ctx, p.ID())
	if err != nil {
		if errors.Is(err, access.ErrPolicyNotFound) {
			return nil, access.Misconfigured(fmt.Sprintf("pool %s has no access policy", query.PoolSID))
		}
		return nil, fmt.Errorf("failed to load access policy: %w", err)
	}

	invite, err := uc.codeRepo.GetByCode(ctx, query.TenantID, code)
	if err != nil {
		if errors.Is(err, access.ErrCodeNotFound) {
			return &dto.CodeValidationDTO{Valid: false, Reason: string(access.ReasonCodeInvalid)}, nil
		}
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}
	if invite.PolicyID() != policy.ID() {
		return &dto.CodeValidationDTO{Valid: false, Reason: string(access.ReasonCodeInvalid)}, nil
	}

	if denied := invite.CheckConsumable(uc.now()); denied != nil {
		return &dto.CodeValidationDTO{Valid: false, Reason: string(denied.Reason)}, nil
	}

	out := &dto.CodeValidationDTO{
		Valid:         true,
		UsesRemaining: invite.UsesRemaining(),
	}
	if ts := invite.ExpiresAt(); ts != nil {
		out.ExpiresAt = ts.UTC().Format(time.RFC3339)
	}
	return out, nil
}
