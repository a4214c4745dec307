package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type AssertAccessQuery struct {
	TenantID uint
	PoolSID  string
	UserID   uint
}

// AssertAccessUseCase is the read-only gate run before every protected pool
// action. It re-checks the registration's credential against current state,
// so pausing a code or expiring an invitation retroactively locks out the
// players admitted through it. It mutates nothing: denial here is a
// symptom for support, the registration row itself stays untouched.
type AssertAccessUseCase struct {
	poolRepo         pool.Repository
	policyRepo       access.PolicyRepository
	registrationRepo access.RegistrationRepository
	codeRepo         access.InviteCodeRepository
	invitationRepo   access.InvitationRepository
	logger           logger.Interface
	now              nowFunc
}

func NewAssertAccessUseCase(
	poolRepo pool.Repository,
	policyRepo access.PolicyRepository,
	registrationRepo access.RegistrationRepository,
	codeRepo access.InviteCodeRepository,
	invitationRepo access.InvitationRepository,
	logger logger.Interface,
) *AssertAccessUseCase {
	return &AssertAccessUseCase{
		poolRepo:         poolRepo,
		policyRepo:       policyRepo,
		registrationRepo: registrationRepo,
		codeRepo:         codeRepo,
		invitationRepo:   invitationRepo,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// Execute returns the caller's registration when access holds, or a
// DeniedError naming exactly why it does not.
func (uc *AssertAccessUseCase) Execute(ctx context.Context, query AssertAccessQuery) (*access.Registration, error) {
	p, err := uc.poolRepo.GetBySID(ctx, query.PoolSID)
	if err != nil {
		return nil, err
	}
	if !p.BelongsToTenant(query.TenantID) {
		return nil, access.Denied(access.ReasonTenantMismatch, "pool does not belong to this tenant")
	}

	reg, err := uc.registrationRepo.GetByUserAndPool(ctx, query.UserID, p.ID())
	if err != nil {
		if errors.Is(err, access.ErrRegistrationNotFound) {
			return nil, access.Denied(access.ReasonRegistrationRequired, "user is not registered in this pool")
		}
		return nil, fmt.Errorf("failed to load registration: %w", err)
	}
	if !reg.BelongsToTenant(query.TenantID) {
		return nil, access.Denied(access.ReasonTenantMismatch, "registration does not belong to this tenant")
	}

	policy, err := uc.policyRepo.GetByPoolID(ctx, p.ID())
	if err != nil {
		if errors.Is(err, access.ErrPolicyNotFound) {
			return nil, access.Misconfigured(fmt.Sprintf("pool %s has no access policy", query.PoolSID))
		}
		return nil, fmt.Errorf("failed to load access policy: %w", err)
	}

	switch policy.AccessType() {
	case access.AccessPublic:
		return reg, nil

	case access.AccessCode:
		if reg.InviteCodeID() == nil {
			return nil, access.Denied(access.ReasonCodeRequired, "registration has no invite code on record")
		}
		invite, err := uc.codeRepo.GetByID(ctx, *reg.InviteCodeID())
		if err != nil {
			if errors.Is(err, access.ErrCodeNotFound) {
				return nil, access.Denied(access.ReasonCodeInvalid, "registered invite code no longer exists")
			}
			return nil, fmt.Errorf("failed to load invite code: %w", err)
		}
		if denied := invite.CheckHeld(uc.now()); denied != nil {
			return nil, denied
		}
		return reg, nil

	case access.AccessEmailInvite:
		if reg.InvitationID() == nil {
			return nil, access.Denied(access.ReasonInvitationRequired, "registration has no invitation on record")
		}
		invitation, err := uc.invitationRepo.GetByID(ctx, *reg.InvitationID())
		if err != nil {
			if errors.Is(err, access.ErrInvitationNotFound) {
				return nil, access.Denied(access.ReasonInvitationRequired, "registered invitation no longer exists")
			}
			return nil, fmt.Errorf("failed to load invitation: %w", err)
		}
		if denied := invitation.CheckHeld(uc.now()); denied != nil {
			return nil, denied
		}
		return reg, nil

	default:
		uc.logger.Errorw("access policy has unknown access type",
			"pool_sid", query.PoolSID,
			"access_type", policy.AccessType(),
		)
		return nil, &access.ConfigError{
			Reason:  access.ReasonUnknownAccessType,
			Message: fmt.Sprintf("access type %q is not recognized", policy.AccessType()),
		}
	}
}
