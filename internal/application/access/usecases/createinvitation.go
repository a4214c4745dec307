package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/quiniela-inc/quiniela/internal/application/access/dto"
	settingusecases "github.com/quiniela-inc/quiniela/internal/application/setting/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	apperrors "github.com/quiniela-inc/quiniela/internal/shared/errors"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type CreateInvitationCommand struct {
	TenantID  uint
	TenantSID string
	PoolSID   string
	Email     string
}

type CreateInvitationUseCase struct {
	poolRepo       pool.Repository
	policyRepo     access.PolicyRepository
	invitationRepo access.InvitationRepository
	values         *settingusecases.Values
	mailer         InvitationMailer // optional
	logger         logger.Interface
}

func NewCreateInvitationUseCase(
	poolRepo pool.Repository,
	policyRepo access.PolicyRepository,
	invitationRepo access.InvitationRepository,
	values *settingusecases.Values,
	logger logger.Interface,
) *CreateInvitationUseCase {
	return &CreateInvitationUseCase{
		poolRepo:       poolRepo,
		policyRepo:     policyRepo,
		invitationRepo: invitationRepo,
		values:         values,
		logger:         logger,
	}
}

// SetMailer enables email delivery (optional). Without it invitations are
// created and their links distributed out of band.
func (uc *CreateInvitationUseCase) SetMailer(mailer InvitationMailer) {
	uc.mailer = mailer
}

// Execute creates a pending invitation for one recipient and sends the
// invitation email. The expiry comes from the invitation_expiry_hours
// setting resolved at the tenant scope.
func (uc *CreateInvitationUseCase) Execute(ctx context.Context, cmd CreateInvitationCommand) (*dto.InvitationDTO, error) {
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
	if policy.AccessType() != access.AccessEmailInvite {
		return nil, ErrAccessTypeMismatch
	}
	if !policy.EmailAllowed(cmd.Email) {
		return nil, ErrEmailDomainNotAllowed
	}

	expiresAt := biztime.NowUTC().Add(uc.values.InvitationExpiry(ctx, cmd.TenantSID))
	invitation, err := access.NewInvitation(policy.ID(), cmd.TenantID, cmd.Email, expiresAt)
	if err != nil {
		return nil, err
	}

	if err := uc.invitationRepo.Create(ctx, invitation); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, fmt.Errorf("a pending invitation already exists for %s", invitation.Email())
		}
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	uc.send(ctx, invitation, p.Name())
	return dto.FromInvitation(invitation), nil
}

// send delivers the invitation email and stamps the send telemetry. Failure
// is logged, not returned: the invitation stays valid and can be resent.
func (uc *CreateInvitationUseCase) send(ctx context.Context, invitation *access.Invitation, poolName string) {
	if uc.mailer == nil {
		return
	}
	if err := uc.mailer.SendInvitation(ctx, invitation.Email(), invitation.Token(), poolName, invitation.ExpiresAt()); err != nil {
		uc.logger.Warnw("failed to send invitation email",
			"invitation_sid", invitation.SID(),
			"error", err,
		)
		return
	}
	invitation.RecordSend(biztime.NowUTC())
	if err := uc.invitationRepo.Update(ctx, invitation); err != nil {
		uc.logger.Warnw("failed to record invitation send",
			"invitation_sid", invitation.SID(),
			"error", err,
		)
	}
}
