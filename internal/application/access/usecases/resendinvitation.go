package usecases

import (
	"context"
	"fmt"

	"github.com/quiniela-inc/quiniela/internal/application/access/dto"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type ResendInvitationCommand struct {
	TenantID      uint
	PoolSID       string
	InvitationSID string
}

type ResendInvitationUseCase struct {
	poolRepo       pool.Repository
	invitationRepo access.InvitationRepository
	mailer         InvitationMailer // optional
	logger         logger.Interface
}

func NewResendInvitationUseCase(
	poolRepo pool.Repository,
	invitationRepo access.InvitationRepository,
	logger logger.Interface,
) *ResendInvitationUseCase {
	return &ResendInvitationUseCase{
		poolRepo:       poolRepo,
		invitationRepo: invitationRepo,
		logger:         logger,
	}
}

// SetMailer enables email delivery (optional).
func (uc *ResendInvitationUseCase) SetMailer(mailer InvitationMailer) {
	uc.mailer = mailer
}

// Execute re-sends a still-pending invitation.
func (uc *ResendInvitationUseCase) Execute(ctx context.Context, cmd ResendInvitationCommand) (*dto.InvitationDTO, error) {
	p, err := uc.poolRepo.GetBySID(ctx, cmd.PoolSID)
	if err != nil {
		return nil, err
	}
	if !p.BelongsToTenant(cmd.TenantID) {
		return nil, access.Denied(access.ReasonTenantMismatch, "pool does not belong to this tenant")
	}

	invitation, err := uc.invitationRepo.GetBySID(ctx, cmd.InvitationSID)
	if err != nil {
		return nil, err
	}
	if invitation.TenantID() != cmd.TenantID {
		return nil, access.Denied(access.ReasonTenantMismatch, "invitation does not belong to this tenant")
	}

	now := biztime.NowUTC()
	if invitation.MarkExpired(now) {
		if err := uc.invitationRepo.Update(ctx, invitation); err != nil {
			uc.logger.Warnw("failed to persist lazy invitation expiry",
				"invitation_sid", invitation.SID(), "error", err)
		}
	}
	if invitation.Status() != access.InvitationPending {
		return nil, fmt.Errorf("%w: only pending invitations can be resent", access.ErrInvitationNotPending)
	}

	if uc.mailer != nil {
		if err := uc.mailer.SendInvitation(ctx, invitation.Email(), invitation.Token(), p.Name(), invitation.ExpiresAt()); err != nil {
			return nil, fmt.Errorf("failed to send invitation email: %w", err)
		}
		invitation.RecordSend(now)
		if err := uc.invitationRepo.Update(ctx, invitation); err != nil {
			uc.logger.Warnw("failed to record invitation send",
				"invitation_sid", invitation.SID(), "error", err)
		}
	}
	return dto.FromInvitation(invitation), nil
}
