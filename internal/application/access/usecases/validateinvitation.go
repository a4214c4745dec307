package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quiniela-inc/quiniela/internal/application/access/dto"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type ValidateInvitationQuery struct {
	Token string
}

// ValidateInvitationUseCase answers the pre-flight check for an invitation
// token and echoes the invited email for form pre-fill. Lapsed PENDING rows
// are flipped to EXPIRED on the way.
type ValidateInvitationUseCase struct {
	invitationRepo access.InvitationRepository
	logger         logger.Interface
	now            nowFunc
}

func NewValidateInvitationUseCase(
	invitationRepo access.InvitationRepository,
	logger logger.Interface,
) *ValidateInvitationUseCase {
	return &ValidateInvitationUseCase{
		invitationRepo: invitationRepo,
		logger:         logger,
		now:            biztime.NowUTC,
	}
}

func (uc *ValidateInvitationUseCase) Execute(ctx context.Context, query ValidateInvitationQuery) (*dto.InvitationValidationDTO, error) {
	token := strings.TrimSpace(query.Token)
	if token == "" {
		return &dto.InvitationValidationDTO{Valid: false, Reason: string(access.ReasonInvitationRequired)}, nil
	}

	invitation, err := uc.invitationRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, access.ErrInvitationNotFound) {
			return &dto.InvitationValidationDTO{Valid: false, Reason: string(access.ReasonInvitationRequired)}, nil
		}
		return nil, fmt.Errorf("failed to look up invitation: %w", err)
	}

	if invitation.MarkExpired(uc.now()) {
		if err := uc.invitationRepo.Update(ctx, invitation); err != nil {
			uc.logger.Warnw("failed to persist lazy invitation expiry",
				"invitation_sid", invitation.SID(), "error", err)
		}
	}

	switch {
	case invitation.Status() == access.InvitationAccepted:
		return &dto.InvitationValidationDTO{Valid: false, Reason: string(access.ReasonInvitationRequired)}, nil
	case invitation.Status() == access.InvitationExpired || invitation.IsExpired(uc.now()):
		return &dto.InvitationValidationDTO{Valid: false, Reason: string(access.ReasonInvitationExpired)}, nil
	}

	return &dto.InvitationValidationDTO{
		Valid:     true,
		Email:     invitation.Email(),
		ExpiresAt: invitation.ExpiresAt().UTC().Format(time.RFC3339),
	}, nil
}
