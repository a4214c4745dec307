package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/quiniela-inc/quiniela/internal/application/access/dto"
	settingusecases "github.com/quiniela-inc/quiniela/internal/application/setting/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/audit"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	apperrors "github.com/quiniela-inc/quiniela/internal/shared/errors"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type RegisterWithInvitationCommand struct {
	RegistrationCommand
	Token string
}

type RegisterWithInvitationUseCase struct {
	gate             admissionGate
	invitationRepo   access.InvitationRepository
	registrationRepo access.RegistrationRepository
	tm               Transactor
	logger           logger.Interface
	now              nowFunc
}

func NewRegisterWithInvitationUseCase(
	poolRepo pool.Repository,
	policyRepo access.PolicyRepository,
	invitationRepo access.InvitationRepository,
	registrationRepo access.RegistrationRepository,
	auditRepo audit.Repository,
	values *settingusecases.Values,
	tm Transactor,
	logger logger.Interface,
) *RegisterWithInvitationUseCase {
	return &RegisterWithInvitationUseCase{
		gate: admissionGate{
			poolRepo:         poolRepo,
			policyRepo:       policyRepo,
			registrationRepo: registrationRepo,
			auditRepo:        auditRepo,
			values:           values,
			logger:           logger,
		},
		invitationRepo:   invitationRepo,
		registrationRepo: registrationRepo,
		tm:               tm,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// SetCaptchaVerifier enables captcha enforcement (optional).
func (uc *RegisterWithInvitationUseCase) SetCaptchaVerifier(v CaptchaVerifier) {
	uc.gate.captcha = v
}

// Execute admits a user into an EMAIL_INVITE pool. Acceptance is a guarded
// PENDING to ACCEPTED transition in the same transaction as the
// registration insert, so a token can admit exactly one account.
func (uc *RegisterWithInvitationUseCase) Execute(ctx context.Context, cmd RegisterWithInvitationCommand) (*dto.RegistrationDTO, error) {
	token := strings.TrimSpace(cmd.Token)
	if token == "" {
		return nil, access.Denied(access.ReasonInvitationRequired, "an invitation is required for this pool")
	}

	var result *dto.RegistrationDTO
	var invitationSID string

	err := uc.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		p, policy, err := uc.gate.admit(txCtx, cmd.RegistrationCommand, uc.now)
		if err != nil {
			return err
		}
		if policy.AccessType() != access.AccessEmailInvite {
			return ErrAccessTypeMismatch
		}

		invitation, err := uc.invitationRepo.GetByToken(txCtx, token)
		if err != nil {
			if errors.Is(err, access.ErrInvitationNotFound) {
				return access.Denied(access.ReasonInvitationRequired, "unknown invitation token")
			}
			return fmt.Errorf("failed to look up invitation: %w", err)
		}
		if invitation.PolicyID() != policy.ID() {
			return access.Denied(access.ReasonInvitationRequired, "invitation does not belong to this pool")
		}

		if invitation.MarkExpired(uc.now()) {
			if err := uc.invitationRepo.Update(txCtx, invitation); err != nil {
				uc.logger.Warnw("failed to persist lazy invitation expiry",
					"invitation_sid", invitation.SID(), "error", err)
			}
		}
		if denied := invitation.CheckAcceptable(cmd.Email, uc.now()); denied != nil {
			return denied
		}

		if err := uc.gate.checkDuplicate(txCtx, cmd.UserID, p.ID()); err != nil {
			return err
		}

		// Guarded transition: only one transaction can move the row out of
		// PENDING.
		if err := uc.invitationRepo.Accept(txCtx, invitation.ID(), uc.now()); err != nil {
			if errors.Is(err, access.ErrInvitationNotPending) {
				return access.Denied(access.ReasonInvitationRequired, "invitation already accepted")
			}
			return fmt.Errorf("failed to accept invitation: %w", err)
		}

		invitationID := invitation.ID()
		reg, err := access.NewRegistration(p.ID(), cmd.TenantID, cmd.UserID, cmd.DisplayName, cmd.Email, cmd.Phone, nil, &invitationID)
		if err != nil {
			return err
		}
		if err := uc.registrationRepo.Create(txCtx, reg); err != nil {
			if apperrors.IsDuplicateError(err) {
				return access.ErrRegistrationExists
			}
			return fmt.Errorf("failed to create registration: %w", err)
		}

		invitationSID = invitation.SID()
		result = dto.FromRegistration(reg, p.SID())
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.gate.recordAudit(ctx, cmd.RegistrationCommand, audit.ActionInvitationAccepted, result.SID, map[string]any{
		"mode":       string(access.AccessEmailInvite),
		"invitation": invitationSID,
	})
	uc.logger.Infow("invitation registration created",
		"pool_sid", cmd.PoolSID,
		"user_sid", cmd.UserSID,
		"registration_sid", result.SID,
	)
	return result, nil
}
