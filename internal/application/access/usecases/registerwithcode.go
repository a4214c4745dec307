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

type RegisterWithCodeCommand struct {
	RegistrationCommand
	Code string
}

type RegisterWithCodeUseCase struct {
	gate             admissionGate
	codeRepo         access.InviteCodeRepository
	registrationRepo access.RegistrationRepository
	tm               Transactor
	logger           logger.Interface
	now              nowFunc
}

func NewRegisterWithCodeUseCase(
	poolRepo pool.Repository,
	policyRepo access.PolicyRepository,
	codeRepo access.InviteCodeRepository,
	registrationRepo access.RegistrationRepository,
	auditRepo audit.Repository,
	values *settingusecases.Values,
	tm Transactor,
	logger logger.Interface,
) *RegisterWithCodeUseCase {
	return &RegisterWithCodeUseCase{
		gate: admissionGate{
			poolRepo:         poolRepo,
			policyRepo:       policyRepo,
			registrationRepo: registrationRepo,
			auditRepo:        auditRepo,
			values:           values,
			logger:           logger,
		},
		codeRepo:         codeRepo,
		registrationRepo: registrationRepo,
		tm:               tm,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// SetCaptchaVerifier enables captcha enforcement (optional).
func (uc *RegisterWithCodeUseCase) SetCaptchaVerifier(v CaptchaVerifier) {
	uc.gate.captcha = v
}

// Execute admits a user into a CODE pool. The code's use is consumed with a
// guarded increment inside the same transaction as the registration insert,
// so the credential and the admission commit or roll back together.
func (uc *RegisterWithCodeUseCase) Execute(ctx context.Context, cmd RegisterWithCodeCommand) (*dto.RegistrationDTO, error) {
	code := strings.TrimSpace(cmd.Code)
	if code == "" {
		return nil, access.Denied(access.ReasonCodeRequired, "an invite code is required for this pool")
	}

	var result *dto.RegistrationDTO
	var codeSID string

	err := uc.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		p, policy, err := uc.gate.admit(txCtx, cmd.RegistrationCommand, uc.now)
		if err != nil {
			return err
		}
		if policy.AccessType() != access.AccessCode {
			return ErrAccessTypeMismatch
		}

		invite, err := uc.codeRepo.GetByCode(txCtx, cmd.TenantID, code)
		if err != nil {
			if errors.Is(err, access.ErrCodeNotFound) {
				return access.Denied(access.ReasonCodeInvalid, "unknown invite code")
			}
			return fmt.Errorf("failed to look up invite code: %w", err)
		}
		if invite.PolicyID() != policy.ID() {
			return access.Denied(access.ReasonCodeInvalid, "code does not belong to this pool")
		}
		if denied := invite.CheckConsumable(uc.now()); denied != nil {
			return denied
		}

		if err := uc.gate.checkDuplicate(txCtx, cmd.UserID, p.ID()); err != nil {
			return err
		}

		// Guarded increment: zero affected rows means another transaction
		// claimed the last use first.
		if err := uc.codeRepo.Consume(txCtx, invite.ID(), uc.now()); err != nil {
			if errors.Is(err, access.ErrCodeExhausted) {
				return access.Denied(access.ReasonCodeExhausted, "code has no uses remaining")
			}
			return fmt.Errorf("failed to consume invite code: %w", err)
		}

		codeID := invite.ID()
		reg, err := access.NewRegistration(p.ID(), cmd.TenantID, cmd.UserID, cmd.DisplayName, cmd.Email, cmd.Phone, &codeID, nil)
		if err != nil {
			return err
		}
		if err := uc.registrationRepo.Create(txCtx, reg); err != nil {
			if apperrors.IsDuplicateError(err) {
				return access.ErrRegistrationExists
			}
			return fmt.Errorf("failed to create registration: %w", err)
		}

		codeSID = invite.Code()
		result = dto.FromRegistration(reg, p.SID())
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.gate.recordAudit(ctx, cmd.RegistrationCommand, audit.ActionCodeConsumed, result.SID, map[string]any{
		"mode": string(access.AccessCode),
		"code": codeSID,
	})
	uc.logger.Infow("code registration created",
		"pool_sid", cmd.PoolSID,
		"user_sid", cmd.UserSID,
		"registration_sid", result.SID,
	)
	return result, nil
}
