package usecases

import (
	"context"
	"fmt"

	"github.com/quiniela-inc/quiniela/internal/application/access/dto"
	settingusecases "github.com/quiniela-inc/quiniela/internal/application/setting/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/audit"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	apperrors "github.com/quiniela-inc/quiniela/internal/shared/errors"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type RegisterPublicUseCase struct {
	gate             admissionGate
	policyRepo       access.PolicyRepository
	registrationRepo access.RegistrationRepository
	tm               Transactor
	logger           logger.Interface
	now              nowFunc
}

func NewRegisterPublicUseCase(
	poolRepo pool.Repository,
	policyRepo access.PolicyRepository,
	registrationRepo access.RegistrationRepository,
	auditRepo audit.Repository,
	values *settingusecases.Values,
	tm Transactor,
	logger logger.Interface,
) *RegisterPublicUseCase {
	return &RegisterPublicUseCase{
		gate: admissionGate{
			poolRepo:         poolRepo,
			policyRepo:       policyRepo,
			registrationRepo: registrationRepo,
			auditRepo:        auditRepo,
			values:           values,
			logger:           logger,
		},
		policyRepo:       policyRepo,
		registrationRepo: registrationRepo,
		tm:               tm,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// SetCaptchaVerifier enables captcha enforcement (optional).
func (uc *RegisterPublicUseCase) SetCaptchaVerifier(v CaptchaVerifier) {
	uc.gate.captcha = v
}

// Execute admits a user into a PUBLIC pool. No credential is consumed; the
// transaction only covers the duplicate check and the insert.
func (uc *RegisterPublicUseCase) Execute(ctx context.Context, cmd RegistrationCommand) (*dto.RegistrationDTO, error) {
	var result *dto.RegistrationDTO

	err := uc.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		p, policy, err := uc.gate.admit(txCtx, cmd, uc.now)
		if err != nil {
			return err
		}
		if policy.AccessType() != access.AccessPublic {
			return ErrAccessTypeMismatch
		}

		if err := uc.gate.checkDuplicate(txCtx, cmd.UserID, p.ID()); err != nil {
			return err
		}

		reg, err := access.NewRegistration(p.ID(), cmd.TenantID, cmd.UserID, cmd.DisplayName, cmd.Email, cmd.Phone, nil, nil)
		if err != nil {
			return err
		}
		if err := uc.registrationRepo.Create(txCtx, reg); err != nil {
			if apperrors.IsDuplicateError(err) {
				return access.ErrRegistrationExists
			}
			return fmt.Errorf("failed to create registration: %w", err)
		}

		result = dto.FromRegistration(reg, p.SID())
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.gate.recordAudit(ctx, cmd, audit.ActionRegistrationCreated, result.SID, map[string]any{
		"mode": string(access.AccessPublic),
	})
	uc.logger.Infow("public registration created",
		"pool_sid", cmd.PoolSID,
		"user_sid", cmd.UserSID,
		"registration_sid", result.SID,
	)
	return result, nil
}
