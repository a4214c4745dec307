package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	settingusecases "github.com/quiniela-inc/quiniela/internal/application/setting/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/audit"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

// RegistrationCommand is the common input of the three registration modes.
type RegistrationCommand struct {
	TenantID     uint
	TenantSID    string
	PoolSID      string
	UserID       uint
	UserSID      string
	DisplayName  string
	Email        string
	Phone        string
	CaptchaToken string
	ClientIP     string
}

// admissionGate bundles the checks every registration mode runs before its
// mode-specific credential handling.
type admissionGate struct {
	poolRepo         pool.Repository
	policyRepo       access.PolicyRepository
	registrationRepo access.RegistrationRepository
	auditRepo        audit.Repository
	values           *settingusecases.Values
	captcha          CaptchaVerifier // optional
	logger           logger.Interface
}

// admit loads the pool and policy and enforces everything that is not
// credential-specific: tenant scoping, pool lifecycle, the registration
// window, the soft cap, the domain allow list and the captcha gate.
func (g *admissionGate) admit(ctx context.Context, cmd RegistrationCommand, now nowFunc) (*pool.Pool, *access.Policy, error) {
	p, err := g.poolRepo.GetBySID(ctx, cmd.PoolSID)
	if err != nil {
		if errors.Is(err, pool.ErrPoolNotFound) {
			return nil, nil, pool.ErrPoolNotFound
		}
		return nil, nil, fmt.Errorf("failed to load pool: %w", err)
	}
	if !p.BelongsToTenant(cmd.TenantID) {
		return nil, nil, access.Denied(access.ReasonTenantMismatch, "pool does not belong to this tenant")
	}
	if !p.AcceptsRegistrations() {
		return nil, nil, ErrPoolClosed
	}

	policy, err := g.policyRepo.GetByPoolID(ctx, p.ID())
	if err != nil {
		if errors.Is(err, access.ErrPolicyNotFound) {
			return nil, nil, access.Misconfigured(fmt.Sprintf("pool %s has no access policy", cmd.PoolSID))
		}
		return nil, nil, fmt.Errorf("failed to load access policy: %w", err)
	}

	if !policy.InRegistrationWindow(now()) {
		return nil, nil, ErrRegistrationWindow
	}
	if !policy.EmailAllowed(cmd.Email) {
		return nil, nil, ErrEmailDomainNotAllowed
	}

	if policy.MaxRegistrations() != nil {
		count, err := g.registrationRepo.CountByPool(ctx, p.ID())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to count registrations: %w", err)
		}
		// Checked before insert without a lock: concurrent admissions can
		// overshoot by the number of in-flight requests.
		if !policy.UnderCap(count) {
			return nil, nil, ErrPoolFull
		}
	}

	if err := g.checkCaptcha(ctx, cmd, policy); err != nil {
		return nil, nil, err
	}
	return p, policy, nil
}

// checkCaptcha applies the policy flag combined with the resolved
// captcha_level setting: "force" always requires a token, "off" never does,
// "auto" follows the policy flag.
func (g *admissionGate) checkCaptcha(ctx context.Context, cmd RegistrationCommand, policy *access.Policy) error {
	level := g.values.CaptchaLevel(ctx, cmd.TenantSID, cmd.PoolSID)

	required := policy.RequireCaptcha()
	switch level {
	case setting.CaptchaForce:
		required = true
	case setting.CaptchaOff:
		required = false
	}
	if !required {
		return nil
	}
	if cmd.CaptchaToken == "" {
		return ErrCaptchaRequired
	}
	if g.captcha == nil {
		g.logger.Warnw("captcha required but no verifier configured, skipping",
			"pool_sid", cmd.PoolSID,
		)
		return nil
	}
	if err := g.captcha.Verify(ctx, cmd.CaptchaToken, cmd.ClientIP); err != nil {
		g.logger.Infow("captcha verification failed", "pool_sid", cmd.PoolSID, "error", err)
		return ErrCaptchaFailed
	}
	return nil
}

// checkDuplicate rejects a second admission for the same user and pool.
func (g *admissionGate) checkDuplicate(ctx context.Context, userID, poolID uint) error {
	_, err := g.registrationRepo.GetByUserAndPool(ctx, userID, poolID)
	if err == nil {
		return access.ErrRegistrationExists
	}
	if errors.Is(err, access.ErrRegistrationNotFound) {
		return nil
	}
	return fmt.Errorf("failed to check existing registration: %w", err)
}

// recordAudit writes an audit entry, best effort. Client IPs are only
// recorded when the resolved ip_logging_enabled setting allows it.
func (g *admissionGate) recordAudit(ctx context.Context, cmd RegistrationCommand, action, targetSID string, detail map[string]any) {
	ip := ""
	if g.values.IPLoggingEnabled(ctx, cmd.TenantSID, cmd.PoolSID) {
		ip = cmd.ClientIP
	}
	tenantID := cmd.TenantID
	entry := audit.NewEntry(&tenantID, cmd.UserSID, action, targetSID, detail, ip)
	if err := g.auditRepo.Create(ctx, entry); err != nil {
		g.logger.Warnw("failed to write audit entry", "action", action, "error", err)
	}
}

// nowFunc injects the clock so admission windows are testable.
type nowFunc func() time.Time
