package access

import (
	"context"
	"time"
)

// PolicyRepository persists pool admission policies.
type PolicyRepository interface {
	Create(ctx context.Context, policy *Policy) error
	Update(ctx context.Context, policy *Policy) error
	GetByID(ctx context.Context, id uint) (*Policy, error)
	GetBySID(ctx context.Context, sid string) (*Policy, error)
	GetByPoolID(ctx context.Context, poolID uint) (*Policy, error)
}

// CodeBatchRepository persists invite code batches.
type CodeBatchRepository interface {
	Create(ctx context.Context, batch *CodeBatch) error
	Update(ctx context.Context, batch *CodeBatch) error
	GetByID(ctx context.Context, id uint) (*CodeBatch, error)
	GetBySID(ctx context.Context, sid string) (*CodeBatch, error)
	ListByPolicyID(ctx context.Context, policyID uint) ([]*CodeBatch, error)
}

// InviteCodeRepository persists invite codes. Consume is the only mutation
// the registration path uses and it must be a single conditional update so
// two concurrent claims of a code's last use cannot both succeed.
type InviteCodeRepository interface {
	CreateBatch(ctx context.Context, codes []*InviteCode) error
	GetByID(ctx context.Context, id uint) (*InviteCode, error)
	// GetByCode looks a code up within a tenant; codes are only unique
	// per tenant.
	GetByCode(ctx context.Context, tenantID uint, code string) (*InviteCode, error)
	// Consume atomically increments used_count and recomputes status,
	// guarded by used_count < uses_per_code and a non-paused, non-expired
	// status. Returns ErrCodeExhausted when the guard matches no row.
	Consume(ctx context.Context, codeID uint, now time.Time) error
	UpdateStatus(ctx context.Context, codeID uint, status CodeStatus) error
	ListByBatchID(ctx context.Context, batchID uint) ([]*InviteCode, error)
	// PauseByBatchID flips every non-terminal code in a batch to PAUSED.
	PauseByBatchID(ctx context.Context, batchID uint) error
	// ResumeByBatchID re-derives status from counters for paused codes.
	ResumeByBatchID(ctx context.Context, batchID uint, now time.Time) error
}

// InvitationRepository persists email invitations.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *Invitation) error
	Update(ctx context.Context, invitation *Invitation) error
	GetByID(ctx context.Context, id uint) (*Invitation, error)
	GetBySID(ctx context.Context, sid string) (*Invitation, error)
	GetByToken(ctx context.Context, token string) (*Invitation, error)
	GetByPolicyAndEmail(ctx context.Context, policyID uint, email string) (*Invitation, error)
	// Accept transitions PENDING -> ACCEPTED guarded on the current status;
	// returns ErrInvitationNotPending when the row was not PENDING.
	Accept(ctx context.Context, invitationID uint, acceptedAt time.Time) error
	ListByPolicyID(ctx context.Context, policyID uint, page, pageSize int) ([]*Invitation, int64, error)
	// ExpirePending lazily flips PENDING invitations past their expiry.
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}

// RegistrationRepository persists admissions.
type RegistrationRepository interface {
	Create(ctx context.Context, registration *Registration) error
	GetByID(ctx context.Context, id uint) (*Registration, error)
	GetBySID(ctx context.Context, sid string) (*Registration, error)
	GetByUserAndPool(ctx context.Context, userID, poolID uint) (*Registration, error)
	CountByPool(ctx context.Context, poolID uint) (int64, error)
	ListByPool(ctx context.Context, poolID uint, page, pageSize int) ([]*Registration, int64, error)
}
