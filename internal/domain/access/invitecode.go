package access

import (
	"fmt"
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/id"
)

// CodeStatus is a cached projection of (usedCount vs usesPerCode,
// expiresAt vs now, paused flag). It must be kept consistent on every
// increment.
type CodeStatus string

const (
	CodeUnused        CodeStatus = "UNUSED"
	CodePartiallyUsed CodeStatus = "PARTIALLY_USED"
	CodeUsed          CodeStatus = "USED"
	CodeExpired       CodeStatus = "EXPIRED"
	CodePaused        CodeStatus = "PAUSED"
)

// codeLength is the length of the shareable code string.
const codeLength = 10

// InviteCode is a shareable, multi-use admission credential with a capacity
// counter. Codes are historical records: they are mutated only through the
// atomic consume path and never deleted.
type InviteCode struct {
	id          uint
	batchID     uint
	policyID    uint
	tenantID    uint
	code        string // unique per tenant
	status      CodeStatus
	usesPerCode int
	usedCount   int
	expiresAt   *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewInviteCode mints one code with a fresh random string and zero uses.
func NewInviteCode(batchID, policyID, tenantID uint, usesPerCode int, expiresAt *time.Time) (*InviteCode, error) {
	if usesPerCode < 1 {
		return nil, fmt.Errorf("usesPerCode must be at least 1")
	}

	code, err := id.Generate(codeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	now := biztime.NowUTC()
	return &InviteCode{
		batchID:     batchID,
		policyID:    policyID,
		tenantID:    tenantID,
		code:        code,
		status:      CodeUnused,
		usesPerCode: usesPerCode,
		expiresAt:   expiresAt,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructInviteCode rebuilds an InviteCode from the persistence layer.
func ReconstructInviteCode(
	id uint,
	batchID, policyID, tenantID uint,
	code string,
	status CodeStatus,
	usesPerCode, usedCount int,
	expiresAt *time.Time,
	createdAt, updatedAt time.Time,
) *InviteCode {
	return &InviteCode{
		id:          id,
		batchID:     batchID,
		policyID:    policyID,
		tenantID:    tenantID,
		code:        code,
		status:      status,
		usesPerCode: usesPerCode,
		usedCount:   usedCount,
		expiresAt:   expiresAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Getters
func (c *InviteCode) ID() uint              { return c.id }
func (c *InviteCode) BatchID() uint         { return c.batchID }
func (c *InviteCode) PolicyID() uint        { return c.policyID }
func (c *InviteCode) TenantID() uint        { return c.tenantID }
func (c *InviteCode) Code() string          { return c.code }
func (c *InviteCode) Status() CodeStatus    { return c.status }
func (c *InviteCode) UsesPerCode() int      { return c.usesPerCode }
func (c *InviteCode) UsedCount() int        { return c.usedCount }
func (c *InviteCode) ExpiresAt() *time.Time { return c.expiresAt }
func (c *InviteCode) CreatedAt() time.Time  { return c.createdAt }
func (c *InviteCode) UpdatedAt() time.Time  { return c.updatedAt }

// SetID sets the code ID (only for persistence layer use)
func (c *InviteCode) SetID(id uint) { c.id = id }

// UsesRemaining returns how many redemptions are left.
func (c *InviteCode) UsesRemaining() int {
	remaining := c.usesPerCode - c.usedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsExpired reports whether the code's expiry has passed.
func (c *InviteCode) IsExpired(now time.Time) bool {
	return c.expiresAt != nil && !now.Before(*c.expiresAt)
}

// DeriveStatus computes the status projection from the counters and expiry.
// PAUSED is sticky: it is an operator action, not derivable from counters,
// so a paused code stays paused until resumed.
func (c *InviteCode) DeriveStatus(now time.Time) CodeStatus {
	if c.status == CodePaused {
		return CodePaused
	}
	if c.IsExpired(now) {
		return CodeExpired
	}
	switch {
	case c.usedCount <= 0:
		return CodeUnused
	case c.usedCount < c.usesPerCode:
		return CodePartiallyUsed
	default:
		return CodeUsed
	}
}

// CheckConsumable validates the admission-time state machine for redeeming
// one use. Each violating clause fails with its distinct reason.
func (c *InviteCode) CheckConsumable(now time.Time) *DeniedError {
	if c.status == CodePaused {
		return Denied(ReasonCodeInvalid, "code is paused")
	}
	if c.status == CodeExpired || c.IsExpired(now) {
		return Denied(ReasonCodeExpired, "code has expired")
	}
	if c.usedCount >= c.usesPerCode {
		return Denied(ReasonCodeExhausted, "code has no uses remaining")
	}
	return nil
}

// CheckHeld validates the read-only re-check state machine for a credential
// already linked to a registration: status must not be EXPIRED or PAUSED,
// the counter must not have overrun capacity, and the expiry must not have
// passed.
func (c *InviteCode) CheckHeld(now time.Time) *DeniedError {
	if c.status == CodeExpired || c.status == CodePaused {
		return Denied(ReasonCodeInvalid, fmt.Sprintf("code is %s", c.status))
	}
	if c.usedCount > c.usesPerCode {
		return Denied(ReasonCodeExhausted, "code use counter exceeds capacity")
	}
	if c.IsExpired(now) {
		return Denied(ReasonCodeExpired, "code has expired")
	}
	return nil
}

// RecordUse applies one redemption and recomputes the status projection.
// The persistence layer mirrors this as a single conditional update; this
// method keeps the in-memory entity consistent with that statement.
func (c *InviteCode) RecordUse(now time.Time) error {
	if c.usedCount >= c.usesPerCode {
		return ErrCodeExhausted
	}
	c.usedCount++
	if c.usedCount >= c.usesPerCode {
		c.status = CodeUsed
	} else {
		c.status = CodePartiallyUsed
	}
	c.updatedAt = now
	return nil
}

// Pause suspends redemption of this code.
func (c *InviteCode) Pause() {
	c.status = CodePaused
	c.updatedAt = biztime.NowUTC()
}

// Resume lifts a pause, restoring the derived status.
func (c *InviteCode) Resume(now time.Time) {
	if c.status != CodePaused {
		return
	}
	// Clear the sticky pause before re-deriving from the counters.
	c.status = CodeUnused
	c.status = c.DeriveStatus(now)
	c.updatedAt = biztime.NowUTC()
}
