package access

import (
	"fmt"
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/id"
)

// CodeBatch groups invite codes created together so operators can pause,
// resume and account for them as a unit.
type CodeBatch struct {
	id          uint
	sid         string // cb_xxx
	policyID    uint
	tenantID    uint
	name        string
	usesPerCode int
	codeCount   int
	expiresAt   *time.Time
	paused      bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCodeBatch creates a batch descriptor. Codes themselves are minted with
// GenerateCodes and persisted in bulk alongside the batch.
func NewCodeBatch(policyID, tenantID uint, name string, codeCount, usesPerCode int, expiresAt *time.Time) (*CodeBatch, error) {
	if name == "" {
		return nil, fmt.Errorf("batch name is required")
	}
	if codeCount < 1 {
		return nil, fmt.Errorf("codeCount must be at least 1")
	}
	if usesPerCode < 1 {
		return nil, fmt.Errorf("usesPerCode must be at least 1")
	}

	sid, err := id.NewCodeBatchID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &CodeBatch{
		sid:         sid,
		policyID:    policyID,
		tenantID:    tenantID,
		name:        name,
		usesPerCode: usesPerCode,
		codeCount:   codeCount,
		expiresAt:   expiresAt,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructCodeBatch rebuilds a CodeBatch from the persistence layer.
func ReconstructCodeBatch(
	id uint,
	sid string,
	policyID, tenantID uint,
	name string,
	codeCount, usesPerCode int,
	expiresAt *time.Time,
	paused bool,
	createdAt, updatedAt time.Time,
) *CodeBatch {
	return &CodeBatch{
		id:          id,
		sid:         sid,
		policyID:    policyID,
		tenantID:    tenantID,
		name:        name,
		usesPerCode: usesPerCode,
		codeCount:   codeCount,
		expiresAt:   expiresAt,
		paused:      paused,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Getters
func (b *CodeBatch) ID() uint              { return b.id }
func (b *CodeBatch) SID() string           { return b.sid }
func (b *CodeBatch) PolicyID() uint        { return b.policyID }
func (b *CodeBatch) TenantID() uint        { return b.tenantID }
func (b *CodeBatch) Name() string          { return b.name }
func (b *CodeBatch) UsesPerCode() int      { return b.usesPerCode }
func (b *CodeBatch) CodeCount() int        { return b.codeCount }
func (b *CodeBatch) ExpiresAt() *time.Time { return b.expiresAt }
func (b *CodeBatch) Paused() bool          { return b.paused }
func (b *CodeBatch) CreatedAt() time.Time  { return b.createdAt }
func (b *CodeBatch) UpdatedAt() time.Time  { return b.updatedAt }

// SetID sets the batch ID (only for persistence layer use)
func (b *CodeBatch) SetID(id uint) { b.id = id }

// Pause marks the batch paused. Member codes are flipped by the repository
// in the same transaction.
func (b *CodeBatch) Pause() {
	b.paused = true
	b.updatedAt = biztime.NowUTC()
}

// Resume lifts the pause.
func (b *CodeBatch) Resume() {
	b.paused = false
	b.updatedAt = biztime.NowUTC()
}

// GenerateCodes mints the batch's codes with usedCount=0/status=UNUSED.
func (b *CodeBatch) GenerateCodes() ([]*InviteCode, error) {
	codes := make([]*InviteCode, 0, b.codeCount)
	for i := 0; i < b.codeCount; i++ {
		code, err := NewInviteCode(b.id, b.policyID, b.tenantID, b.usesPerCode, b.expiresAt)
		if err != nil {
			return nil, fmt.Errorf("failed to generate code %d of %d: %w", i+1, b.codeCount, err)
		}
		codes = append(codes, code)
	}
	return codes, nil
}
